package scheduling

import (
	"context"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// Directory resolve referências externas ao agendamento: usuários,
// pacientes e tipos de tratamento. Consultas somente leitura.
type Directory interface {
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	GetTreatmentType(
		ctx context.Context,
		id uint,
	) (*models.TreatmentType, error)

	// GetTreatmentTypes retorna apenas os tipos encontrados;
	// ids ausentes simplesmente não aparecem no resultado.
	GetTreatmentTypes(
		ctx context.Context,
		ids []uint,
	) ([]models.TreatmentType, error)
}

// Repository cobre as escritas e leituras de consultas.
// Operações que tocam a consulta e seus registros de tratamento
// executam em uma única transação.
type Repository interface {
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// CreateAppointment persiste a consulta e um TreatmentRecord vazio
	// por tipo de tratamento, atomicamente.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		treatmentTypeIDs []uint,
	) error

	// RescheduleAppointment salva a consulta e aplica o diff de
	// tratamentos, atomicamente.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		diff TreatmentDiff,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListTreatmentTypeIDs(
		ctx context.Context,
		appointmentID uint,
	) ([]uint, error)

	ListScheduledForDay(
		ctx context.Context,
		dentistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		dentistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
