package appointment

import (
	"context"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/dto"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

type ListAppointmentsByDate struct {
	repo scheduling.Repository
}

func NewListAppointmentsByDate(
	repo scheduling.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	dentistID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		date.Location(),
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListForPeriod(ctx, dentistID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		treatments := make([]string, 0, len(ap.TreatmentRecords))
		for _, tr := range ap.TreatmentRecords {
			treatments = append(treatments, tr.TreatmentType.Name)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			Purpose:     ap.Purpose,
			PatientName: ap.Patient.Name,
			DentistName: ap.Dentist.Name,
			Treatments:  treatments,
		})
	}
	return out
}
