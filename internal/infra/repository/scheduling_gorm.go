package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (r *SchedulingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &scheduling.NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}
	return &user, nil
}

func (r *SchedulingGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &scheduling.NotFoundError{Entity: "patient", ID: id}
		}
		return nil, err
	}
	return &patient, nil
}

func (r *SchedulingGormRepository) GetTreatmentType(
	ctx context.Context,
	id uint,
) (*models.TreatmentType, error) {

	var tt models.TreatmentType
	if err := r.db.WithContext(ctx).First(&tt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &scheduling.NotFoundError{Entity: "treatment type", ID: id}
		}
		return nil, err
	}
	return &tt, nil
}

func (r *SchedulingGormRepository) GetTreatmentTypes(
	ctx context.Context,
	ids []uint,
) ([]models.TreatmentType, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var types []models.TreatmentType
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("TreatmentRecords").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &scheduling.NotFoundError{Entity: "appointment", ID: id}
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	treatmentTypeIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ap).Error; err != nil {
			return err
		}
		return createTreatmentRecords(tx, ap.ID, treatmentTypeIDs)
	})
}

func (r *SchedulingGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	diff scheduling.TreatmentDiff,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		if len(diff.ToRemove) > 0 {
			if err := removeTreatmentRecords(tx, ap.ID, diff.ToRemove); err != nil {
				return err
			}
		}

		return createTreatmentRecords(tx, ap.ID, diff.ToAdd)
	})
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Treatment records
// --------------------------------------------------

func (r *SchedulingGormRepository) ListTreatmentTypeIDs(
	ctx context.Context,
	appointmentID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TreatmentRecord{}).
		Where("appointment_id = ?", appointmentID).
		Pluck("treatment_type_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func createTreatmentRecords(tx *gorm.DB, appointmentID uint, typeIDs []uint) error {
	for _, typeID := range typeIDs {
		record := models.TreatmentRecord{
			AppointmentID:   appointmentID,
			TreatmentTypeID: typeID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// removeTreatmentRecords apaga os registros cujo tipo saiu do conjunto,
// junto com arquivos e vínculos de dentes. Registros de tipos que
// permanecem não são tocados.
func removeTreatmentRecords(tx *gorm.DB, appointmentID uint, typeIDs []uint) error {
	var records []models.TreatmentRecord
	if err := tx.
		Where("appointment_id = ? AND treatment_type_id IN ?", appointmentID, typeIDs).
		Find(&records).Error; err != nil {
		return err
	}

	for i := range records {
		record := &records[i]

		if err := tx.Model(record).Association("Teeth").Clear(); err != nil {
			return err
		}
		if err := tx.
			Where("treatment_record_id = ?", record.ID).
			Delete(&models.TreatmentFile{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(record).Error; err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *SchedulingGormRepository) ListScheduledForDay(
	ctx context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"dentist_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			dentistID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *SchedulingGormRepository) ListForPeriod(
	ctx context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Dentist").
		Preload("TreatmentRecords.TreatmentType").
		Where("start_time >= ? AND start_time < ?", start, end)

	// dentistID zero = agenda da clínica inteira
	if dentistID != 0 {
		q = q.Where("dentist_id = ?", dentistID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time checks
var (
	_ scheduling.Repository = (*SchedulingGormRepository)(nil)
	_ scheduling.Directory  = (*SchedulingGormRepository)(nil)
)
