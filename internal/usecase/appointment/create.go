package appointment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID uint

	PatientID uint
	DentistID uint

	Start time.Time
	End   *time.Time

	TreatmentTypeIDs []uint
	Purpose          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	validator *scheduling.Validator
	repo      scheduling.Repository
	audit     *audit.Dispatcher
	log       *logrus.Logger
}

func NewCreateAppointment(
	validator *scheduling.Validator,
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		validator: validator,
		repo:      repo,
		audit:     audit,
		log:       log,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	cmd, err := uc.validator.Validate(ctx, scheduling.ScheduleRequest{
		DentistID:        in.DentistID,
		PatientID:        in.PatientID,
		Start:            in.Start,
		End:              in.End,
		TreatmentTypeIDs: in.TreatmentTypeIDs,
		Purpose:          in.Purpose,
	}, true)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PatientID: cmd.PatientID,
		DentistID: cmd.DentistID,
		StartTime: cmd.Start,
		EndTime:   cmd.End,
		Status:    string(scheduling.InitialStatus()),
		Purpose:   cmd.Purpose,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, cmd.TreatmentTypeIDs); err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"appointment_id": ap.ID,
		"dentist_id":     ap.DentistID,
		"start_time":     ap.StartTime,
	}).Info("appointment created")

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
