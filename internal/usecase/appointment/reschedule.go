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

type RescheduleAppointmentInput struct {
	ActorID       uint
	AppointmentID uint

	DentistID uint

	Start time.Time
	End   *time.Time

	TreatmentTypeIDs []uint
	Purpose          string
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	validator *scheduling.Validator
	repo      scheduling.Repository
	audit     *audit.Dispatcher
	log       *logrus.Logger
}

func NewRescheduleAppointment(
	validator *scheduling.Validator,
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	log *logrus.Logger,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		validator: validator,
		repo:      repo,
		audit:     audit,
		log:       log,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// estado primeiro: remarcar consulta concluída/cancelada é erro
	// de transição, não de formulário
	if err := scheduling.CanReschedule(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	cmd, err := uc.validator.Validate(ctx, scheduling.ScheduleRequest{
		DentistID:        in.DentistID,
		Start:            in.Start,
		End:              in.End,
		TreatmentTypeIDs: in.TreatmentTypeIDs,
		Purpose:          in.Purpose,
	}, false)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.ListTreatmentTypeIDs(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	diff := scheduling.DiffTreatmentSets(current, cmd.TreatmentTypeIDs)

	if err := scheduling.Reschedule(ap, cmd); err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap, diff); err != nil {
		return nil, err
	}

	uc.log.WithFields(logrus.Fields{
		"appointment_id":     ap.ID,
		"treatments_added":   len(diff.ToAdd),
		"treatments_removed": len(diff.ToRemove),
	}).Info("appointment rescheduled")

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
