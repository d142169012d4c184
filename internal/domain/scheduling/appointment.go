package scheduling

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// MinCancellationReasonLen é o tamanho mínimo (em caracteres) do motivo
// de cancelamento.
const MinCancellationReasonLen = 10

// Cancel aplica o cancelamento sobre a consulta.
// Exige motivo com pelo menos MinCancellationReasonLen caracteres.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) < MinCancellationReasonLen {
		return newFieldError(
			"cancellation_reason",
			"O motivo do cancelamento deve ter pelo menos 10 caracteres.",
		)
	}

	ap.Status = string(StatusCancelled)
	ap.CancellationReason = &reason
	ap.CancelledAt = &now
	return nil
}

// Complete marca a consulta como concluída.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule aplica os dados validados sobre uma consulta ainda agendada.
// PatientID é imutável: remarcação nunca troca o paciente.
func Reschedule(ap *models.Appointment, cmd *Command) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.DentistID = cmd.DentistID
	ap.StartTime = cmd.Start
	ap.EndTime = cmd.End
	ap.Purpose = cmd.Purpose
	return nil
}
