package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
)

func TestCancelAppointment(t *testing.T) {
	store := newFakeStore()
	uc := NewCancelAppointment(store, quietAudit(), ucNow)

	ap := seedAppointment(store, 100)

	got, err := uc.Execute(context.Background(), 1, ap.ID, "Paciente viajou a trabalho")
	require.NoError(t, err)

	assert.Equal(t, string(scheduling.StatusCancelled), got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "Paciente viajou a trabalho", *got.CancellationReason)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, ucTestNow, *got.CancelledAt)

	// persistido, não só em memória do caso de uso
	stored := store.appointments[ap.ID]
	assert.Equal(t, string(scheduling.StatusCancelled), stored.Status)
}

func TestCancelAppointmentShortReason(t *testing.T) {
	store := newFakeStore()
	uc := NewCancelAppointment(store, quietAudit(), ucNow)

	ap := seedAppointment(store, 100)

	_, err := uc.Execute(context.Background(), 1, ap.ID, "ocupado")

	var ve *scheduling.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "cancellation_reason")

	// consulta intocada
	assert.Equal(t, string(scheduling.StatusScheduled), store.appointments[ap.ID].Status)
}

func TestCancelAppointmentTwice(t *testing.T) {
	store := newFakeStore()
	uc := NewCancelAppointment(store, quietAudit(), ucNow)

	ap := seedAppointment(store, 100)

	_, err := uc.Execute(context.Background(), 1, ap.ID, "Paciente viajou a trabalho")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, ap.ID, "Outro motivo bem detalhado")

	var already *scheduling.AlreadyCancelledError
	assert.ErrorAs(t, err, &already)
}

func TestCompleteAppointment(t *testing.T) {
	store := newFakeStore()
	uc := NewCompleteAppointment(store, quietAudit(), ucNow)

	ap := seedAppointment(store, 100)

	got, err := uc.Execute(context.Background(), 1, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, string(scheduling.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, ucTestNow, *got.CompletedAt)
}

func TestCompleteCancelledAppointment(t *testing.T) {
	store := newFakeStore()

	ap := seedAppointment(store, 100)
	ap.Status = string(scheduling.StatusCancelled)

	uc := NewCompleteAppointment(store, quietAudit(), ucNow)

	_, err := uc.Execute(context.Background(), 1, ap.ID)

	var invalid *scheduling.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "complete", invalid.Action)
}
