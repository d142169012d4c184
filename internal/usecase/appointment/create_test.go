package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
)

func newCreateUC(store *fakeStore) *CreateAppointment {
	validator := scheduling.NewValidator(store, openFakeCalendar{}, ucNow)
	return NewCreateAppointment(validator, store, quietAudit(), quietLogger())
}

func TestCreateAppointment(t *testing.T) {
	store := newFakeStore()
	uc := newCreateUC(store)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ActorID:          1,
		PatientID:        10,
		DentistID:        1,
		Start:            time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC),
		TreatmentTypeIDs: []uint{100, 101},
		Purpose:          "Limpeza e avaliação",
	})

	require.NoError(t, err)
	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(scheduling.StatusScheduled), ap.Status)

	ids, err := store.ListTreatmentTypeIDs(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{100, 101}, ids)
}

func TestCreateAppointmentValidationFailureWritesNothing(t *testing.T) {
	store := newFakeStore()
	uc := newCreateUC(store)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ActorID:   1,
		PatientID: 10,
		DentistID: 1,
		Start:     ucTestNow.Add(-time.Hour),
		// nenhum tipo de tratamento
	})

	var ve *scheduling.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "start_datetime")
	assert.Contains(t, ve.Fields, "treatment_type_ids")

	assert.Empty(t, store.appointments)
}
