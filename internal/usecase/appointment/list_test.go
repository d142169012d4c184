package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

func TestListAppointmentsByDate(t *testing.T) {
	store := newFakeStore()
	uc := NewListAppointmentsByDate(store)

	day := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	store.appointments[1] = &models.Appointment{
		ID:        1,
		DentistID: 1,
		StartTime: day.Add(9 * time.Hour),
		Status:    string(scheduling.StatusScheduled),
		Purpose:   "Limpeza de rotina",
		Patient:   models.Patient{Name: "João"},
		Dentist:   models.User{Name: "Dra. Helena"},
		TreatmentRecords: []models.TreatmentRecord{
			{TreatmentType: models.TreatmentType{Name: "Limpeza"}},
		},
	}
	// dia seguinte: fora do recorte
	store.appointments[2] = &models.Appointment{
		ID:        2,
		DentistID: 1,
		StartTime: day.Add(33 * time.Hour),
		Status:    string(scheduling.StatusScheduled),
	}
	// canceladas também aparecem na agenda do dia
	store.appointments[3] = &models.Appointment{
		ID:        3,
		DentistID: 1,
		StartTime: day.Add(11 * time.Hour),
		Status:    string(scheduling.StatusCancelled),
	}

	got, err := uc.Execute(context.Background(), 1, day)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, "João", got[0].PatientName)
	assert.Equal(t, "Dra. Helena", got[0].DentistName)
	assert.Equal(t, []string{"Limpeza"}, got[0].Treatments)

	assert.Equal(t, uint(3), got[1].ID)
	assert.Equal(t, string(scheduling.StatusCancelled), got[1].Status)
}

func TestListAppointmentsByDateAllDentists(t *testing.T) {
	store := newFakeStore()
	uc := NewListAppointmentsByDate(store)

	day := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	store.appointments[1] = &models.Appointment{
		ID: 1, DentistID: 1, StartTime: day.Add(9 * time.Hour),
		Status: string(scheduling.StatusScheduled),
	}
	store.appointments[2] = &models.Appointment{
		ID: 2, DentistID: 2, StartTime: day.Add(10 * time.Hour),
		Status: string(scheduling.StatusScheduled),
	}

	// dentistID zero = agenda da clínica inteira
	got, err := uc.Execute(context.Background(), 0, day)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
