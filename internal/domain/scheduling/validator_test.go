package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ======================================================
// Fakes
// ======================================================

type fakeDirectory struct {
	users          map[uint]models.User
	patients       map[uint]models.Patient
	treatmentTypes map[uint]models.TreatmentType
}

func (d *fakeDirectory) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, &NotFoundError{Entity: "user", ID: id}
	}
	return &u, nil
}

func (d *fakeDirectory) GetPatientByID(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := d.patients[id]
	if !ok {
		return nil, &NotFoundError{Entity: "patient", ID: id}
	}
	return &p, nil
}

func (d *fakeDirectory) GetTreatmentType(_ context.Context, id uint) (*models.TreatmentType, error) {
	tt, ok := d.treatmentTypes[id]
	if !ok {
		return nil, &NotFoundError{Entity: "treatment type", ID: id}
	}
	return &tt, nil
}

func (d *fakeDirectory) GetTreatmentTypes(_ context.Context, ids []uint) ([]models.TreatmentType, error) {
	out := []models.TreatmentType{}
	for _, id := range ids {
		if tt, ok := d.treatmentTypes[id]; ok {
			out = append(out, tt)
		}
	}
	return out, nil
}

type fakeCalendar struct {
	status OpenStatus
}

func (c *fakeCalendar) IsOpenAt(_ context.Context, _ time.Time) (OpenStatus, error) {
	return c.status, nil
}

// ======================================================
// Fixtures
// ======================================================

var testNow = time.Date(2026, time.September, 14, 12, 0, 0, 0, time.UTC)

func newTestDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[uint]models.User{
			1: {ID: 1, Name: "Dra. Helena", Role: models.RoleDentist},
			2: {ID: 2, Name: "Recepção", Role: models.RoleReceptionist},
		},
		patients: map[uint]models.Patient{
			10: {ID: 10, Name: "João"},
		},
		treatmentTypes: map[uint]models.TreatmentType{
			100: {ID: 100, Name: "Limpeza", DurationMin: 30, Active: true},
			101: {ID: 101, Name: "Canal", DurationMin: 60, Active: true},
			102: {ID: 102, Name: "Clareamento", DurationMin: 45, Active: false},
		},
	}
}

func openCalendar() *fakeCalendar {
	return &fakeCalendar{status: OpenStatus{
		Open:   true,
		Window: &DayWindow{OpenTime: "08:00", CloseTime: "18:00"},
	}}
}

func newTestValidator(cal Calendar) *Validator {
	return NewValidator(newTestDirectory(), cal, func() time.Time { return testNow })
}

func validRequest() ScheduleRequest {
	return ScheduleRequest{
		DentistID:        1,
		PatientID:        10,
		Start:            time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC),
		TreatmentTypeIDs: []uint{100},
		Purpose:          "Limpeza de rotina",
	}
}

// ======================================================
// Tests
// ======================================================

func TestValidateAcceptsValidRequest(t *testing.T) {
	v := newTestValidator(openCalendar())

	cmd, err := v.Validate(context.Background(), validRequest(), true)

	require.NoError(t, err)
	assert.Equal(t, uint(1), cmd.DentistID)
	assert.Equal(t, uint(10), cmd.PatientID)
	assert.Equal(t, []uint{100}, cmd.TreatmentTypeIDs)
}

func TestValidateDeduplicatesTreatmentTypes(t *testing.T) {
	v := newTestValidator(openCalendar())

	req := validRequest()
	req.TreatmentTypeIDs = []uint{100, 101, 100}

	cmd, err := v.Validate(context.Background(), req, true)

	require.NoError(t, err)
	assert.Equal(t, []uint{100, 101}, cmd.TreatmentTypeIDs)
}

// Todas as violações voltam juntas, cada uma no seu campo.
func TestValidateCollectsAllViolations(t *testing.T) {
	v := newTestValidator(openCalendar())

	end := testNow.Add(-2 * time.Hour)
	req := ScheduleRequest{
		DentistID: 99, // inexistente
		PatientID: 99, // inexistente
		Start:     testNow.Add(-time.Hour),
		End:       &end,
		// nenhum tipo de tratamento
	}

	_, err := v.Validate(context.Background(), req, true)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Contains(t, ve.Fields, "dentist_id")
	assert.Contains(t, ve.Fields, "patient_id")
	assert.Contains(t, ve.Fields, "start_datetime")
	assert.Contains(t, ve.Fields, "end_datetime")
	assert.Contains(t, ve.Fields, "treatment_type_ids")
}

func TestValidateDentist(t *testing.T) {
	v := newTestValidator(openCalendar())

	t.Run("dentista inexistente", func(t *testing.T) {
		req := validRequest()
		req.DentistID = 99

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Dentista não encontrado."}, ve.Fields["dentist_id"])
	})

	t.Run("usuário sem papel de dentista", func(t *testing.T) {
		req := validRequest()
		req.DentistID = 2

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"O usuário selecionado não é um dentista."}, ve.Fields["dentist_id"])
	})
}

func TestValidatePatientOnlyOnCreate(t *testing.T) {
	v := newTestValidator(openCalendar())

	req := validRequest()
	req.PatientID = 99

	_, err := v.Validate(context.Background(), req, true)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "patient_id")

	// remarcação não toca no paciente
	_, err = v.Validate(context.Background(), req, false)
	assert.NoError(t, err)
}

func TestValidateTreatmentTypes(t *testing.T) {
	v := newTestValidator(openCalendar())

	t.Run("tipo inexistente e tipo inativo na mesma proposta", func(t *testing.T) {
		req := validRequest()
		req.TreatmentTypeIDs = []uint{100, 999, 102}

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{
			"Tipo de tratamento 999 não encontrado.",
			"Tipo de tratamento 102 está inativo.",
		}, ve.Fields["treatment_type_ids"])
	})

	t.Run("lista vazia", func(t *testing.T) {
		req := validRequest()
		req.TreatmentTypeIDs = nil

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Selecione pelo menos um tipo de tratamento."}, ve.Fields["treatment_type_ids"])
	})
}

func TestValidateClinicHours(t *testing.T) {
	t.Run("dia fechado propaga o motivo do calendário", func(t *testing.T) {
		v := newTestValidator(&fakeCalendar{status: OpenStatus{
			Open:   false,
			Reason: "Feriado municipal",
		}})

		_, err := v.Validate(context.Background(), validRequest(), true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Feriado municipal"}, ve.Fields["start_datetime"])
	})

	t.Run("início fora da janela", func(t *testing.T) {
		v := newTestValidator(openCalendar())

		req := validRequest()
		req.Start = time.Date(2026, time.September, 15, 19, 0, 0, 0, time.UTC)

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"Fora do horário de atendimento da clínica."}, ve.Fields["start_datetime"])
	})

	t.Run("início exatamente no fechamento é rejeitado", func(t *testing.T) {
		v := newTestValidator(openCalendar())

		req := validRequest()
		req.Start = time.Date(2026, time.September, 15, 18, 0, 0, 0, time.UTC)

		_, err := v.Validate(context.Background(), req, true)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "start_datetime")
	})

	t.Run("início exatamente na abertura é aceito", func(t *testing.T) {
		v := newTestValidator(openCalendar())

		req := validRequest()
		req.Start = time.Date(2026, time.September, 15, 8, 0, 0, 0, time.UTC)

		_, err := v.Validate(context.Background(), req, true)
		assert.NoError(t, err)
	})
}

func TestValidateEndBeforeStart(t *testing.T) {
	v := newTestValidator(openCalendar())

	req := validRequest()
	end := req.Start // fim igual ao início também é inválido
	req.End = &end

	_, err := v.Validate(context.Background(), req, true)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"O horário de término deve ser depois do início."}, ve.Fields["end_datetime"])
}
