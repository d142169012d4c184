package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// ScheduleRequest é a proposta de consulta vinda do formulário,
// já convertida para os tipos do domínio.
type ScheduleRequest struct {
	DentistID uint
	PatientID uint // usado apenas na criação; imutável na remarcação

	Start time.Time
	End   *time.Time

	TreatmentTypeIDs []uint
	Purpose          string
}

// Command é uma proposta que passou por todas as validações e está
// pronta para ser aplicada pelo ciclo de vida da consulta.
type Command struct {
	DentistID uint
	PatientID uint

	Start time.Time
	End   *time.Time

	TreatmentTypeIDs []uint
	Purpose          string
}

// ======================================================
// VALIDATOR
// ======================================================

// Validator verifica uma proposta de consulta antes da persistência.
// Todas as violações são acumuladas e devolvidas juntas em um
// ValidationError por campo — sem curto-circuito, como o formulário
// espera. Não valida conflito de horário entre consultas do mesmo
// dentista: essa regra não existe no produto.
type Validator struct {
	dir Directory
	cal Calendar
	now func() time.Time
}

func NewValidator(dir Directory, cal Calendar, now func() time.Time) *Validator {
	return &Validator{
		dir: dir,
		cal: cal,
		now: now,
	}
}

// Validate valida a proposta. forCreate liga a checagem de paciente,
// que não se aplica à remarcação.
func (v *Validator) Validate(
	ctx context.Context,
	req ScheduleRequest,
	forCreate bool,
) (*Command, error) {

	fields := FieldErrors{}

	// --------------------------------------------------
	// 1. Dentista
	// --------------------------------------------------
	if err := v.checkDentist(ctx, req.DentistID, fields); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Paciente (somente criação)
	// --------------------------------------------------
	if forCreate {
		if err := v.checkPatient(ctx, req.PatientID, fields); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3. Início no futuro
	// --------------------------------------------------
	if !req.Start.After(v.now()) {
		fields.Add("start_datetime", "O horário de início deve estar no futuro.")
	}

	// --------------------------------------------------
	// 4. Fim após o início
	// --------------------------------------------------
	if req.End != nil && !req.End.After(req.Start) {
		fields.Add("end_datetime", "O horário de término deve ser depois do início.")
	}

	// --------------------------------------------------
	// 5. Tipos de tratamento
	// --------------------------------------------------
	if err := v.checkTreatmentTypes(ctx, req.TreatmentTypeIDs, fields); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Expediente da clínica
	// --------------------------------------------------
	status, err := v.cal.IsOpenAt(ctx, req.Start)
	if err != nil {
		return nil, err
	}
	if !status.Open {
		fields.Add("start_datetime", status.Reason)
	} else if !WithinWindow(req.Start, *status.Window) {
		fields.Add("start_datetime", "Fora do horário de atendimento da clínica.")
	}

	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	return &Command{
		DentistID:        req.DentistID,
		PatientID:        req.PatientID,
		Start:            req.Start,
		End:              req.End,
		TreatmentTypeIDs: dedupe(req.TreatmentTypeIDs),
		Purpose:          req.Purpose,
	}, nil
}

// --------------------------------------------------
// Checks
// --------------------------------------------------

func (v *Validator) checkDentist(
	ctx context.Context,
	dentistID uint,
	fields FieldErrors,
) error {

	user, err := v.dir.GetUserByID(ctx, dentistID)

	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		fields.Add("dentist_id", "Dentista não encontrado.")
		return nil
	case err != nil:
		return err
	}

	if user.Role != models.RoleDentist {
		fields.Add("dentist_id", "O usuário selecionado não é um dentista.")
	}
	return nil
}

func (v *Validator) checkPatient(
	ctx context.Context,
	patientID uint,
	fields FieldErrors,
) error {

	_, err := v.dir.GetPatientByID(ctx, patientID)

	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		fields.Add("patient_id", "Paciente não encontrado.")
		return nil
	case err != nil:
		return err
	}
	return nil
}

func (v *Validator) checkTreatmentTypes(
	ctx context.Context,
	ids []uint,
	fields FieldErrors,
) error {

	ids = dedupe(ids)
	if len(ids) == 0 {
		fields.Add("treatment_type_ids", "Selecione pelo menos um tipo de tratamento.")
		return nil
	}

	found, err := v.dir.GetTreatmentTypes(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uint]models.TreatmentType, len(found))
	for _, tt := range found {
		byID[tt.ID] = tt
	}

	for _, id := range ids {
		tt, ok := byID[id]
		if !ok {
			fields.Add("treatment_type_ids", fmt.Sprintf("Tipo de tratamento %d não encontrado.", id))
			continue
		}
		if !tt.Active {
			fields.Add("treatment_type_ids", fmt.Sprintf("Tipo de tratamento %d está inativo.", id))
		}
	}
	return nil
}

// dedupe remove ids repetidos preservando a ordem de chegada.
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
