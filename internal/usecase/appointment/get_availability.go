package appointment

import (
	"context"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailabilityInput struct {
	DentistID       uint
	TreatmentTypeID uint
	Date            time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ======================================================
// USE CASE
// ======================================================

// GetAvailability lista os horários livres de um dentista em uma data,
// em janelas do tamanho do tratamento pedido. Visão somente leitura para
// a recepção; a criação da consulta não rejeita sobreposição.
type GetAvailability struct {
	dir  scheduling.Directory
	cal  scheduling.Calendar
	repo scheduling.Repository
}

func NewGetAvailability(
	dir scheduling.Directory,
	cal scheduling.Calendar,
	repo scheduling.Repository,
) *GetAvailability {
	return &GetAvailability{
		dir:  dir,
		cal:  cal,
		repo: repo,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	tt, err := uc.dir.GetTreatmentType(ctx, in.TreatmentTypeID)
	if err != nil {
		return nil, err
	}

	status, err := uc.cal.IsOpenAt(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if !status.Open {
		return []TimeSlot{}, nil
	}

	dayStart := scheduling.AtClock(in.Date, status.Window.OpenTime)
	dayEnd := scheduling.AtClock(in.Date, status.Window.CloseTime)

	appointments, err := uc.repo.ListScheduledForDay(
		ctx,
		in.DentistID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(tt.DurationMin) * time.Minute
	if slotDuration <= 0 {
		slotDuration = 30 * time.Minute
	}

	slots := []TimeSlot{}
	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// avança consultas já encerradas antes do slot
		for apIdx < len(appointments) && apEnd(appointments[apIdx].EndTime, appointments[apIdx].StartTime).Before(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			end := apEnd(ap.EndTime, ap.StartTime)
			if slotStart.Before(end) && slotEnd.After(ap.StartTime) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}

// apEnd resolve o fim efetivo de uma consulta: consultas sem horário de
// término ocupam um bloco padrão de 30 minutos.
func apEnd(end *time.Time, start time.Time) time.Time {
	if end != nil {
		return *end
	}
	return start.Add(30 * time.Minute)
}
