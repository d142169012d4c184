package appointment

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ======================================================
// Fakes em memória para os casos de uso
// ======================================================

// fakeStore implementa scheduling.Directory e scheduling.Repository sobre
// mapas. Os registros de tratamento guardam as anotações para que os
// testes verifiquem que a remarcação preserva o que sobreviveu ao diff.
type fakeStore struct {
	users          map[uint]models.User
	patients       map[uint]models.Patient
	treatmentTypes map[uint]models.TreatmentType

	appointments map[uint]*models.Appointment
	records      map[uint]map[uint]string // appointmentID → treatmentTypeID → notes
	nextID       uint

	lastDiff scheduling.TreatmentDiff
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[uint]models.User{
			1: {ID: 1, Name: "Dra. Helena", Role: models.RoleDentist},
		},
		patients: map[uint]models.Patient{
			10: {ID: 10, Name: "João"},
		},
		treatmentTypes: map[uint]models.TreatmentType{
			100: {ID: 100, Name: "Limpeza", DurationMin: 30, Active: true},
			101: {ID: 101, Name: "Canal", DurationMin: 60, Active: true},
			102: {ID: 102, Name: "Restauração", DurationMin: 45, Active: true},
		},
		appointments: map[uint]*models.Appointment{},
		records:      map[uint]map[uint]string{},
	}
}

// ---------------- Directory ----------------

func (s *fakeStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, &scheduling.NotFoundError{Entity: "user", ID: id}
	}
	return &u, nil
}

func (s *fakeStore) GetPatientByID(_ context.Context, id uint) (*models.Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return nil, &scheduling.NotFoundError{Entity: "patient", ID: id}
	}
	return &p, nil
}

func (s *fakeStore) GetTreatmentType(_ context.Context, id uint) (*models.TreatmentType, error) {
	tt, ok := s.treatmentTypes[id]
	if !ok {
		return nil, &scheduling.NotFoundError{Entity: "treatment type", ID: id}
	}
	return &tt, nil
}

func (s *fakeStore) GetTreatmentTypes(_ context.Context, ids []uint) ([]models.TreatmentType, error) {
	out := []models.TreatmentType{}
	for _, id := range ids {
		if tt, ok := s.treatmentTypes[id]; ok {
			out = append(out, tt)
		}
	}
	return out, nil
}

// ---------------- Repository ----------------

func (s *fakeStore) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok {
		return nil, &scheduling.NotFoundError{Entity: "appointment", ID: id}
	}
	cp := *ap
	return &cp, nil
}

func (s *fakeStore) CreateAppointment(
	_ context.Context,
	ap *models.Appointment,
	treatmentTypeIDs []uint,
) error {
	s.nextID++
	ap.ID = s.nextID

	cp := *ap
	s.appointments[ap.ID] = &cp

	recs := map[uint]string{}
	for _, id := range treatmentTypeIDs {
		recs[id] = ""
	}
	s.records[ap.ID] = recs
	return nil
}

func (s *fakeStore) RescheduleAppointment(
	_ context.Context,
	ap *models.Appointment,
	diff scheduling.TreatmentDiff,
) error {
	cp := *ap
	s.appointments[ap.ID] = &cp
	s.lastDiff = diff

	recs := s.records[ap.ID]
	for _, id := range diff.ToRemove {
		delete(recs, id)
	}
	for _, id := range diff.ToAdd {
		recs[id] = ""
	}
	return nil
}

func (s *fakeStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	s.appointments[ap.ID] = &cp
	return nil
}

func (s *fakeStore) ListTreatmentTypeIDs(_ context.Context, appointmentID uint) ([]uint, error) {
	ids := []uint{}
	for id := range s.records[appointmentID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *fakeStore) ListScheduledForDay(
	_ context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return s.listBetween(dentistID, start, end, true)
}

func (s *fakeStore) ListForPeriod(
	_ context.Context,
	dentistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return s.listBetween(dentistID, start, end, false)
}

func (s *fakeStore) listBetween(
	dentistID uint,
	start time.Time,
	end time.Time,
	scheduledOnly bool,
) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if dentistID != 0 && ap.DentistID != dentistID {
			continue
		}
		if scheduledOnly && ap.Status != string(scheduling.StatusScheduled) {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

var (
	_ scheduling.Directory  = (*fakeStore)(nil)
	_ scheduling.Repository = (*fakeStore)(nil)
)

// ======================================================
// Helpers compartilhados
// ======================================================

type openFakeCalendar struct{}

func (openFakeCalendar) IsOpenAt(_ context.Context, _ time.Time) (scheduling.OpenStatus, error) {
	return scheduling.OpenStatus{
		Open:   true,
		Window: &scheduling.DayWindow{OpenTime: "08:00", CloseTime: "18:00"},
	}, nil
}

var ucTestNow = time.Date(2026, time.September, 14, 12, 0, 0, 0, time.UTC)

func ucNow() time.Time { return ucTestNow }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func quietAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil, quietLogger())
}
