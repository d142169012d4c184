package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ReminderJob percorre diariamente as consultas agendadas do dia seguinte
// e emite eventos de lembrete. O envio em si (e-mail/SMS) fica fora deste
// serviço; aqui registramos o evento e deixamos o rastro na auditoria.
type ReminderJob struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewReminderJob(db *gorm.DB, dispatcher *audit.Dispatcher, log *logrus.Logger) *ReminderJob {
	return &ReminderJob{
		db:    db,
		audit: dispatcher,
		log:   log,
	}
}

// Start agenda a execução diária às 08:00 no fuso da clínica.
func (j *ReminderJob) Start() *cron.Cron {
	scheduler := cron.New(cron.WithLocation(clinictime.Location()))

	if _, err := scheduler.AddFunc("0 8 * * *", j.Run); err != nil {
		j.log.Fatalf("failed to schedule reminder job: %v", err)
	}

	scheduler.Start()
	return scheduler
}

func (j *ReminderJob) Run() {
	now := clinictime.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var appointments []models.Appointment
	if err := j.db.
		Preload("Patient").
		Preload("Dentist").
		Where(
			"status = 'scheduled' AND start_time >= ? AND start_time < ?",
			start, end,
		).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {

		j.log.WithError(err).Error("reminder job query failed")
		return
	}

	for _, ap := range appointments {
		j.log.WithFields(logrus.Fields{
			"appointment_id": ap.ID,
			"patient":        ap.Patient.Name,
			"dentist":        ap.Dentist.Name,
			"start_time":     ap.StartTime,
		}).Info("appointment reminder")

		id := ap.ID
		j.audit.Dispatch(audit.Event{
			Action:   "appointment_reminder",
			Entity:   "appointment",
			EntityID: &id,
		})
	}

	j.log.WithField("count", len(appointments)).Info("reminder job finished")
}
