package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/config"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/handlers"
	infraCalendar "github.com/michaelgigihub/dental-clinic-api/internal/infra/calendar"
	infraRepo "github.com/michaelgigihub/dental-clinic-api/internal/infra/repository"
	"github.com/michaelgigihub/dental-clinic-api/internal/infra/storage"
	"github.com/michaelgigihub/dental-clinic-api/internal/middleware"
	ucAppointment "github.com/michaelgigihub/dental-clinic-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cache *redis.Client,
	cfg *config.Config,
	log *logrus.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)
	calendar := infraCalendar.NewGormCalendar(db, cache, log)
	objectStore := storage.NewS3Store(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	validator := scheduling.NewValidator(schedulingRepo, calendar, clinictime.Now)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(
		validator,
		schedulingRepo,
		auditDispatcher,
		log,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		validator,
		schedulingRepo,
		auditDispatcher,
		log,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
		clinictime.Now,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		schedulingRepo,
		auditDispatcher,
		clinictime.Now,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(schedulingRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(schedulingRepo)
	availabilityUC := ucAppointment.NewGetAvailability(
		schedulingRepo,
		calendar,
		schedulingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	treatmentTypeHandler := handlers.NewTreatmentTypeHandler(db)

	clinicScheduleHandler := handlers.NewClinicScheduleHandler(
		db,
		calendar,
		auditDispatcher,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		listByDateUC,
		listByMonthUC,
		availabilityUC,
	)

	treatmentRecordHandler := handlers.NewTreatmentRecordHandler(
		db,
		objectStore,
		auditDispatcher,
		log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)

			secured.GET("/treatment-types", treatmentTypeHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.PUT("/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// TREATMENT RECORDS
			// ------------------------------
			secured.PATCH("/treatment-records/:id/notes", treatmentRecordHandler.UpdateNotes)
			secured.PUT("/treatment-records/:id/teeth", treatmentRecordHandler.UpdateTeeth)
			secured.POST("/treatment-records/:id/files", treatmentRecordHandler.UploadFile)
			secured.DELETE("/treatment-records/:id/files/:fileID", treatmentRecordHandler.DeleteFile)

			// ------------------------------
			// ADMINISTRAÇÃO
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.PUT("/clinic/schedule", clinicScheduleHandler.UpdateWeek)
				admin.POST("/clinic/closures", clinicScheduleHandler.CreateClosure)
				admin.DELETE("/clinic/closures/:id", clinicScheduleHandler.DeleteClosure)

				admin.POST("/treatment-types", treatmentTypeHandler.Create)
				admin.PATCH("/treatment-types/:id", treatmentTypeHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}

			secured.GET("/clinic/schedule", clinicScheduleHandler.GetWeek)
			secured.GET("/clinic/closures", clinicScheduleHandler.ListClosures)
		}
	}
}
