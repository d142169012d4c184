package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/httperr"
	"github.com/michaelgigihub/dental-clinic-api/internal/middleware"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
	ucAppointment "github.com/michaelgigihub/dental-clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	rescheduleUC  *ucAppointment.RescheduleAppointment
	cancelUC      *ucAppointment.CancelAppointment
	completeUC    *ucAppointment.CompleteAppointment
	listByDateUC  *ucAppointment.ListAppointmentsByDate
	listByMonthUC *ucAppointment.ListAppointmentsByMonth
	availableUC   *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	availableUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		rescheduleUC:  rescheduleUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		availableUC:   availableUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID        uint   `json:"patient_id" binding:"required"`
	DentistID        uint   `json:"dentist_id" binding:"required"`
	Date             string `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string `json:"time" binding:"required"` // HH:mm
	EndTime          string `json:"end_time"`                // HH:mm, opcional
	TreatmentTypeIDs []uint `json:"treatment_type_ids" binding:"required"`
	Purpose          string `json:"purpose"`
}

type RescheduleAppointmentRequest struct {
	DentistID        uint   `json:"dentist_id" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
	EndTime          string `json:"end_time"`
	TreatmentTypeIDs []uint `json:"treatment_type_ids" binding:"required"`
	Purpose          string `json:"purpose"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func parseAppointmentTimes(date, startHM, endHM string) (time.Time, *time.Time, error) {
	start, err := clinictime.ParseDateTime(date, startHM)
	if err != nil {
		return time.Time{}, nil, err
	}

	if endHM == "" {
		return start, nil, nil
	}

	end, err := clinictime.ParseDateTime(date, endHM)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

// writeSchedulingError traduz os erros tipados do agendamento para as
// respostas HTTP esperadas pelo formulário.
func writeSchedulingError(c *gin.Context, err error) {
	var ve *scheduling.ValidationError
	if errors.As(err, &ve) {
		httperr.ValidationFields(c, ve.Fields)
		return
	}

	var ac *scheduling.AlreadyCancelledError
	if errors.As(err, &ac) {
		httperr.BadRequest(c, "already_cancelled", "A consulta já foi cancelada.")
		return
	}

	var is *scheduling.InvalidStateError
	if errors.As(err, &is) {
		httperr.BadRequest(c, "invalid_state", "A consulta não permite esta operação no estado atual.")
		return
	}

	var nf *scheduling.NotFoundError
	if errors.As(err, &nf) {
		httperr.NotFound(c, "not_found", nf.Error())
		return
	}

	httperr.Internal(c, "scheduling_error", "Erro ao processar o agendamento.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, err := parseAppointmentTimes(req.Date, req.Time, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorID:          actorID,
		PatientID:        req.PatientID,
		DentistID:        req.DentistID,
		Start:            start,
		End:              end,
		TreatmentTypeIDs: req.TreatmentTypeIDs,
		Purpose:          req.Purpose,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, end, err := parseAppointmentTimes(req.Date, req.Time, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ActorID:          actorID,
		AppointmentID:    uint(id),
		DentistID:        req.DentistID,
		Start:            start,
		End:              end,
		TreatmentTypeIDs: req.TreatmentTypeIDs,
		Purpose:          req.Purpose,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), actorID, uint(id), req.Reason)
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), actorID, uint(id))
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dentistID, err := queryDentistID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_dentist_id", "Dentista inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := clinictime.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), dentistID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar consultas.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	dentistID, err := queryDentistID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_dentist_id", "Dentista inválido.")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), dentistID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar consultas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dentistID, err := queryDentistID(c)
	if err != nil || dentistID == 0 {
		httperr.BadRequest(c, "invalid_dentist_id", "Dentista inválido.")
		return
	}

	treatmentTypeID, err := strconv.ParseUint(c.Query("treatment_type_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_treatment_type_id", "Tipo de tratamento inválido.")
		return
	}

	date, err := clinictime.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availableUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		DentistID:       dentistID,
		TreatmentTypeID: uint(treatmentTypeID),
		Date:            date,
	})
	if err != nil {
		writeSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// queryDentistID resolve o dentista alvo. Sem ?dentist_id=, dentistas
// consultam a própria agenda; recepção e admin veem a clínica inteira.
func queryDentistID(c *gin.Context) (uint, error) {
	if v := c.Query("dentist_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(id), nil
	}

	if role, _ := c.Get(middleware.ContextUserRole); role == models.RoleDentist {
		return c.MustGet(middleware.ContextUserID).(uint), nil
	}
	return 0, nil
}
