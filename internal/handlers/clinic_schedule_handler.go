package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/domain/scheduling"
	"github.com/michaelgigihub/dental-clinic-api/internal/httperr"
	infraCalendar "github.com/michaelgigihub/dental-clinic-api/internal/infra/calendar"
	"github.com/michaelgigihub/dental-clinic-api/internal/middleware"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// ClinicScheduleHandler administra o expediente semanal e as exceções de
// fechamento. O núcleo de agendamento apenas lê esses dados.
type ClinicScheduleHandler struct {
	db       *gorm.DB
	calendar *infraCalendar.GormCalendar
	audit    *audit.Dispatcher
}

func NewClinicScheduleHandler(
	db *gorm.DB,
	calendar *infraCalendar.GormCalendar,
	dispatcher *audit.Dispatcher,
) *ClinicScheduleHandler {
	return &ClinicScheduleHandler{
		db:       db,
		calendar: calendar,
		audit:    dispatcher,
	}
}

// ======================================================
// EXPEDIENTE SEMANAL
// ======================================================

type ClinicDayConfig struct {
	Weekday   int     `json:"weekday" binding:"required,min=1,max=7"`
	IsClosed  bool    `json:"is_closed"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
}

type ClinicScheduleUpdateRequest struct {
	Days []ClinicDayConfig `json:"days" binding:"required"`
}

func (h *ClinicScheduleHandler) GetWeek(c *gin.Context) {
	var days []models.ClinicDaySchedule
	if err := h.db.Order("weekday ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *ClinicScheduleHandler) UpdateWeek(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req ClinicScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	fields := scheduling.FieldErrors{}
	seen := map[int]bool{}

	for _, d := range req.Days {
		if seen[d.Weekday] {
			fields.Add("days", "Dia da semana repetido.")
			continue
		}
		seen[d.Weekday] = true

		if d.IsClosed {
			continue
		}

		// dia aberto exige janela completa e coerente
		if d.OpenTime == nil || d.CloseTime == nil {
			fields.Add("days", "Dias abertos precisam de horário de abertura e fechamento.")
			continue
		}
		if !validClock(*d.OpenTime) || !validClock(*d.CloseTime) {
			fields.Add("days", "Horário inválido; use o formato HH:MM.")
			continue
		}
		if *d.OpenTime >= *d.CloseTime {
			fields.Add("days", "A abertura deve ser antes do fechamento.")
		}
	}

	if !fields.Empty() {
		httperr.ValidationFields(c, fields)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ClinicDaySchedule{}).Error; err != nil {
			return err
		}

		for _, d := range req.Days {
			day := models.ClinicDaySchedule{
				Weekday:   d.Weekday,
				IsClosed:  d.IsClosed,
				OpenTime:  d.OpenTime,
				CloseTime: d.CloseTime,
			}
			if d.IsClosed {
				day.OpenTime = nil
				day.CloseTime = nil
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar expediente.")
		return
	}

	h.calendar.InvalidateWeek(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID: &actorID,
		Action: "clinic_schedule_updated",
		Entity: "clinic_day_schedule",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// EXCEÇÕES DE FECHAMENTO
// ======================================================

type CreateClosureRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason   string `json:"reason"`
	IsClosed *bool  `json:"is_closed"`
}

func (h *ClinicScheduleHandler) ListClosures(c *gin.Context) {
	q := h.db.Order("date ASC")

	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var closures []models.ClosureException
	if err := q.Find(&closures).Error; err != nil {
		httperr.Internal(c, "failed_to_list_closures", "Erro ao listar fechamentos.")
		return
	}

	c.JSON(http.StatusOK, closures)
}

func (h *ClinicScheduleHandler) CreateClosure(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := clinictime.ParseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var count int64
	h.db.Model(&models.ClosureException{}).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "closure_already_exists", "Já existe um fechamento nesta data.")
		return
	}

	closure := models.ClosureException{
		Date:     date,
		Reason:   req.Reason,
		IsClosed: true,
	}
	if req.IsClosed != nil {
		closure.IsClosed = *req.IsClosed
	}

	if err := h.db.Create(&closure).Error; err != nil {
		httperr.Internal(c, "failed_to_create_closure", "Erro ao criar fechamento.")
		return
	}

	h.calendar.InvalidateDate(c.Request.Context(), date)

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "closure_created",
		Entity:   "closure_exception",
		EntityID: &closure.ID,
	})

	c.JSON(http.StatusCreated, closure)
}

func (h *ClinicScheduleHandler) DeleteClosure(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var closure models.ClosureException
	if err := h.db.First(&closure, id).Error; err != nil {
		httperr.NotFound(c, "closure_not_found", "Fechamento não encontrado.")
		return
	}

	if err := h.db.Delete(&closure).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_closure", "Erro ao remover fechamento.")
		return
	}

	h.calendar.InvalidateDate(c.Request.Context(), closure.Date)

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "closure_deleted",
		Entity:   "closure_exception",
		EntityID: &closure.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validClock aceita apenas "HH:MM" em 24h.
func validClock(hm string) bool {
	if len(hm) != 5 || hm[2] != ':' {
		return false
	}
	hour, err := strconv.Atoi(hm[:2])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(hm[3:])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}
