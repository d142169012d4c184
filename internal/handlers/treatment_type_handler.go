package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/httperr"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

type TreatmentTypeHandler struct {
	db *gorm.DB
}

func NewTreatmentTypeHandler(db *gorm.DB) *TreatmentTypeHandler {
	return &TreatmentTypeHandler{db: db}
}

type CreateTreatmentTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type UpdateTreatmentTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

func (h *TreatmentTypeHandler) List(c *gin.Context) {
	q := h.db.Order("id ASC")

	if c.Query("active") == "true" {
		q = q.Where("active = true")
	}

	if search := strings.TrimSpace(strings.ToLower(c.Query("query"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var types []models.TreatmentType
	if err := q.Find(&types).Error; err != nil {
		httperr.Internal(c, "failed_to_list_treatment_types", "Erro ao listar tipos de tratamento.")
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *TreatmentTypeHandler) Create(c *gin.Context) {
	var req CreateTreatmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	tt := models.TreatmentType{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: duration,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.Create(&tt).Error; err != nil {
		httperr.Internal(c, "failed_to_create_treatment_type", "Erro ao criar tipo de tratamento.")
		return
	}

	c.JSON(http.StatusCreated, tt)
}

func (h *TreatmentTypeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var tt models.TreatmentType
	if err := h.db.First(&tt, id).Error; err != nil {
		httperr.NotFound(c, "treatment_type_not_found", "Tipo de tratamento não encontrado.")
		return
	}

	var req UpdateTreatmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		tt.Name = *req.Name
	}
	if req.Description != nil {
		tt.Description = *req.Description
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		tt.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		tt.Price = *req.Price
	}
	if req.Active != nil {
		tt.Active = *req.Active
	}

	if err := h.db.Save(&tt).Error; err != nil {
		httperr.Internal(c, "failed_to_update_treatment_type", "Erro ao atualizar tipo de tratamento.")
		return
	}

	c.JSON(http.StatusOK, tt)
}
