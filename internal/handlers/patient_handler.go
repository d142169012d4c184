package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/httperr"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type CreatePatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Address   string `json:"address"`
}

func (h *PatientHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")

	if search := strings.TrimSpace(strings.ToLower(c.Query("query"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var patients []models.Patient
	if err := q.Limit(100).Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Erro ao listar pacientes.")
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	patient := models.Patient{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	if req.BirthDate != "" {
		birth, err := clinictime.ParseDate(req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
		patient.BirthDate = &birth
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Erro ao cadastrar paciente.")
		return
	}

	c.JSON(http.StatusCreated, patient)
}
