package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/httperr"
	"github.com/michaelgigihub/dental-clinic-api/internal/infra/storage"
	"github.com/michaelgigihub/dental-clinic-api/internal/middleware"
	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

const maxAttachmentBytes = 10 << 20 // 10 MiB

// TreatmentRecordHandler edita o conteúdo clínico de um registro de
// tratamento: anotações, dentes e anexos. A criação/remoção dos registros
// em si é feita pela reconciliação do agendamento, nunca por aqui.
type TreatmentRecordHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewTreatmentRecordHandler(
	db *gorm.DB,
	store storage.ObjectStore,
	dispatcher *audit.Dispatcher,
	log *logrus.Logger,
) *TreatmentRecordHandler {
	return &TreatmentRecordHandler{
		db:    db,
		store: store,
		audit: dispatcher,
		log:   log,
	}
}

// ======================================================
// NOTES
// ======================================================

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *TreatmentRecordHandler) UpdateNotes(c *gin.Context) {
	record, ok := h.loadRecord(c)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	record.Notes = req.Notes
	if err := h.db.Save(record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notes", "Erro ao salvar anotações.")
		return
	}

	c.JSON(http.StatusOK, record)
}

// ======================================================
// TEETH
// ======================================================

type UpdateTeethRequest struct {
	ToothNumbers []int `json:"tooth_numbers" binding:"required"`
}

func (h *TreatmentRecordHandler) UpdateTeeth(c *gin.Context) {
	record, ok := h.loadRecord(c)
	if !ok {
		return
	}

	var req UpdateTeethRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var teeth []models.Tooth
	if len(req.ToothNumbers) > 0 {
		if err := h.db.Where("number IN ?", req.ToothNumbers).Find(&teeth).Error; err != nil {
			httperr.Internal(c, "failed_to_resolve_teeth", "Erro ao buscar dentes.")
			return
		}
		if len(teeth) != len(dedupeInts(req.ToothNumbers)) {
			httperr.BadRequest(c, "unknown_tooth_number", "Número de dente desconhecido; use a notação FDI.")
			return
		}
	}

	if err := h.db.Model(record).Association("Teeth").Replace(teeth); err != nil {
		httperr.Internal(c, "failed_to_update_teeth", "Erro ao salvar dentes.")
		return
	}

	record.Teeth = teeth
	c.JSON(http.StatusOK, record)
}

// ======================================================
// FILES
// ======================================================

func (h *TreatmentRecordHandler) UploadFile(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	record, ok := h.loadRecord(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}
	if fileHeader.Size > maxAttachmentBytes {
		httperr.BadRequest(c, "file_too_large", "Arquivo acima do limite de 10 MB.")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}
	defer src.Close()

	body, err := io.ReadAll(src)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key := storage.NewObjectKey(record.ID, fileHeader.Filename)

	ctx := c.Request.Context()
	if err := h.store.Put(ctx, key, contentType, body); err != nil {
		httperr.Internal(c, "failed_to_store_file", "Erro ao armazenar arquivo.")
		return
	}

	file := models.TreatmentFile{
		TreatmentRecordID: record.ID,
		FileName:          fileHeader.Filename,
		StorageKey:        key,
		ContentType:       contentType,
		SizeBytes:         fileHeader.Size,
	}

	// imagens ganham uma prévia WebP; falha aqui não bloqueia o upload
	if storage.IsImageContentType(contentType) {
		if preview, err := storage.EncodePreview(body); err == nil {
			previewKey := key + ".preview.webp"
			if err := h.store.Put(ctx, previewKey, "image/webp", preview); err == nil {
				file.PreviewKey = &previewKey
			}
		} else {
			h.log.WithError(err).Warn("preview encoding failed")
		}
	}

	if err := h.db.Create(&file).Error; err != nil {
		httperr.Internal(c, "failed_to_save_file", "Erro ao registrar arquivo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "treatment_file_uploaded",
		Entity:   "treatment_file",
		EntityID: &file.ID,
	})

	c.JSON(http.StatusCreated, file)
}

func (h *TreatmentRecordHandler) DeleteFile(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	record, ok := h.loadRecord(c)
	if !ok {
		return
	}

	fileID, err := strconv.ParseUint(c.Param("fileID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var file models.TreatmentFile
	if err := h.db.
		Where("id = ? AND treatment_record_id = ?", fileID, record.ID).
		First(&file).Error; err != nil {
		httperr.NotFound(c, "file_not_found", "Arquivo não encontrado.")
		return
	}

	ctx := c.Request.Context()
	if err := h.store.Delete(ctx, file.StorageKey); err != nil {
		h.log.WithError(err).WithField("key", file.StorageKey).Warn("object delete failed")
	}
	if file.PreviewKey != nil {
		if err := h.store.Delete(ctx, *file.PreviewKey); err != nil {
			h.log.WithError(err).Warn("preview delete failed")
		}
	}

	if err := h.db.Delete(&file).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_file", "Erro ao remover arquivo.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "treatment_file_deleted",
		Entity:   "treatment_file",
		EntityID: &file.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *TreatmentRecordHandler) loadRecord(c *gin.Context) (*models.TreatmentRecord, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var record models.TreatmentRecord
	if err := h.db.Preload("Teeth").Preload("Files").First(&record, id).Error; err != nil {
		httperr.NotFound(c, "treatment_record_not_found", "Registro de tratamento não encontrado.")
		return nil, false
	}

	return &record, true
}

func dedupeInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
