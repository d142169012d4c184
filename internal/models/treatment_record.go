package models

import "time"

// TreatmentRecord registra um tipo de tratamento executado (ou previsto)
// dentro de uma consulta. Único por (appointment_id, treatment_type_id).
type TreatmentRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex:idx_appointment_treatment;not null" json:"appointment_id"`

	TreatmentTypeID uint          `gorm:"uniqueIndex:idx_appointment_treatment;not null" json:"treatment_type_id"`
	TreatmentType   TreatmentType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"treatment_type"`

	Notes string `gorm:"type:text" json:"notes"`

	Files []TreatmentFile `json:"files"`
	Teeth []Tooth         `gorm:"many2many:treatment_record_teeth;" json:"teeth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
