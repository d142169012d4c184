package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DentistID uint `json:"dentist_id"`
	Dentist   User `gorm:"foreignKey:DentistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"dentist"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Purpose            string  `gorm:"size:255" json:"purpose"`
	CancellationReason *string `gorm:"size:255" json:"cancellation_reason"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	TreatmentRecords []TreatmentRecord `json:"treatment_records"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
