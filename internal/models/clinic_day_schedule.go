package models

import "time"

// ClinicDaySchedule define o expediente semanal da clínica.
// Weekday segue ISO-8601: 1 = segunda ... 7 = domingo.
// OpenTime/CloseTime usam o formato "15:04" e são obrigatórios
// quando IsClosed = false.
type ClinicDaySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday   int     `gorm:"uniqueIndex;not null" json:"weekday"`
	OpenTime  *string `gorm:"size:5" json:"open_time"`
	CloseTime *string `gorm:"size:5" json:"close_time"`
	IsClosed  bool    `gorm:"default:false" json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
