package models

import "time"

// ClosureException sobrepõe o expediente semanal em uma data específica
// (feriado, fechamento pontual). Consultada pelo agendamento, nunca alterada.
type ClosureException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date     time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Reason   string    `gorm:"size:255" json:"reason"`
	IsClosed bool      `gorm:"default:true" json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
}
