package models

// Tooth segue a notação FDI (11..18, 21..28, 31..38, 41..48).
// Tabela de referência, populada na migração.
type Tooth struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number int    `gorm:"uniqueIndex;not null" json:"number"`
	Name   string `gorm:"size:50" json:"name"`
}
