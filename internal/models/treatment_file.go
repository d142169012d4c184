package models

import "time"

type TreatmentFile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TreatmentRecordID uint `gorm:"index;not null" json:"treatment_record_id"`

	FileName    string  `gorm:"size:255;not null" json:"file_name"`
	StorageKey  string  `gorm:"size:255;uniqueIndex;not null" json:"storage_key"`
	PreviewKey  *string `gorm:"size:255" json:"preview_key"`
	ContentType string  `gorm:"size:100" json:"content_type"`
	SizeBytes   int64   `json:"size_bytes"`

	CreatedAt time.Time `json:"created_at"`
}
