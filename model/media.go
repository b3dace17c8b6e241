package model

import "time"

// MediaAsset records an uploaded chat attachment stored in object storage
type MediaAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	FileName    string    `json:"file_name" gorm:"not null"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StoragePath string    `json:"storage_path" gorm:"not null"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
