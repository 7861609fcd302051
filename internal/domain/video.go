package domain

import "time"

// Video is a delivered video file for a client, stored under the same
// object-storage folder key as the client's galleries.
type Video struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	ClientID      int64     `gorm:"column:client_id;index" json:"client_id"`
	Title         string    `gorm:"column:title" json:"title"`
	Description   string    `gorm:"column:description" json:"description,omitempty"`
	VideoURL      string    `gorm:"column:video_url" json:"video_url"`
	FilePath      string    `gorm:"column:file_path" json:"file_path"`
	DurationLabel string    `gorm:"column:duration_label" json:"duration_label,omitempty"`
	CreatedBy     int64     `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Video) TableName() string { return "videos" }
