package domain

import "time"

const MaxCommentLength = 100

// Comment is left by a client on one of their gallery images. Only the
// author can edit or delete it, and only the text is mutable.
type Comment struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	GalleryID int64     `gorm:"column:gallery_id;index" json:"gallery_id"`
	ImageID   int64     `gorm:"column:image_id;index" json:"image_id"`
	UserID    int64     `gorm:"column:user_id;index" json:"user_id"`
	Comment   string    `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }
