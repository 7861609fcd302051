package domain

import "time"

type GalleryStatus string

const (
	GalleryActive   GalleryStatus = "active"
	GalleryInactive GalleryStatus = "inactive"
	GalleryDraft    GalleryStatus = "draft"
)

// Gallery is a named collection of client photographs with one designated
// cover image. PhotosCount is a snapshot taken at creation time; it is not
// recomputed when individual images are removed later.
type Gallery struct {
	ID            int64         `gorm:"column:id;primaryKey" json:"id"`
	ClientID      int64         `gorm:"column:client_id;index" json:"client_id"`
	Title         string        `gorm:"column:title" json:"title"`
	ServiceType   string        `gorm:"column:service_type" json:"service_type"`
	Description   string        `gorm:"column:description" json:"description,omitempty"`
	Status        GalleryStatus `gorm:"column:status" json:"status"`
	PhotosCount   int           `gorm:"column:photos_count" json:"photos_count"`
	CoverImageURL string        `gorm:"column:cover_image_url" json:"cover_image_url"`
	FolderPath    string        `gorm:"column:folder_path" json:"folder_path"`
	CreatedBy     int64         `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`

	Images []GalleryImage `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
}

func (Gallery) TableName() string { return "galleries" }

// GalleryImage is one stored photograph inside a gallery. StorageFilename is
// uuid-based and collision-free by construction. Exactly one image per
// gallery carries IsPrimary (the cover); IsSelected is the client's pick mark.
type GalleryImage struct {
	ID               int64  `gorm:"column:id;primaryKey" json:"id"`
	GalleryID        int64  `gorm:"column:gallery_id;index" json:"gallery_id"`
	OriginalFilename string `gorm:"column:original_filename" json:"original_filename"`
	StorageFilename  string `gorm:"column:storage_filename" json:"storage_filename"`
	ImageURL         string `gorm:"column:image_url" json:"image_url"`
	FilePath         string `gorm:"column:file_path" json:"file_path"`
	IsPrimary        bool   `gorm:"column:is_primary" json:"is_primary"`
	UploadOrder      int    `gorm:"column:upload_order" json:"upload_order"`
	IsSelected       bool   `gorm:"column:is_selected" json:"is_selected"`
}

func (GalleryImage) TableName() string { return "gallery_images" }
