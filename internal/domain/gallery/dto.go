package gallery

import "studioportal/internal/domain"

type CreateGalleryRequest struct {
	ClientID    int64  `form:"id" validate:"required"`
	Title       string `form:"title" validate:"required"`
	ServiceType string `form:"service" validate:"required"`
	Description string `form:"description"`
	Status      string `form:"status"`
}

type UpdateGalleryRequest struct {
	Title       string `json:"title"`
	ServiceType string `json:"service"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UploadResult is the per-file outcome of the bulk upload. Failures stay in
// the list instead of being silently dropped.
type UploadResult struct {
	OriginalFilename string `json:"original_filename"`
	OK               bool   `json:"ok"`
	Error            string `json:"error,omitempty"`
}

type CreateResult struct {
	Gallery       *domain.Gallery       `json:"gallery"`
	Images        []domain.GalleryImage `json:"images"`
	UploadResults []UploadResult        `json:"upload_results"`
	Folder        string                `json:"folder"`
}

// ClientInfo is the owning client's display fields on the admin listing.
type ClientInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type GalleryWithClient struct {
	domain.Gallery
	Client ClientInfo `json:"client"`
}

// DeleteResult reports the row deletion plus the best-effort blob cleanup.
type DeleteResult struct {
	DeletedFiles int `json:"deleted_files"`
	FailedFiles  int `json:"failed_files"`
}
