package gallery

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrGalleryNotFound  = errors.New("gallery not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrNoFiles          = errors.New("no image files provided")
	ErrAllUploadsFailed = errors.New("all file uploads failed")
	ErrNotGalleryOwner  = errors.New("gallery does not belong to this client")
)
