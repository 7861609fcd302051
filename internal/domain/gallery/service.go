package gallery

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studioportal/internal/domain"
)

// ObjectStorage is the blob store the gallery workflows write to.
type ObjectStorage interface {
	Upload(ctx context.Context, body io.Reader, folder, name, contentType string) (url, path string, err error)
	Delete(ctx context.Context, path string) error
	Download(ctx context.Context, path string) (io.ReadCloser, string, error)
}

type Service struct {
	repo    Repository
	storage ObjectStorage
	log     *zap.Logger
}

func NewService(repo Repository, storage ObjectStorage, log *zap.Logger) *Service {
	return &Service{repo: repo, storage: storage, log: log}
}

// Create runs the gallery creation workflow: resolve the client, upload the
// files one by one under the client's folder key, then persist the gallery
// row and one image row per successful upload in a single transaction.
//
// A per-file upload failure is recorded in the result list and skipped; it
// does not abort the batch. Zero successful uploads aborts with
// ErrAllUploadsFailed and persists nothing. The first file that uploads
// successfully becomes the primary (cover) image.
func (s *Service) Create(ctx context.Context, adminID int64, req CreateGalleryRequest, files []*multipart.FileHeader) (*CreateResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	client, err := s.repo.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	folder := FolderKey(client.ID, client.FullName())

	status := domain.GalleryStatus(req.Status)
	switch status {
	case domain.GalleryActive, domain.GalleryInactive, domain.GalleryDraft:
	default:
		status = domain.GalleryActive
	}

	var (
		images  []domain.GalleryImage
		results = make([]UploadResult, 0, len(files))
	)

	for i, fh := range files {
		img, err := s.uploadOne(ctx, folder, fh, i+1)
		if err != nil {
			s.log.Warn("gallery_image_upload_failed",
				zap.String("folder", folder),
				zap.String("filename", fh.Filename),
				zap.Error(err),
			)
			results = append(results, UploadResult{OriginalFilename: fh.Filename, OK: false, Error: err.Error()})
			continue
		}

		if len(images) == 0 {
			img.IsPrimary = true
		}
		images = append(images, *img)
		results = append(results, UploadResult{OriginalFilename: fh.Filename, OK: true})
	}

	if len(images) == 0 {
		return nil, ErrAllUploadsFailed
	}

	g := &domain.Gallery{
		ClientID:      client.ID,
		Title:         strings.TrimSpace(req.Title),
		ServiceType:   strings.TrimSpace(req.ServiceType),
		Description:   strings.TrimSpace(req.Description),
		Status:        status,
		PhotosCount:   len(images),
		CoverImageURL: images[0].ImageURL,
		FolderPath:    folder,
		CreatedBy:     adminID,
	}

	if err := s.repo.CreateWithImages(ctx, g, images); err != nil {
		// Compensate: rows never landed, so the freshly uploaded blobs are
		// orphans. Clean them up best-effort.
		for _, img := range images {
			if delErr := s.storage.Delete(ctx, img.FilePath); delErr != nil {
				s.log.Warn("gallery_orphan_blob_cleanup_failed",
					zap.String("path", img.FilePath),
					zap.Error(delErr),
				)
			}
		}
		return nil, fmt.Errorf("persist gallery: %w", err)
	}

	return &CreateResult{
		Gallery:       g,
		Images:        images,
		UploadResults: results,
		Folder:        folder,
	}, nil
}

func (s *Service) uploadOne(ctx context.Context, folder string, fh *multipart.FileHeader, order int) (*domain.GalleryImage, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	// Sniff the real content type; the declared header is not trusted.
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	contentType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("not an image: %s", contentType)
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	storageName := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	url, path, err := s.storage.Upload(ctx, file, folder, storageName, contentType)
	if err != nil {
		return nil, err
	}

	return &domain.GalleryImage{
		OriginalFilename: fh.Filename,
		StorageFilename:  storageName,
		ImageURL:         url,
		FilePath:         path,
		UploadOrder:      order,
	}, nil
}

func (s *Service) ListWithClients(ctx context.Context) ([]GalleryWithClient, error) {
	return s.repo.ListWithClients(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Gallery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]domain.Gallery, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) UpdateMeta(ctx context.Context, id int64, req UpdateGalleryRequest) (*domain.Gallery, error) {
	updates := map[string]any{}
	if req.Title != "" {
		updates["title"] = strings.TrimSpace(req.Title)
	}
	if req.ServiceType != "" {
		updates["service_type"] = strings.TrimSpace(req.ServiceType)
	}
	if req.Description != "" {
		updates["description"] = strings.TrimSpace(req.Description)
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateMeta(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the gallery and its image rows, then cleans up the stored
// blobs. File paths are captured before the row delete on purpose: once the
// rows are gone there is no other record of what to clean up. Blob deletes
// are best-effort and independent; a failure is logged and counted, never
// retried, and never blocks completion.
func (s *Service) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	paths, err := s.repo.ImagePaths(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteWithImages(ctx, id); err != nil {
		return nil, err
	}

	result := &DeleteResult{}
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			s.log.Warn("gallery_blob_delete_failed",
				zap.Int64("gallery_id", id),
				zap.String("path", path),
				zap.Error(err),
			)
			result.FailedFiles++
			continue
		}
		result.DeletedFiles++
	}
	return result, nil
}

// DownloadImage streams an image blob to a client that owns it.
func (s *Service) DownloadImage(ctx context.Context, clientID, imageID int64) (io.ReadCloser, string, string, error) {
	img, err := s.imageOwnedBy(ctx, clientID, imageID)
	if err != nil {
		return nil, "", "", err
	}

	body, contentType, err := s.storage.Download(ctx, img.FilePath)
	if err != nil {
		return nil, "", "", fmt.Errorf("download %s: %w", img.FilePath, err)
	}
	return body, contentType, img.OriginalFilename, nil
}

// SelectImage toggles the client's pick mark on one of their images.
func (s *Service) SelectImage(ctx context.Context, clientID, imageID int64, selected bool) error {
	if _, err := s.imageOwnedBy(ctx, clientID, imageID); err != nil {
		return err
	}
	return s.repo.SetImageSelected(ctx, imageID, selected)
}

func (s *Service) imageOwnedBy(ctx context.Context, clientID, imageID int64) (*domain.GalleryImage, error) {
	img, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	g, err := s.repo.GetByID(ctx, img.GalleryID)
	if err != nil {
		return nil, err
	}
	if g.ClientID != clientID {
		return nil, ErrNotGalleryOwner
	}
	return img, nil
}

// FolderKey derives the object-storage prefix for a client:
// "<id>-<full name stripped to lowercase alphanumerics>".
func FolderKey(clientID int64, fullName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, fullName)
	return fmt.Sprintf("%d-%s", clientID, sanitized)
}
