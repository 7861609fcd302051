package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studioportal/internal/domain"
	"studioportal/internal/domain/gallery"
)

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrClientNotFound = errors.New("client not found")
	ErrNotVideoFile   = errors.New("file is not a video")
)

type CreateVideoRequest struct {
	ClientID      int64  `form:"id" validate:"required"`
	Title         string `form:"title" validate:"required"`
	Description   string `form:"description"`
	DurationLabel string `form:"duration"`
}

// VideoWithClient is the admin listing row.
type VideoWithClient struct {
	domain.Video
	Client struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"client"`
}

type ObjectStorage interface {
	Upload(ctx context.Context, body io.Reader, folder, name, contentType string) (url, path string, err error)
	Delete(ctx context.Context, path string) error
}

type Repository interface {
	GetClient(ctx context.Context, clientID int64) (*domain.User, error)
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Video, error)
	ListWithClients(ctx context.Context) ([]VideoWithClient, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetClient(ctx context.Context, clientID int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", clientID, domain.RoleClient).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	var v domain.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int64) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

type adminVideoRow struct {
	domain.Video `gorm:"embedded"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Email        string `gorm:"column:email"`
}

func (r *repository) ListWithClients(ctx context.Context) ([]VideoWithClient, error) {
	var rows []adminVideoRow
	err := r.db.WithContext(ctx).
		Table("videos").
		Select("videos.*, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = videos.client_id").
		Order("videos.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]VideoWithClient, 0, len(rows))
	for _, row := range rows {
		item := VideoWithClient{Video: row.Video}
		item.Client.FirstName = row.FirstName
		item.Client.LastName = row.LastName
		item.Client.Email = row.Email
		out = append(out, item)
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Video{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

type Service struct {
	repo    Repository
	storage ObjectStorage
	log     *zap.Logger
}

func NewService(repo Repository, storage ObjectStorage, log *zap.Logger) *Service {
	return &Service{repo: repo, storage: storage, log: log}
}

// Create uploads one video under the client's folder key and records it.
func (s *Service) Create(ctx context.Context, adminID int64, req CreateVideoRequest, fh *multipart.FileHeader) (*domain.Video, error) {
	client, err := s.repo.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	contentType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !strings.HasPrefix(contentType, "video/") {
		return nil, ErrNotVideoFile
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	folder := gallery.FolderKey(client.ID, client.FullName())
	storageName := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))

	url, path, err := s.storage.Upload(ctx, file, folder, storageName, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	v := &domain.Video{
		ClientID:      client.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		VideoURL:      url,
		FilePath:      path,
		DurationLabel: strings.TrimSpace(req.DurationLabel),
		CreatedBy:     adminID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			s.log.Warn("video_orphan_blob_cleanup_failed", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) ListWithClients(ctx context.Context) ([]VideoWithClient, error) {
	return s.repo.ListWithClients(ctx)
}

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]domain.Video, error) {
	return s.repo.ListByClient(ctx, clientID)
}

// Delete removes the row first, then cleans up the blob best-effort.
func (s *Service) Delete(ctx context.Context, id int64) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, v.FilePath); err != nil {
		s.log.Warn("video_blob_delete_failed", zap.String("path", v.FilePath), zap.Error(err))
	}
	return nil
}
