package comment

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"studioportal/internal/domain"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrNotAuthor       = errors.New("comment belongs to another user")
	ErrNotImageOwner   = errors.New("image belongs to another client")
	ErrCommentTooLong  = errors.New("comment exceeds maximum length")
)

type CreateCommentRequest struct {
	GalleryID int64  `json:"gallery_id" validate:"required"`
	ImageID   int64  `json:"image_id" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

type Repository interface {
	Create(ctx context.Context, cm *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByGallery(ctx context.Context, galleryID int64) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
	ImageOwner(ctx context.Context, imageID int64) (galleryID, clientID int64, err error)
	GalleryOwner(ctx context.Context, galleryID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cm *domain.Comment) error {
	return r.db.WithContext(ctx).Create(cm).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *repository) ListByGallery(ctx context.Context, galleryID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) UpdateText(ctx context.Context, id int64, text string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("comment", text).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *repository) ImageOwner(ctx context.Context, imageID int64) (int64, int64, error) {
	var row struct {
		GalleryID int64 `gorm:"column:gallery_id"`
		ClientID  int64 `gorm:"column:client_id"`
	}
	err := r.db.WithContext(ctx).
		Table("gallery_images").
		Select("gallery_images.gallery_id, galleries.client_id").
		Joins("JOIN galleries ON galleries.id = gallery_images.gallery_id").
		Where("gallery_images.id = ?", imageID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.GalleryID == 0 {
		return 0, 0, ErrImageNotFound
	}
	return row.GalleryID, row.ClientID, nil
}

func (r *repository) GalleryOwner(ctx context.Context, galleryID int64) (int64, error) {
	var clientID int64
	err := r.db.WithContext(ctx).
		Model(&domain.Gallery{}).
		Where("id = ?", galleryID).
		Pluck("client_id", &clientID).Error
	if err != nil {
		return 0, err
	}
	return clientID, nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a comment on an image inside one of the caller's galleries.
func (s *Service) Create(ctx context.Context, userID int64, req CreateCommentRequest) (*domain.Comment, error) {
	text := strings.TrimSpace(req.Comment)
	if len(text) > domain.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	galleryID, ownerID, err := s.repo.ImageOwner(ctx, req.ImageID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotImageOwner
	}

	cm := &domain.Comment{
		GalleryID: galleryID,
		ImageID:   req.ImageID,
		UserID:    userID,
		Comment:   text,
	}
	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// ListForClient returns a gallery's comments, owner-only.
func (s *Service) ListForClient(ctx context.Context, userID, galleryID int64) ([]domain.Comment, error) {
	ownerID, err := s.repo.GalleryOwner(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotImageOwner
	}
	return s.repo.ListByGallery(ctx, galleryID)
}

func (s *Service) ListForAdmin(ctx context.Context, galleryID int64) ([]domain.Comment, error) {
	return s.repo.ListByGallery(ctx, galleryID)
}

// Update edits the text of the caller's own comment. Re-submitting the
// current text is a success, not an error.
func (s *Service) Update(ctx context.Context, userID, commentID int64, req UpdateCommentRequest) (*domain.Comment, error) {
	text := strings.TrimSpace(req.Comment)
	if len(text) > domain.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	cm, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if cm.UserID != userID {
		return nil, ErrNotAuthor
	}

	if err := s.repo.UpdateText(ctx, commentID, text); err != nil {
		return nil, err
	}
	cm.Comment = text
	return cm, nil
}

func (s *Service) Delete(ctx context.Context, userID, commentID int64) error {
	cm, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if cm.UserID != userID {
		return ErrNotAuthor
	}
	return s.repo.Delete(ctx, commentID)
}
