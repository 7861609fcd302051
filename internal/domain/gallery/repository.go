package gallery

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studioportal/internal/domain"
)

type Repository interface {
	GetClient(ctx context.Context, clientID int64) (*domain.User, error)
	CreateWithImages(ctx context.Context, g *domain.Gallery, images []domain.GalleryImage) error
	ListWithClients(ctx context.Context) ([]GalleryWithClient, error)
	GetByID(ctx context.Context, id int64) (*domain.Gallery, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Gallery, error)
	UpdateMeta(ctx context.Context, id int64, updates map[string]any) error
	ImagePaths(ctx context.Context, galleryID int64) ([]string, error)
	DeleteWithImages(ctx context.Context, id int64) error
	GetImage(ctx context.Context, imageID int64) (*domain.GalleryImage, error)
	SetImageSelected(ctx context.Context, imageID int64, selected bool) error
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

// CreateWithImages inserts the gallery row and all of its image rows in one
// transaction. A crash can no longer leave a gallery with photos_count > 0
// and zero image rows.
func (r *repository) CreateWithImages(ctx context.Context, g *domain.Gallery, images []domain.GalleryImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].GalleryID = g.ID
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		return nil
	})
}

type adminListRow struct {
	domain.Gallery `gorm:"embedded"`
	FirstName      string `gorm:"column:first_name"`
	LastName       string `gorm:"column:last_name"`
	Email          string `gorm:"column:email"`
}

// ListWithClients returns every gallery joined with its owning client's
// display fields in a single query.
func (r *repository) ListWithClients(ctx context.Context) ([]GalleryWithClient, error) {
	var rows []adminListRow
	err := r.db.WithContext(ctx).
		Table("galleries").
		Select("galleries.*, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = galleries.client_id").
		Order("galleries.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]GalleryWithClient, 0, len(rows))
	for _, row := range rows {
		out = append(out, GalleryWithClient{
			Gallery: row.Gallery,
			Client: ClientInfo{
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
			},
		})
	}
	return out, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*domain.Gallery, error) {
	var g domain.Gallery
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("upload_order ASC")
		}).
		Where("id = ?", id).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGalleryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int64) ([]domain.Gallery, error) {
	var galleries []domain.Gallery
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("upload_order ASC")
		}).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&galleries).Error
	return galleries, err
}

func (r *repository) UpdateMeta(ctx context.Context, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Gallery{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGalleryNotFound
	}
	return nil
}

func (r *repository) ImagePaths(ctx context.Context, galleryID int64) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&domain.GalleryImage{}).
		Where("gallery_id = ?", galleryID).
		Pluck("file_path", &paths).Error
	return paths, err
}

// DeleteWithImages removes the gallery row and its image rows atomically.
// Zero affected gallery rows means the id did not exist.
func (r *repository) DeleteWithImages(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&domain.GalleryImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Gallery{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGalleryNotFound
		}
		return nil
	})
}

func (r *repository) GetImage(ctx context.Context, imageID int64) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	err := r.db.WithContext(ctx).Where("id = ?", imageID).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) SetImageSelected(ctx context.Context, imageID int64, selected bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.GalleryImage{}).
		Where("id = ?", imageID).
		Update("is_selected", selected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}
