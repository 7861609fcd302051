package content

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studioportal/internal/domain"
)

var ErrNotFound = errors.New("content not found")

type Repository interface {
	GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error)
	UpsertCompanyInfo(ctx context.Context, info *domain.CompanyInfo) error

	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, p *domain.Project) error
	UpdateProject(ctx context.Context, id int64, updates map[string]any) error
	DeleteProject(ctx context.Context, id int64) error

	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *domain.Testimonial) error
	DeleteTestimonial(ctx context.Context, id int64) error

	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	CreateFAQ(ctx context.Context, f *domain.FAQ) error
	UpdateFAQ(ctx context.Context, id int64, updates map[string]any) error
	DeleteFAQ(ctx context.Context, id int64) error

	ListPolicies(ctx context.Context) ([]domain.ServicePolicy, error)
	CreatePolicy(ctx context.Context, p *domain.ServicePolicy) error
	UpdatePolicy(ctx context.Context, id int64, updates map[string]any) error
	DeletePolicy(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCompanyInfo(ctx context.Context) (*domain.CompanyInfo, error) {
	var info domain.CompanyInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// UpsertCompanyInfo keeps a single row: insert on first write, update after.
func (r *repository) UpsertCompanyInfo(ctx context.Context, info *domain.CompanyInfo) error {
	var existing domain.CompanyInfo
	err := r.db.WithContext(ctx).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(info).Error
	}
	if err != nil {
		return err
	}
	info.ID = existing.ID
	return r.db.WithContext(ctx).Save(info).Error
}

// ListProjects orders featured first, then newest.
func (r *repository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Order("featured DESC").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) CreateProject(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) UpdateProject(ctx context.Context, id int64, updates map[string]any) error {
	return r.updateByID(ctx, &domain.Project{}, id, updates)
}

func (r *repository) DeleteProject(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, &domain.Project{}, id)
}

func (r *repository) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var testimonials []domain.Testimonial
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&testimonials).Error
	return testimonials, err
}

func (r *repository) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) DeleteTestimonial(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, &domain.Testimonial{}, id)
}

func (r *repository) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&faqs).Error
	return faqs, err
}

func (r *repository) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) UpdateFAQ(ctx context.Context, id int64, updates map[string]any) error {
	return r.updateByID(ctx, &domain.FAQ{}, id, updates)
}

func (r *repository) DeleteFAQ(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, &domain.FAQ{}, id)
}

func (r *repository) ListPolicies(ctx context.Context) ([]domain.ServicePolicy, error) {
	var policies []domain.ServicePolicy
	err := r.db.WithContext(ctx).Order("service_type ASC").Find(&policies).Error
	return policies, err
}

func (r *repository) CreatePolicy(ctx context.Context, p *domain.ServicePolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) UpdatePolicy(ctx context.Context, id int64, updates map[string]any) error {
	return r.updateByID(ctx, &domain.ServicePolicy{}, id, updates)
}

func (r *repository) DeletePolicy(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, &domain.ServicePolicy{}, id)
}

func (r *repository) updateByID(ctx context.Context, model any, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) deleteByID(ctx context.Context, model any, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
