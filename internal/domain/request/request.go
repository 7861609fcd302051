package request

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"studioportal/internal/domain"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrInvalidStatus   = errors.New("invalid request status")
)

type CreateRequest struct {
	Type     string `json:"type" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestWithClient is the admin listing row: request plus the filing
// client's display fields, joined in one query.
type RequestWithClient struct {
	domain.GeneralRequest
	Client struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"client"`
}

type Repository interface {
	Create(ctx context.Context, gr *domain.GeneralRequest) error
	ListByUser(ctx context.Context, userID int64) ([]domain.GeneralRequest, error)
	ListWithClients(ctx context.Context) ([]RequestWithClient, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, gr *domain.GeneralRequest) error {
	return r.db.WithContext(ctx).Create(gr).Error
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]domain.GeneralRequest, error) {
	var requests []domain.GeneralRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

type adminRequestRow struct {
	domain.GeneralRequest `gorm:"embedded"`
	FirstName             string `gorm:"column:first_name"`
	LastName              string `gorm:"column:last_name"`
	Email                 string `gorm:"column:email"`
}

func (r *repository) ListWithClients(ctx context.Context) ([]RequestWithClient, error) {
	var rows []adminRequestRow
	err := r.db.WithContext(ctx).
		Table("general_requests").
		Select("general_requests.*, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = general_requests.user_id").
		Order("general_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]RequestWithClient, 0, len(rows))
	for _, row := range rows {
		item := RequestWithClient{GeneralRequest: row.GeneralRequest}
		item.Client.FirstName = row.FirstName
		item.Client.LastName = row.LastName
		item.Client.Email = row.Email
		out = append(out, item)
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.GeneralRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*domain.GeneralRequest, error) {
	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = "normal"
	}

	gr := &domain.GeneralRequest{
		UserID:   userID,
		Type:     strings.TrimSpace(req.Type),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		Priority: priority,
		Status:   domain.RequestOpen,
	}
	if err := s.repo.Create(ctx, gr); err != nil {
		return nil, err
	}
	return gr, nil
}

func (s *Service) ListForClient(ctx context.Context, userID int64) ([]domain.GeneralRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListForAdmin(ctx context.Context) ([]RequestWithClient, error) {
	return s.repo.ListWithClients(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := domain.RequestStatus(status)
	switch st {
	case domain.RequestOpen, domain.RequestInProgress, domain.RequestResolved, domain.RequestClosed:
	default:
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, st)
}
