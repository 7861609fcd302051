package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studioportal/internal/domain"
)

// Entry describes one admin-performed mutation to be appended to the log.
type Entry struct {
	ActionType     string
	Description    string
	ResourceType   string
	ResourceID     int64
	ResourceName   string
	IPAddress      string
	UserAgent      string
	OldValues      map[string]any
	NewValues      map[string]any
	AdditionalData map[string]any
}

// Recorder appends admin actions to the audit trail. A failed write is
// logged and dropped; it never fails the admin's own operation.
type Recorder struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRecorder(db *gorm.DB, log *zap.Logger) *Recorder {
	return &Recorder{db: db, log: log}
}

func (r *Recorder) Record(ctx context.Context, adminID int64, entry Entry) {
	var admin domain.User
	adminName := ""
	if err := r.db.WithContext(ctx).Select("first_name", "last_name").Where("id = ?", adminID).First(&admin).Error; err == nil {
		adminName = admin.FullName()
	}

	row := domain.AdminLog{
		AdminID:           adminID,
		AdminName:         adminName,
		ActionType:        entry.ActionType,
		ActionDescription: entry.Description,
		ResourceType:      entry.ResourceType,
		ResourceID:        entry.ResourceID,
		ResourceName:      entry.ResourceName,
		IPAddress:         entry.IPAddress,
		UserAgent:         entry.UserAgent,
		OldValues:         marshalJSON(entry.OldValues),
		NewValues:         marshalJSON(entry.NewValues),
		AdditionalData:    marshalJSON(entry.AdditionalData),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.log.Error("audit_write_failed",
			zap.Int64("admin_id", adminID),
			zap.String("action_type", entry.ActionType),
			zap.Error(err),
		)
	}
}

// List returns audit rows newest first.
func (r *Recorder) List(ctx context.Context, limit, offset int) ([]domain.AdminLog, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.AdminLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.AdminLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func marshalJSON(m map[string]any) datatypes.JSON {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
