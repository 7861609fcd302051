package domain

import "time"

type RequestStatus string

const (
	RequestOpen       RequestStatus = "open"
	RequestInProgress RequestStatus = "in_progress"
	RequestResolved   RequestStatus = "resolved"
	RequestClosed     RequestStatus = "closed"
)

// GeneralRequest is a free-form request a client files for the studio
// (reschedule, extra prints, etc). Clients never mutate it after creation;
// admins move it through statuses.
type GeneralRequest struct {
	ID        int64         `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64         `gorm:"column:user_id;index" json:"user_id"`
	Type      string        `gorm:"column:type" json:"type"`
	Subject   string        `gorm:"column:subject" json:"subject"`
	Message   string        `gorm:"column:message" json:"message"`
	Priority  string        `gorm:"column:priority" json:"priority"`
	Status    RequestStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (GeneralRequest) TableName() string { return "general_requests" }
