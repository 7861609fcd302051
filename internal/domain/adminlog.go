package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AdminLog is the append-only audit trail of admin-performed mutations.
// Rows are only ever inserted.
type AdminLog struct {
	ID                int64          `gorm:"column:id;primaryKey" json:"id"`
	AdminID           int64          `gorm:"column:admin_id;index" json:"admin_id"`
	AdminName         string         `gorm:"column:admin_name" json:"admin_name"`
	ActionType        string         `gorm:"column:action_type;index" json:"action_type"`
	ActionDescription string         `gorm:"column:action_description" json:"action_description"`
	ResourceType      string         `gorm:"column:resource_type;index" json:"resource_type"`
	ResourceID        int64          `gorm:"column:resource_id" json:"resource_id"`
	ResourceName      string         `gorm:"column:resource_name" json:"resource_name,omitempty"`
	IPAddress         string         `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent         string         `gorm:"column:user_agent" json:"user_agent,omitempty"`
	OldValues         datatypes.JSON `gorm:"column:old_values" json:"old_values,omitempty"`
	NewValues         datatypes.JSON `gorm:"column:new_values" json:"new_values,omitempty"`
	AdditionalData    datatypes.JSON `gorm:"column:additional_data" json:"additional_data,omitempty"`
	CreatedAt         time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (AdminLog) TableName() string { return "admin_logs" }
