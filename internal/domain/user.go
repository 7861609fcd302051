package domain

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

// User is an account in the portal. Role is set at creation and no code
// path changes it afterwards.
type User struct {
	ID               int64      `gorm:"column:id;primaryKey" json:"id"`
	FirstName        string     `gorm:"column:first_name" json:"first_name"`
	LastName         string     `gorm:"column:last_name" json:"last_name"`
	Email            string     `gorm:"column:email;uniqueIndex" json:"email" validate:"required,email"`
	Phone            string     `gorm:"column:phone" json:"phone,omitempty"`
	ServiceType      string     `gorm:"column:service_type" json:"service_type,omitempty"`
	PasswordHash     string     `gorm:"column:password_hash" json:"-"`
	Role             UserRole   `gorm:"column:role" json:"role"`
	ResetTokenHash   string     `gorm:"column:reset_token_hash" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry" json:"-"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
