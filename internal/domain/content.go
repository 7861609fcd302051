package domain

import "time"

// Public marketing content. All of it is world-readable and admin-editable.

type CompanyInfo struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Tagline     string    `gorm:"column:tagline" json:"tagline,omitempty"`
	About       string    `gorm:"column:about" json:"about,omitempty"`
	Email       string    `gorm:"column:email" json:"email,omitempty"`
	Phone       string    `gorm:"column:phone" json:"phone,omitempty"`
	Address     string    `gorm:"column:address" json:"address,omitempty"`
	SocialLinks string    `gorm:"column:social_links" json:"social_links,omitempty"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CompanyInfo) TableName() string { return "company_info" }

type Project struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	ServiceType string    `gorm:"column:service_type" json:"service_type,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CoverURL    string    `gorm:"column:cover_url" json:"cover_url,omitempty"`
	Featured    bool      `gorm:"column:featured" json:"featured"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

type Testimonial struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	AuthorName string    `gorm:"column:author_name" json:"author_name"`
	Quote      string    `gorm:"column:quote" json:"quote"`
	Rating     int       `gorm:"column:rating" json:"rating"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }

type FAQ struct {
	ID        int64  `gorm:"column:id;primaryKey" json:"id"`
	Question  string `gorm:"column:question" json:"question"`
	Answer    string `gorm:"column:answer" json:"answer"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
}

func (FAQ) TableName() string { return "faqs" }

type ServicePolicy struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	ServiceType string `gorm:"column:service_type" json:"service_type"`
	Title       string `gorm:"column:title" json:"title"`
	Body        string `gorm:"column:body" json:"body"`
}

func (ServicePolicy) TableName() string { return "service_policies" }
