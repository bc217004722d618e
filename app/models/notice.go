package models

import "time"

// Notice is an announcement shown on the portal dashboards.
type Notice struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"not null" validate:"required"`
	Body        string     `json:"body" gorm:"type:text" validate:"required"`
	Audience    string     `json:"audience" gorm:"type:varchar(20);default:'all'" validate:"oneof=all teachers students parents"`
	PublishedAt CustomDate `json:"published_at" gorm:"type:date"`
	ExpiresAt   *CustomDate `json:"expires_at,omitempty" gorm:"type:date"`
	CreatedBy   string     `json:"created_by,omitempty" gorm:"type:uuid"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
