package models

import "time"

// Teacher is a staff record. EmployeeID is the identifier enrolled on
// biometric devices, so it is what device punches key on.
type Teacher struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	UserID     *string    `json:"user_id,omitempty" gorm:"index;type:uuid"`
	EmployeeID string     `json:"employee_id" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName  string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName   string     `json:"last_name" gorm:"not null" validate:"required"`
	Phone      string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	SubjectID  *string    `json:"subject_id,omitempty" gorm:"index;type:uuid"`
	JoinDate   CustomDate `json:"join_date"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	User       *User      `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Subject    *Subject   `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
}
