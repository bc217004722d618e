package models

import "time"

type Class struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name         string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code         string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	TeacherID    *string    `json:"teacher_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	StudentCount int        `json:"student_count" gorm:"-"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Teacher      *Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
	Sections     []*Section `json:"sections,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	Subjects     []*Subject `json:"subjects,omitempty" gorm:"many2many:class_subjects;"`
}

// Section is a division within a class (e.g. "7A", "7B").
type Section struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ClassID   string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Capacity  int       `json:"capacity" gorm:"default:40"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Class     *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}

type Subject struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
