package models

import "time"

// Student represents an enrolled student. AdmissionNo is the identifier
// enrolled on biometric devices for student punches.
type Student struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	AdmissionNo    string     `json:"admission_no" gorm:"uniqueIndex;not null" validate:"required"`
	RollNo         *int       `json:"roll_no,omitempty"`
	FirstName      string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName       string     `json:"last_name" gorm:"not null" validate:"required"`
	Gender         Gender     `json:"gender" gorm:"type:varchar(10)" validate:"omitempty,oneof=male female other"`
	DateOfBirth    CustomDate `json:"date_of_birth"`
	ClassID        *string    `json:"class_id,omitempty" gorm:"index;type:uuid"`
	SectionID      *string    `json:"section_id,omitempty" gorm:"index;type:uuid"`
	AcademicYearID *string    `json:"academic_year_id,omitempty" gorm:"index;type:uuid"`
	GuardianName   string     `json:"guardian_name,omitempty"`
	GuardianPhone  string     `json:"guardian_phone,omitempty" gorm:"type:varchar(20)"`
	AdmissionDate  CustomDate `json:"admission_date"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Class          *Class     `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	Section        *Section   `json:"section,omitempty" gorm:"foreignKey:SectionID;references:ID"`
}
