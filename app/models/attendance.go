package models

import "time"

// TeacherAttendance is a teacher's attendance row for one calendar date.
// At most one row exists per (teacher_id, date); device punches and manual
// edits both land on the same row.
type TeacherAttendance struct {
	ID            string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TeacherID     string           `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Date          time.Time        `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Status        AttendanceStatus `json:"status" gorm:"not null;type:varchar(20)" validate:"required"`
	InTime        *time.Time       `json:"in_time,omitempty"`
	OutTime       *time.Time       `json:"out_time,omitempty"`
	LastPunchTime *time.Time       `json:"last_punch_time,omitempty"`
	PunchState    *int             `json:"punch_state,omitempty"`
	PunchType     string           `json:"punch_type,omitempty" gorm:"type:varchar(30)"`
	DeviceSerial  string           `json:"device_serial,omitempty" gorm:"type:varchar(64)"`
	MarkedBy      string           `json:"marked_by,omitempty"` // "system" or a staff user id
	Remarks       string           `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt     time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Teacher       *Teacher         `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

// StudentAttendance is a student's attendance row for one calendar date,
// keyed (student_id, date) the same way.
type StudentAttendance struct {
	ID             string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID      string           `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID *string          `json:"academic_year_id,omitempty" gorm:"index;type:uuid"`
	Date           time.Time        `json:"date" gorm:"not null;index;type:date" validate:"required"`
	Status         AttendanceStatus `json:"status" gorm:"not null;type:varchar(20)" validate:"required"`
	InTime         *time.Time       `json:"in_time,omitempty"`
	OutTime        *time.Time       `json:"out_time,omitempty"`
	LastPunchTime  *time.Time       `json:"last_punch_time,omitempty"`
	PunchState     *int             `json:"punch_state,omitempty"`
	PunchType      string           `json:"punch_type,omitempty" gorm:"type:varchar(30)"`
	DeviceSerial   string           `json:"device_serial,omitempty" gorm:"type:varchar(64)"`
	MarkedBy       string           `json:"marked_by,omitempty"`
	Remarks        string           `json:"remarks,omitempty" gorm:"type:text"`
	CreatedAt      time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	Student        *Student         `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
