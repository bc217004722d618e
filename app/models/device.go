package models

import (
	"fmt"
	"time"
)

// DeviceSetting is the process-wide attendance configuration. It is stored as
// a single row but handlers load it once per request and pass it by value into
// the reconciliation routines, which never touch the database for it.
type DeviceSetting struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TeacherInTime      string    `json:"teacher_in_time" gorm:"type:varchar(5);default:'09:00'" validate:"required"`  // HH:MM
	TeacherOutTime     string    `json:"teacher_out_time" gorm:"type:varchar(5);default:'16:00'" validate:"required"` // HH:MM
	TeacherLateTime    string    `json:"teacher_late_time" gorm:"type:varchar(5);default:'09:00'" validate:"required"`
	StudentInTime      string    `json:"student_in_time" gorm:"type:varchar(5);default:'08:00'" validate:"required"`
	StudentLateMinutes int       `json:"student_late_minutes" gorm:"default:15" validate:"gte=0"`
	AutoMarkLate       bool      `json:"auto_mark_late" gorm:"default:true"`
	AutoMarkEarlyLeave bool      `json:"auto_mark_early_leave" gorm:"default:true"`
	WeekendDays        []int     `json:"weekend_days" gorm:"type:integer[]"` // time.Weekday values, 0=Sunday
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsWeekend reports whether the date falls on a configured weekend day.
func (ds *DeviceSetting) IsWeekend(date time.Time) bool {
	for _, d := range ds.WeekendDays {
		if int(date.Weekday()) == d {
			return true
		}
	}
	return false
}

// TimeOn combines an HH:MM setting with a calendar date. A malformed setting
// returns an error rather than a zero time so callers can skip derivation.
func TimeOn(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time setting %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// DeviceStatus is the singleton sync-health row updated after every device
// sync. Operational visibility only; no business logic reads it.
type DeviceStatus struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	DeviceID     string     `json:"device_id" gorm:"type:varchar(64)"`
	DeviceName   string     `json:"device_name" gorm:"type:varchar(100)"`
	DeviceIP     string     `json:"device_ip" gorm:"type:varchar(45)"`
	SerialNumber string     `json:"serial_number" gorm:"type:varchar(64)"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
	LastSyncOK   bool       `json:"last_sync_ok" gorm:"default:false"`
	Processed    int        `json:"processed" gorm:"default:0"`
	AbsentMarked int        `json:"absent_marked" gorm:"default:0"`
	ErrorCount   int        `json:"error_count" gorm:"default:0"`
	Message      string     `json:"message,omitempty" gorm:"type:text"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Holiday is a configured non-working date; attendance sync suppresses
// absence marking on these dates.
type Holiday struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"not null" validate:"required"`
	Date      CustomDate `json:"date" gorm:"not null;uniqueIndex;type:date" validate:"required"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}
