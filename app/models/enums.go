package models

// AttendanceStatus defines the possible status values for an attendance record.
type AttendanceStatus string

const (
	Present       AttendanceStatus = "present"
	Absent        AttendanceStatus = "absent"
	Late          AttendanceStatus = "late"
	HalfDay       AttendanceStatus = "half_day"
	EarlyLeave    AttendanceStatus = "early_leave"
	Excused       AttendanceStatus = "excused"
	OnLeave       AttendanceStatus = "leave"
	StatusHoliday AttendanceStatus = "holiday"
)

// FeeStatus defines the lifecycle states of a fee collection.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
	FeeOverdue FeeStatus = "overdue"
)

// FeeFrequency defines how often a fee structure bills.
type FeeFrequency string

const (
	FrequencyMonthly   FeeFrequency = "monthly"
	FrequencyQuarterly FeeFrequency = "quarterly"
	FrequencyYearly    FeeFrequency = "yearly"
	FrequencyOneTime   FeeFrequency = "one_time"
)

// PunchState is the raw state a biometric device reports with each punch.
// 0 = check-in, 1 = check-out.
type PunchState int

const (
	PunchIn  PunchState = 0
	PunchOut PunchState = 1
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Role names used by the role middleware.
const (
	RoleAdmin       = "admin"
	RoleHeadTeacher = "head_teacher"
	RoleTeacher     = "teacher"
	RoleStudent     = "student"
	RoleParent      = "parent"
)
