package models

import "time"

// FeeType is a category of fee (tuition, transport, admission...).
type FeeType struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code        string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// FeeStructure is the billing template for one class x fee type x academic
// year. Once collections have been generated from it in a billing cycle it
// is treated as immutable for that cycle; edits affect future generation only.
type FeeStructure struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeeTypeID      string        `json:"fee_type_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID        string        `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string        `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount         float64       `json:"amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	Frequency      FeeFrequency  `json:"frequency" gorm:"not null;type:varchar(20)" validate:"required,oneof=monthly quarterly yearly one_time"`
	DueDate        *CustomDate   `json:"due_date,omitempty" gorm:"type:date"`
	LateFee        float64       `json:"late_fee" gorm:"type:numeric;default:0" validate:"gte=0"`
	LateFeeDays    int           `json:"late_fee_days" gorm:"default:0" validate:"gte=0"` // grace days before the late fee applies
	IsActive       bool          `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time    `json:"deleted_at,omitempty" gorm:"index"`
	FeeType        *FeeType      `json:"fee_type,omitempty" gorm:"foreignKey:FeeTypeID;references:ID"`
	Class          *Class        `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	AcademicYear   *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
}

// FeeCollection is one billing obligation: student x fee type x period.
// Exactly one row exists per (student_id, fee_type_id, month, year).
type FeeCollection struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID      string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeTypeID      string        `json:"fee_type_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID *string       `json:"academic_year_id,omitempty" gorm:"index;type:uuid"`
	Month          int           `json:"month" gorm:"not null" validate:"min=0,max=12"` // 0 for one-time fees
	Year           int           `json:"year" gorm:"not null" validate:"required"`
	Amount         float64       `json:"amount" gorm:"not null;type:numeric"`
	Discount       float64       `json:"discount" gorm:"type:numeric;default:0"`
	LateFee        float64       `json:"late_fee" gorm:"type:numeric;default:0"`
	TotalAmount    float64       `json:"total_amount" gorm:"not null;type:numeric"` // amount - discount + late_fee
	PaidAmount     float64       `json:"paid_amount" gorm:"type:numeric;default:0"`
	Status         FeeStatus     `json:"status" gorm:"not null;type:varchar(10);default:'pending'"`
	ReceiptNo      string        `json:"receipt_no" gorm:"uniqueIndex;not null"`
	DueDate        CustomDate    `json:"due_date" gorm:"type:date"`
	PaymentDate    *CustomDate   `json:"payment_date,omitempty" gorm:"type:date"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Student        *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	FeeType        *FeeType      `json:"fee_type,omitempty" gorm:"foreignKey:FeeTypeID;references:ID"`
	AcademicYear   *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
}

// Balance returns what remains payable on the collection.
func (fc *FeeCollection) Balance() float64 {
	return fc.TotalAmount - fc.PaidAmount
}

// IsFullyPaid returns true when nothing remains payable.
func (fc *FeeCollection) IsFullyPaid() bool {
	return fc.Balance() <= 0
}
