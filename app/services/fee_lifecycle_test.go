package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func academicYear(name string, startYear int) *models.AcademicYear {
	return &models.AcademicYear{
		Name:      name,
		StartDate: models.CustomDate{Time: time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:   models.CustomDate{Time: time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, time.UTC)},
	}
}

func TestGenerateDueDate(t *testing.T) {
	ay := academicYear("2024-2025", 2024)

	t.Run("QuarterlyPicksNextUnpassedQuarterEnd", func(t *testing.T) {
		now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyQuarterly, ay, now)
		assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("QuarterlyOnTheQuarterEndKeepsIt", func(t *testing.T) {
		now := time.Date(2024, time.June, 30, 8, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyQuarterly, ay, now)
		assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("QuarterlyRollsToNextYearQ1WhenAllPassed", func(t *testing.T) {
		now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyQuarterly, ay, now)
		assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("YearlyIsDec31OfStartYear", func(t *testing.T) {
		now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyYearly, ay, now)
		assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("YearlyWithoutAcademicYearUsesCurrentYear", func(t *testing.T) {
		now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyYearly, nil, now)
		assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("OneTimeIsThirtyDaysOut", func(t *testing.T) {
		now := time.Date(2024, time.May, 1, 17, 30, 0, 0, time.UTC)
		due := GenerateDueDate(models.FrequencyOneTime, ay, now)
		assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), due)
	})

	t.Run("UnknownFrequencyFallsBackToEndOfMonth", func(t *testing.T) {
		now := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
		due := GenerateDueDate(models.FeeFrequency("weekly"), ay, now)
		assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), due)
	})
}

func TestDueDateForPeriod(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		DueDateForPeriod(2024, time.May, 10, time.UTC))

	// Day clamps to the month's length.
	assert.Equal(t,
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		DueDateForPeriod(2024, time.February, 31, time.UTC))
	assert.Equal(t,
		time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		DueDateForPeriod(2023, time.February, 31, time.UTC))
}

func TestApplyAging(t *testing.T) {
	newCollection := func() *models.FeeCollection {
		return &models.FeeCollection{
			Month:       5,
			Year:        2024,
			Amount:      1000,
			Discount:    100,
			TotalAmount: 900,
			Status:      models.FeePending,
		}
	}

	t.Run("NotPastDueIsUntouched", func(t *testing.T) {
		fc := newCollection()
		today := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

		assert.False(t, ApplyAging(fc, 10, 50, 5, today))
		assert.Equal(t, models.FeePending, fc.Status)
	})

	t.Run("OverdueInsideGraceHasNoLateFee", func(t *testing.T) {
		fc := newCollection()
		today := time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)

		assert.True(t, ApplyAging(fc, 10, 50, 5, today))
		assert.Equal(t, models.FeeOverdue, fc.Status)
		assert.Zero(t, fc.LateFee)
		assert.Equal(t, 900.0, fc.TotalAmount)
	})

	t.Run("OverdueBeyondGraceChargesLateFee", func(t *testing.T) {
		fc := newCollection()
		today := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)

		assert.True(t, ApplyAging(fc, 10, 50, 5, today))
		assert.Equal(t, models.FeeOverdue, fc.Status)
		assert.Equal(t, 50.0, fc.LateFee)
		assert.Equal(t, 950.0, fc.TotalAmount) // 1000 - 100 + 50
	})

	t.Run("OneTimeMonthZeroNeverAges", func(t *testing.T) {
		fc := newCollection()
		fc.Month = 0
		today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

		assert.False(t, ApplyAging(fc, 10, 50, 5, today))
		assert.Equal(t, models.FeePending, fc.Status)
		assert.Equal(t, 900.0, fc.TotalAmount)
	})

	t.Run("SecondPassDoesNotCompound", func(t *testing.T) {
		fc := newCollection()
		today := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)

		assert.True(t, ApplyAging(fc, 10, 50, 5, today))
		total := fc.TotalAmount

		assert.False(t, ApplyAging(fc, 10, 50, 5, today))
		assert.Equal(t, total, fc.TotalAmount)

		assert.False(t, ApplyAging(fc, 10, 50, 5, today.AddDate(0, 0, 7)))
		assert.Equal(t, total, fc.TotalAmount)
	})

	t.Run("MissingDueDayDefaultsToTenth", func(t *testing.T) {
		fc := newCollection()
		today := time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC)

		assert.True(t, ApplyAging(fc, 0, 50, 0, today))
		assert.Equal(t, models.FeeOverdue, fc.Status)
	})
}

func TestReceiptNo(t *testing.T) {
	day := time.Date(2024, time.May, 1, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, "FEE-20240501-000001", ReceiptNo(day, 1))
	assert.Equal(t, "FEE-20240501-000042", ReceiptNo(day, 42))
	assert.Equal(t, "FEE-20240501-123456", ReceiptNo(day, 123456))
}
