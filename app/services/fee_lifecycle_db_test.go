package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func currentYearRows() *sqlmock.Rows {
	now := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "name", "start_date", "end_date", "is_current", "is_active", "created_at", "updated_at",
	}).AddRow("ay-1", "2024-2025", now, now.AddDate(1, 0, -1), true, true, now, now)
}

func TestGenerateMonthlyFeesSecondRunCreatesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	// First run: one (student, structure) pair has no collection yet.
	mock.ExpectQuery(`SELECT id, name, start_date, end_date, is_current`).
		WillReturnRows(currentYearRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT s.id, fs.fee_type_id, fs.amount, fs.due_date`).
		WithArgs("ay-1", 5, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fee_type_id", "amount", "due_date"}).
			AddRow("stu-1", "ft-1", 1000.0, nil))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM fee_collections`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO fee_collections`).
		WithArgs("stu-1", "ft-1", "ay-1", 5, 2024, 1000.0, "FEE-20240501-000001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := GenerateMonthlyFees(db, now)
	assert.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second run: the NOT EXISTS filter leaves nothing to insert.
	mock.ExpectQuery(`SELECT id, name, start_date, end_date, is_current`).
		WillReturnRows(currentYearRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT s.id, fs.fee_type_id, fs.amount, fs.due_date`).
		WithArgs("ay-1", 5, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fee_type_id", "amount", "due_date"}))
	mock.ExpectCommit()

	created, err = GenerateMonthlyFees(db, now)
	assert.NoError(t, err)
	assert.Zero(t, created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManualCollectionContinuesReceiptSequence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, time.May, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM fee_collections`).
		WithArgs("FEE-20240501-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO fee_collections`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("fc-1"))
	mock.ExpectCommit()

	fc := &models.FeeCollection{
		StudentID: "stu-1",
		FeeTypeID: "ft-1",
		Month:     0,
		Year:      2024,
		Amount:    500,
		Discount:  50,
		DueDate:   models.CustomDate{Time: now.AddDate(0, 0, 30)},
	}

	assert.NoError(t, CreateManualCollection(db, fc, now))
	assert.Equal(t, "FEE-20240501-000004", fc.ReceiptNo)
	assert.Equal(t, 450.0, fc.TotalAmount)
	assert.Equal(t, models.FeePending, fc.Status)
	assert.Equal(t, "fc-1", fc.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
