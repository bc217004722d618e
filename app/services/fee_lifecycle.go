package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// defaultDueDay is the day of month a collection falls due when its structure
// carries no stored due date.
const defaultDueDay = 10

// ReceiptNo formats a daily-sequential receipt number: FEE-YYYYMMDD-NNNNNN.
func ReceiptNo(day time.Time, seq int) string {
	return fmt.Sprintf("FEE-%s-%06d", day.Format("20060102"), seq)
}

// GenerateMonthlyFees materializes this month's obligations: one collection
// per (active student, monthly fee structure for the student's class) unless
// one already exists for the (student, fee type, month, year) tuple. The
// existence check and the inserts run in a single transaction, so re-running
// inside the same period produces no duplicates.
func GenerateMonthlyFees(db *sql.DB, now time.Time) (int, error) {
	ay, err := database.GetCurrentAcademicYear(db)
	if err != nil {
		return 0, fmt.Errorf("failed to load current academic year: %w", err)
	}
	if ay == nil {
		log.Println("Fee generation skipped: no current academic year configured")
		return 0, nil
	}

	month, year := int(now.Month()), now.Year()

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT s.id, fs.fee_type_id, fs.amount, fs.due_date
		FROM students s
		JOIN fee_structures fs ON fs.class_id = s.class_id
		WHERE s.is_active = true AND s.deleted_at IS NULL
		AND fs.academic_year_id = $1
		AND fs.frequency = 'monthly'
		AND fs.is_active = true AND fs.deleted_at IS NULL
		AND NOT EXISTS (
			SELECT 1 FROM fee_collections fc
			WHERE fc.student_id = s.id
			AND fc.fee_type_id = fs.fee_type_id
			AND fc.month = $2 AND fc.year = $3
		)`, ay.ID, month, year)
	if err != nil {
		return 0, fmt.Errorf("failed to query due fee structures: %w", err)
	}

	type pending struct {
		studentID string
		feeTypeID string
		amount    float64
		dueDate   sql.NullTime
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.studentID, &p.feeTypeID, &p.amount, &p.dueDate); err != nil {
			rows.Close()
			return 0, err
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(todo) == 0 {
		return 0, tx.Commit()
	}

	// Receipt numbers are sequential per day; continue from today's count.
	var seq int
	receiptDay := now.Format("20060102")
	err = tx.QueryRow(`SELECT COUNT(*) FROM fee_collections WHERE receipt_no LIKE $1`,
		"FEE-"+receiptDay+"-%").Scan(&seq)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, p := range todo {
		due := time.Date(year, now.Month(), defaultDueDay, 0, 0, 0, 0, now.Location())
		if p.dueDate.Valid {
			due = p.dueDate.Time
		}

		seq++
		res, err := tx.Exec(`
			INSERT INTO fee_collections
				(student_id, fee_type_id, academic_year_id, month, year, amount, total_amount,
				 status, receipt_no, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $6, 'pending', $7, $8)
			ON CONFLICT (student_id, fee_type_id, month, year) DO NOTHING`,
			p.studentID, p.feeTypeID, ay.ID, month, year, p.amount, ReceiptNo(now, seq), due)
		if err != nil {
			return 0, fmt.Errorf("failed to insert fee collection for student %s: %w", p.studentID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// CreateManualCollection inserts a staff-created collection, typically a
// one-time fee carrying month 0. The receipt number continues today's
// sequence, the same series the generator uses.
func CreateManualCollection(db *sql.DB, fc *models.FeeCollection, now time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var seq int
	receiptDay := now.Format("20060102")
	err = tx.QueryRow(`SELECT COUNT(*) FROM fee_collections WHERE receipt_no LIKE $1`,
		"FEE-"+receiptDay+"-%").Scan(&seq)
	if err != nil {
		return err
	}

	fc.ReceiptNo = ReceiptNo(now, seq+1)
	fc.TotalAmount = fc.Amount - fc.Discount
	fc.Status = models.FeePending

	err = tx.QueryRow(`
		INSERT INTO fee_collections
			(student_id, fee_type_id, academic_year_id, month, year, amount, discount, total_amount,
			 status, receipt_no, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		fc.StudentID, fc.FeeTypeID, fc.AcademicYearID, fc.Month, fc.Year, fc.Amount, fc.Discount,
		fc.TotalAmount, fc.Status, fc.ReceiptNo, fc.DueDate.Time).Scan(&fc.ID)
	if err != nil {
		return fmt.Errorf("failed to insert fee collection: %w", err)
	}
	return tx.Commit()
}

// ApplyAging advances one pending collection against today's date. Returns
// true when the row changed. The late fee is charged only once the grace
// period is exhausted, and the total is recomputed rather than accumulated,
// so repeated passes never compound fees.
func ApplyAging(fc *models.FeeCollection, dueDay int, lateFee float64, graceDays int, today time.Time) bool {
	if fc.Status != models.FeePending {
		return false
	}
	// One-time collections carry month 0 and have no monthly billing period
	// to age against.
	if fc.Month < 1 || fc.Month > 12 {
		return false
	}
	if dueDay <= 0 {
		dueDay = defaultDueDay
	}

	due := DueDateForPeriod(fc.Year, time.Month(fc.Month), dueDay, today.Location())
	today = dateOf(today)
	if !today.After(due) {
		return false
	}

	daysOverdue := int(today.Sub(due).Hours() / 24)
	fc.Status = models.FeeOverdue
	fc.LateFee = 0
	if daysOverdue > graceDays {
		fc.LateFee = lateFee
	}
	fc.TotalAmount = fc.Amount - fc.Discount + fc.LateFee
	return true
}

// AgeFeeCollections runs the aging pass over every pending collection whose
// fee structure resolves (fee type + student's class + academic year);
// collections without a matching structure are skipped.
func AgeFeeCollections(db *sql.DB, now time.Time) (int, error) {
	rows, err := db.Query(`
		SELECT fc.id, fc.student_id, fc.fee_type_id, fc.academic_year_id, fc.month, fc.year,
		       fc.amount, fc.discount, fc.late_fee, fc.total_amount, fc.paid_amount, fc.status,
		       fs.due_date, fs.late_fee, fs.late_fee_days
		FROM fee_collections fc
		JOIN students s ON fc.student_id = s.id
		JOIN fee_structures fs ON fs.fee_type_id = fc.fee_type_id
			AND fs.class_id = s.class_id
			AND fs.academic_year_id = fc.academic_year_id
		WHERE fc.status = 'pending' AND fc.month BETWEEN 1 AND 12
			AND fs.deleted_at IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to query pending collections: %w", err)
	}

	type agingRow struct {
		fc        models.FeeCollection
		dueDate   sql.NullTime
		lateFee   float64
		graceDays int
	}
	var pending []agingRow
	for rows.Next() {
		var r agingRow
		err := rows.Scan(&r.fc.ID, &r.fc.StudentID, &r.fc.FeeTypeID, &r.fc.AcademicYearID,
			&r.fc.Month, &r.fc.Year, &r.fc.Amount, &r.fc.Discount, &r.fc.LateFee,
			&r.fc.TotalAmount, &r.fc.PaidAmount, &r.fc.Status,
			&r.dueDate, &r.lateFee, &r.graceDays)
		if err != nil {
			rows.Close()
			return 0, err
		}
		pending = append(pending, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	aged := 0
	for _, r := range pending {
		dueDay := defaultDueDay
		if r.dueDate.Valid {
			dueDay = r.dueDate.Time.Day()
		}
		if !ApplyAging(&r.fc, dueDay, r.lateFee, r.graceDays, now) {
			continue
		}

		_, err := db.Exec(`UPDATE fee_collections
			SET status = $1, late_fee = $2, total_amount = $3, updated_at = NOW()
			WHERE id = $4`,
			r.fc.Status, r.fc.LateFee, r.fc.TotalAmount, r.fc.ID)
		if err != nil {
			log.Printf("Failed to age fee collection %s: %v", r.fc.ID, err)
			continue
		}
		aged++
	}
	return aged, nil
}

// DueDateForPeriod builds a due date from a billing period and a day of
// month, clamping the day to the month's length.
func DueDateForPeriod(year int, month time.Month, day int, loc *time.Location) time.Time {
	if month < time.January || month > time.December {
		month = time.January
	}
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// GenerateDueDate derives the initial due date for a new or edited fee
// structure from its billing frequency:
//   - quarterly: the next unpassed quarter end (Mar 31 / Jun 30 / Sep 30 /
//     Dec 31) of the academic year's start year, rolling into the next
//     year's Q1 when all have passed;
//   - yearly: Dec 31 of the academic year's start year (current year when
//     no academic year is given);
//   - one_time: 30 days from now;
//   - anything else: the end of the current month.
func GenerateDueDate(frequency models.FeeFrequency, ay *models.AcademicYear, now time.Time) time.Time {
	today := dateOf(now)

	switch frequency {
	case models.FrequencyQuarterly:
		startYear := now.Year()
		if ay != nil {
			startYear = ay.StartYear()
		}
		quarterEnds := []time.Time{
			time.Date(startYear, time.March, 31, 0, 0, 0, 0, now.Location()),
			time.Date(startYear, time.June, 30, 0, 0, 0, 0, now.Location()),
			time.Date(startYear, time.September, 30, 0, 0, 0, 0, now.Location()),
			time.Date(startYear, time.December, 31, 0, 0, 0, 0, now.Location()),
		}
		for _, q := range quarterEnds {
			if !q.Before(today) {
				return q
			}
		}
		return time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, now.Location())

	case models.FrequencyYearly:
		year := now.Year()
		if ay != nil {
			year = ay.StartYear()
		}
		return time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location())

	case models.FrequencyOneTime:
		return today.AddDate(0, 0, 30)

	default:
		return time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
	}
}

// RunFeeSweep runs generation then aging, gated to at most once per hour.
// It is called from request middleware and from the scheduler; failures are
// logged and swallowed so they never surface as a request failure.
func RunFeeSweep(db *sql.DB, guard *HourlyGuard) {
	if !guard.ShouldRun("fee_generation_check") {
		return
	}
	now := guard.now()

	if created, err := GenerateMonthlyFees(db, now); err != nil {
		log.Printf("Fee generation failed: %v", err)
	} else if created > 0 {
		log.Printf("Fee generation created %d collections", created)
	}

	if aged, err := AgeFeeCollections(db, now); err != nil {
		log.Printf("Fee aging failed: %v", err)
	} else if aged > 0 {
		log.Printf("Fee aging marked %d collections overdue", aged)
	}
}
