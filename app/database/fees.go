package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func GetAllFeeTypes(db *sql.DB) ([]*models.FeeType, error) {
	query := `SELECT id, name, code, description, is_active, created_at, updated_at
			  FROM fee_types WHERE deleted_at IS NULL ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*models.FeeType, 0)
	for rows.Next() {
		ft := &models.FeeType{}
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Code, &ft.Description, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, rows.Err()
}

func GetFeeTypeByID(db *sql.DB, id string) (*models.FeeType, error) {
	ft := &models.FeeType{}
	query := `SELECT id, name, code, description, is_active, created_at, updated_at
			  FROM fee_types WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(&ft.ID, &ft.Name, &ft.Code, &ft.Description, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ft, err
}

func CreateFeeType(db *sql.DB, ft *models.FeeType) error {
	query := `INSERT INTO fee_types (name, code, description) VALUES ($1, $2, $3)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, ft.Name, ft.Code, ft.Description).Scan(&ft.ID, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
}

func UpdateFeeType(db *sql.DB, ft *models.FeeType) error {
	query := `UPDATE fee_types SET name = $1, code = $2, description = $3, is_active = $4, updated_at = NOW()
			  WHERE id = $5 AND deleted_at IS NULL`
	_, err := db.Exec(query, ft.Name, ft.Code, ft.Description, ft.IsActive, ft.ID)
	return err
}

func DeleteFeeType(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE fee_types SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}

const feeStructureColumns = `fs.id, fs.fee_type_id, fs.class_id, fs.academic_year_id, fs.amount,
	fs.frequency, fs.due_date, fs.late_fee, fs.late_fee_days, fs.is_active, fs.created_at, fs.updated_at`

func scanFeeStructure(row interface{ Scan(...interface{}) error }) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{}
	var due sql.NullTime
	err := row.Scan(
		&fs.ID, &fs.FeeTypeID, &fs.ClassID, &fs.AcademicYearID, &fs.Amount,
		&fs.Frequency, &due, &fs.LateFee, &fs.LateFeeDays, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		fs.DueDate = &models.CustomDate{Time: due.Time}
	}
	return fs, nil
}

func GetFeeStructures(db *sql.DB, academicYearID, classID string) ([]*models.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + `, ft.name, c.name
			  FROM fee_structures fs
			  JOIN fee_types ft ON fs.fee_type_id = ft.id
			  JOIN classes c ON fs.class_id = c.id
			  WHERE fs.deleted_at IS NULL`
	args := []interface{}{}
	idx := 1
	if academicYearID != "" {
		query += fmt.Sprintf(` AND fs.academic_year_id = $%d`, idx)
		args = append(args, academicYearID)
		idx++
	}
	if classID != "" {
		query += fmt.Sprintf(` AND fs.class_id = $%d`, idx)
		args = append(args, classID)
		idx++
	}
	query += ` ORDER BY c.name, ft.name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	structures := make([]*models.FeeStructure, 0)
	for rows.Next() {
		fs := &models.FeeStructure{}
		var due sql.NullTime
		var feeTypeName, className string
		err := rows.Scan(
			&fs.ID, &fs.FeeTypeID, &fs.ClassID, &fs.AcademicYearID, &fs.Amount,
			&fs.Frequency, &due, &fs.LateFee, &fs.LateFeeDays, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt,
			&feeTypeName, &className,
		)
		if err != nil {
			return nil, err
		}
		if due.Valid {
			fs.DueDate = &models.CustomDate{Time: due.Time}
		}
		fs.FeeType = &models.FeeType{ID: fs.FeeTypeID, Name: feeTypeName}
		fs.Class = &models.Class{ID: fs.ClassID, Name: className}
		structures = append(structures, fs)
	}
	return structures, rows.Err()
}

func GetFeeStructureByID(db *sql.DB, id string) (*models.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + ` FROM fee_structures fs
			  WHERE fs.id = $1 AND fs.deleted_at IS NULL`
	fs, err := scanFeeStructure(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return fs, err
}

func CreateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	query := `INSERT INTO fee_structures (fee_type_id, class_id, academic_year_id, amount, frequency,
			  due_date, late_fee, late_fee_days)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, is_active, created_at, updated_at`
	var due interface{}
	if fs.DueDate != nil {
		due = fs.DueDate.Time
	}
	return db.QueryRow(query, fs.FeeTypeID, fs.ClassID, fs.AcademicYearID, fs.Amount, fs.Frequency,
		due, fs.LateFee, fs.LateFeeDays).
		Scan(&fs.ID, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt)
}

func UpdateFeeStructure(db *sql.DB, fs *models.FeeStructure) error {
	var due interface{}
	if fs.DueDate != nil {
		due = fs.DueDate.Time
	}
	query := `UPDATE fee_structures SET amount = $1, frequency = $2, due_date = $3, late_fee = $4,
			  late_fee_days = $5, is_active = $6, updated_at = NOW()
			  WHERE id = $7 AND deleted_at IS NULL`
	_, err := db.Exec(query, fs.Amount, fs.Frequency, due, fs.LateFee, fs.LateFeeDays, fs.IsActive, fs.ID)
	return err
}

func DeleteFeeStructure(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE fee_structures SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}

// FeeCollectionFilters represents filtering options for collection listings
type FeeCollectionFilters struct {
	StudentID string
	ClassID   string
	Status    string
	Month     int
	Year      int
	Limit     int
	Offset    int
}

func GetFeeCollections(db *sql.DB, filters FeeCollectionFilters) ([]*models.FeeCollection, error) {
	query := `SELECT fc.id, fc.student_id, fc.fee_type_id, fc.academic_year_id, fc.month, fc.year,
			  fc.amount, fc.discount, fc.late_fee, fc.total_amount, fc.paid_amount, fc.status,
			  fc.receipt_no, fc.due_date, fc.payment_date, fc.created_at, fc.updated_at,
			  s.admission_no, s.first_name, s.last_name, ft.name
			  FROM fee_collections fc
			  JOIN students s ON fc.student_id = s.id
			  JOIN fee_types ft ON fc.fee_type_id = ft.id
			  WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filters.StudentID != "" {
		query += fmt.Sprintf(` AND fc.student_id = $%d`, idx)
		args = append(args, filters.StudentID)
		idx++
	}
	if filters.ClassID != "" {
		query += fmt.Sprintf(` AND s.class_id = $%d`, idx)
		args = append(args, filters.ClassID)
		idx++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(` AND fc.status = $%d`, idx)
		args = append(args, filters.Status)
		idx++
	}
	if filters.Month > 0 {
		query += fmt.Sprintf(` AND fc.month = $%d`, idx)
		args = append(args, filters.Month)
		idx++
	}
	if filters.Year > 0 {
		query += fmt.Sprintf(` AND fc.year = $%d`, idx)
		args = append(args, filters.Year)
		idx++
	}

	query += ` ORDER BY fc.year DESC, fc.month DESC, s.first_name`
	if filters.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := make([]*models.FeeCollection, 0)
	for rows.Next() {
		fc := &models.FeeCollection{}
		var dueDate time.Time
		var paymentDate sql.NullTime
		var admissionNo, firstName, lastName, feeTypeName string
		err := rows.Scan(
			&fc.ID, &fc.StudentID, &fc.FeeTypeID, &fc.AcademicYearID, &fc.Month, &fc.Year,
			&fc.Amount, &fc.Discount, &fc.LateFee, &fc.TotalAmount, &fc.PaidAmount, &fc.Status,
			&fc.ReceiptNo, &dueDate, &paymentDate, &fc.CreatedAt, &fc.UpdatedAt,
			&admissionNo, &firstName, &lastName, &feeTypeName,
		)
		if err != nil {
			return nil, err
		}
		fc.DueDate = models.CustomDate{Time: dueDate}
		if paymentDate.Valid {
			fc.PaymentDate = &models.CustomDate{Time: paymentDate.Time}
		}
		fc.Student = &models.Student{AdmissionNo: admissionNo, FirstName: firstName, LastName: lastName}
		fc.FeeType = &models.FeeType{ID: fc.FeeTypeID, Name: feeTypeName}
		collections = append(collections, fc)
	}
	return collections, rows.Err()
}

func GetFeeCollectionByID(db *sql.DB, id string) (*models.FeeCollection, error) {
	fc := &models.FeeCollection{}
	var dueDate time.Time
	var paymentDate sql.NullTime
	query := `SELECT id, student_id, fee_type_id, academic_year_id, month, year, amount, discount,
			  late_fee, total_amount, paid_amount, status, receipt_no, due_date, payment_date,
			  created_at, updated_at
			  FROM fee_collections WHERE id = $1`
	err := db.QueryRow(query, id).Scan(
		&fc.ID, &fc.StudentID, &fc.FeeTypeID, &fc.AcademicYearID, &fc.Month, &fc.Year,
		&fc.Amount, &fc.Discount, &fc.LateFee, &fc.TotalAmount, &fc.PaidAmount, &fc.Status,
		&fc.ReceiptNo, &dueDate, &paymentDate, &fc.CreatedAt, &fc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	fc.DueDate = models.CustomDate{Time: dueDate}
	if paymentDate.Valid {
		fc.PaymentDate = &models.CustomDate{Time: paymentDate.Time}
	}
	return fc, nil
}

// RecordFeePayment applies a payment to a collection and advances its status
// to partial or paid. Payments never touch late_fee or total_amount; the aging
// pass owns those.
func RecordFeePayment(db *sql.DB, id string, amount float64, paymentDate time.Time) (*models.FeeCollection, error) {
	fc, err := GetFeeCollectionByID(db, id)
	if err != nil {
		return nil, err
	}
	if fc == nil {
		return nil, nil
	}

	fc.PaidAmount += amount
	if fc.PaidAmount >= fc.TotalAmount {
		fc.Status = models.FeePaid
	} else {
		fc.Status = models.FeePartial
	}
	fc.PaymentDate = &models.CustomDate{Time: paymentDate}

	_, err = db.Exec(`UPDATE fee_collections
		SET paid_amount = $1, status = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $4`,
		fc.PaidAmount, fc.Status, paymentDate, fc.ID)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// ApplyFeeDiscount sets a waiver/discount and recomputes the total.
func ApplyFeeDiscount(db *sql.DB, id string, discount float64) error {
	_, err := db.Exec(`UPDATE fee_collections
		SET discount = $1, total_amount = amount - $1 + late_fee, updated_at = NOW()
		WHERE id = $2`, discount, id)
	return err
}
