package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func scanAcademicYear(row interface{ Scan(...interface{}) error }) (*models.AcademicYear, error) {
	ay := &models.AcademicYear{}
	var start, end time.Time
	err := row.Scan(&ay.ID, &ay.Name, &start, &end, &ay.IsCurrent, &ay.IsActive, &ay.CreatedAt, &ay.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ay.StartDate = models.CustomDate{Time: start}
	ay.EndDate = models.CustomDate{Time: end}
	return ay, nil
}

func GetAllAcademicYears(db *sql.DB) ([]*models.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
			  FROM academic_years ORDER BY start_date DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make([]*models.AcademicYear, 0)
	for rows.Next() {
		ay, err := scanAcademicYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, ay)
	}
	return years, rows.Err()
}

// GetCurrentAcademicYear returns the year flagged is_current, or nil when none
// is configured. Student attendance records require one.
func GetCurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
			  FROM academic_years WHERE is_current = true LIMIT 1`
	ay, err := scanAcademicYear(db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ay, err
}

func GetAcademicYearByID(db *sql.DB, id string) (*models.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
			  FROM academic_years WHERE id = $1`
	ay, err := scanAcademicYear(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ay, err
}

func CreateAcademicYear(db *sql.DB, ay *models.AcademicYear) error {
	query := `INSERT INTO academic_years (name, start_date, end_date, is_current)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, ay.Name, ay.StartDate.Time, ay.EndDate.Time, ay.IsCurrent).
		Scan(&ay.ID, &ay.IsActive, &ay.CreatedAt, &ay.UpdatedAt)
}

// SetCurrentAcademicYear flags one year current and clears the flag elsewhere.
func SetCurrentAcademicYear(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE academic_years SET is_current = false WHERE is_current = true`); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE academic_years SET is_current = true, updated_at = NOW() WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func UpdateAcademicYear(db *sql.DB, ay *models.AcademicYear) error {
	query := `UPDATE academic_years SET name = $1, start_date = $2, end_date = $3, is_active = $4, updated_at = NOW()
			  WHERE id = $5`
	_, err := db.Exec(query, ay.Name, ay.StartDate.Time, ay.EndDate.Time, ay.IsActive, ay.ID)
	return err
}
