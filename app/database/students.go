package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// StudentFilters represents filtering options for student listings
type StudentFilters struct {
	Search    string
	ClassID   string
	SectionID string
	Gender    string
	Status    string
	Limit     int
	Offset    int
}

const studentColumns = `s.id, s.admission_no, s.roll_no, s.first_name, s.last_name, COALESCE(s.gender, ''),
	s.date_of_birth, s.class_id, s.section_id, s.academic_year_id,
	COALESCE(s.guardian_name, ''), COALESCE(s.guardian_phone, ''), s.admission_date,
	s.is_active, s.created_at, s.updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	var dob, admission sql.NullTime
	err := row.Scan(
		&s.ID, &s.AdmissionNo, &s.RollNo, &s.FirstName, &s.LastName, &s.Gender,
		&dob, &s.ClassID, &s.SectionID, &s.AcademicYearID,
		&s.GuardianName, &s.GuardianPhone, &admission,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		s.DateOfBirth = models.CustomDate{Time: dob.Time}
	}
	if admission.Valid {
		s.AdmissionDate = models.CustomDate{Time: admission.Time}
	}
	return s, nil
}

func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.deleted_at IS NULL`
	args := []interface{}{}
	idx := 1

	if filters.Search != "" {
		query += fmt.Sprintf(` AND (s.first_name ILIKE $%d OR s.last_name ILIKE $%d OR s.admission_no ILIKE $%d)`, idx, idx, idx)
		args = append(args, "%"+strings.TrimSpace(filters.Search)+"%")
		idx++
	}
	if filters.ClassID != "" {
		query += fmt.Sprintf(` AND s.class_id = $%d`, idx)
		args = append(args, filters.ClassID)
		idx++
	}
	if filters.SectionID != "" {
		query += fmt.Sprintf(` AND s.section_id = $%d`, idx)
		args = append(args, filters.SectionID)
		idx++
	}
	if filters.Gender != "" {
		query += fmt.Sprintf(` AND s.gender = $%d`, idx)
		args = append(args, filters.Gender)
		idx++
	}
	if filters.Status == "active" {
		query += ` AND s.is_active = true`
	} else if filters.Status == "inactive" {
		query += ` AND s.is_active = false`
	}

	query += ` ORDER BY s.first_name, s.last_name`
	if filters.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.id = $1 AND s.deleted_at IS NULL`
	s, err := scanStudent(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// GetStudentByAdmissionNo looks a student up by the identifier enrolled on
// biometric devices. Returns nil without error when no student matches.
func GetStudentByAdmissionNo(db *sql.DB, admissionNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.admission_no = $1 AND s.deleted_at IS NULL`
	s, err := scanStudent(db.QueryRow(query, admissionNo))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func GetStudentsByClass(db *sql.DB, classID string) ([]*models.Student, error) {
	return GetStudents(db, StudentFilters{ClassID: classID, Status: "active"})
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (admission_no, roll_no, first_name, last_name, gender, date_of_birth,
			  class_id, section_id, academic_year_id, guardian_name, guardian_phone, admission_date)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id, is_active, created_at, updated_at`
	var dob, admission interface{}
	if !s.DateOfBirth.IsZero() {
		dob = s.DateOfBirth.Time
	}
	if !s.AdmissionDate.IsZero() {
		admission = s.AdmissionDate.Time
	}
	return db.QueryRow(query, s.AdmissionNo, s.RollNo, s.FirstName, s.LastName, string(s.Gender), dob,
		s.ClassID, s.SectionID, s.AcademicYearID, s.GuardianName, s.GuardianPhone, admission).
		Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET admission_no = $1, roll_no = $2, first_name = $3, last_name = $4,
			  gender = NULLIF($5, ''), class_id = $6, section_id = $7, guardian_name = $8,
			  guardian_phone = $9, is_active = $10, updated_at = $11
			  WHERE id = $12 AND deleted_at IS NULL`
	_, err := db.Exec(query, s.AdmissionNo, s.RollNo, s.FirstName, s.LastName, string(s.Gender),
		s.ClassID, s.SectionID, s.GuardianName, s.GuardianPhone, s.IsActive, time.Now(), s.ID)
	return err
}

func DeleteStudent(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE students SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}
