package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func scanTeacher(row interface{ Scan(...interface{}) error }) (*models.Teacher, error) {
	t := &models.Teacher{}
	var joinDate sql.NullTime
	err := row.Scan(
		&t.ID, &t.UserID, &t.EmployeeID, &t.FirstName, &t.LastName,
		&t.Phone, &t.SubjectID, &joinDate, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if joinDate.Valid {
		t.JoinDate = models.CustomDate{Time: joinDate.Time}
	}
	return t, nil
}

const teacherColumns = `id, user_id, employee_id, first_name, last_name, COALESCE(phone, ''),
	subject_id, join_date, is_active, created_at, updated_at`

func GetAllTeachers(db *sql.DB, activeOnly bool) ([]*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]*models.Teacher, 0)
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func GetTeacherByID(db *sql.DB, id string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1 AND deleted_at IS NULL`
	t, err := scanTeacher(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// GetTeacherByEmployeeID looks a teacher up by the identifier enrolled on
// biometric devices. Returns nil without error when no teacher matches.
func GetTeacherByEmployeeID(db *sql.DB, employeeID string) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE employee_id = $1 AND deleted_at IS NULL`
	t, err := scanTeacher(db.QueryRow(query, employeeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func CreateTeacher(db *sql.DB, t *models.Teacher) error {
	query := `INSERT INTO teachers (user_id, employee_id, first_name, last_name, phone, subject_id, join_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, is_active, created_at, updated_at`
	var joinDate interface{}
	if !t.JoinDate.IsZero() {
		joinDate = t.JoinDate.Time
	}
	return db.QueryRow(query, t.UserID, t.EmployeeID, t.FirstName, t.LastName, t.Phone, t.SubjectID, joinDate).
		Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

func UpdateTeacher(db *sql.DB, t *models.Teacher) error {
	query := `UPDATE teachers SET employee_id = $1, first_name = $2, last_name = $3, phone = $4,
			  subject_id = $5, is_active = $6, updated_at = $7
			  WHERE id = $8 AND deleted_at IS NULL`
	_, err := db.Exec(query, t.EmployeeID, t.FirstName, t.LastName, t.Phone, t.SubjectID, t.IsActive, time.Now(), t.ID)
	return err
}

func DeleteTeacher(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE teachers SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}
