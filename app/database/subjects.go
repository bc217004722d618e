package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func GetAllSubjects(db *sql.DB) ([]*models.Subject, error) {
	query := `SELECT id, name, code, is_active, created_at, updated_at
			  FROM subjects WHERE deleted_at IS NULL ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func GetSubjectByID(db *sql.DB, id string) (*models.Subject, error) {
	s := &models.Subject{}
	query := `SELECT id, name, code, is_active, created_at, updated_at
			  FROM subjects WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.Code, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func CreateSubject(db *sql.DB, s *models.Subject) error {
	query := `INSERT INTO subjects (name, code) VALUES ($1, $2)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, s.Name, s.Code).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateSubject(db *sql.DB, s *models.Subject) error {
	query := `UPDATE subjects SET name = $1, code = $2, is_active = $3, updated_at = $4
			  WHERE id = $5 AND deleted_at IS NULL`
	_, err := db.Exec(query, s.Name, s.Code, s.IsActive, time.Now(), s.ID)
	return err
}

func DeleteSubject(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE subjects SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}
