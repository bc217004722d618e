package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func GetAllClasses(db *sql.DB) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.code, c.teacher_id, c.is_active, c.created_at, c.updated_at,
			  (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id AND s.deleted_at IS NULL AND s.is_active = true)
			  FROM classes c
			  WHERE c.deleted_at IS NULL
			  ORDER BY c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]*models.Class, 0)
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func GetClassByID(db *sql.DB, id string) (*models.Class, error) {
	c := &models.Class{}
	query := `SELECT id, name, code, teacher_id, is_active, created_at, updated_at
			  FROM classes WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sections, err := GetSectionsByClass(db, id)
	if err != nil {
		return nil, err
	}
	c.Sections = sections
	return c, nil
}

func CreateClass(db *sql.DB, c *models.Class) error {
	query := `INSERT INTO classes (name, code, teacher_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, c.Name, c.Code, c.TeacherID).
		Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func UpdateClass(db *sql.DB, c *models.Class) error {
	query := `UPDATE classes SET name = $1, code = $2, teacher_id = $3, is_active = $4, updated_at = $5
			  WHERE id = $6 AND deleted_at IS NULL`
	_, err := db.Exec(query, c.Name, c.Code, c.TeacherID, c.IsActive, time.Now(), c.ID)
	return err
}

func DeleteClass(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE classes SET deleted_at = NOW(), is_active = false WHERE id = $1`, id)
	return err
}

func GetSectionsByClass(db *sql.DB, classID string) ([]*models.Section, error) {
	query := `SELECT id, class_id, name, capacity, is_active, created_at, updated_at
			  FROM sections WHERE class_id = $1 ORDER BY name`

	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]*models.Section, 0)
	for rows.Next() {
		s := &models.Section{}
		err := rows.Scan(&s.ID, &s.ClassID, &s.Name, &s.Capacity, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func CreateSection(db *sql.DB, s *models.Section) error {
	query := `INSERT INTO sections (class_id, name, capacity)
			  VALUES ($1, $2, $3)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, s.ClassID, s.Name, s.Capacity).
		Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func DeleteSection(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM sections WHERE id = $1`, id)
	return err
}
