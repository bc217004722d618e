package database

import (
	"database/sql"
	"time"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func GetNotices(db *sql.DB, audience string, activeOnly bool) ([]*models.Notice, error) {
	query := `SELECT id, title, body, audience, published_at, expires_at, COALESCE(created_by::text, ''),
			  is_active, created_at, updated_at
			  FROM notices WHERE 1=1`
	args := []interface{}{}
	if audience != "" && audience != "all" {
		query += ` AND audience IN ('all', $1)`
		args = append(args, audience)
	}
	if activeOnly {
		query += ` AND is_active = true AND (expires_at IS NULL OR expires_at >= CURRENT_DATE)`
	}
	query += ` ORDER BY published_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := make([]*models.Notice, 0)
	for rows.Next() {
		n := &models.Notice{}
		var published time.Time
		var expires sql.NullTime
		err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Audience, &published, &expires, &n.CreatedBy,
			&n.IsActive, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}
		n.PublishedAt = models.CustomDate{Time: published}
		if expires.Valid {
			n.ExpiresAt = &models.CustomDate{Time: expires.Time}
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func CreateNotice(db *sql.DB, n *models.Notice) error {
	var expires interface{}
	if n.ExpiresAt != nil {
		expires = n.ExpiresAt.Time
	}
	query := `INSERT INTO notices (title, body, audience, published_at, expires_at, created_by)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, n.Title, n.Body, n.Audience, n.PublishedAt.Time, expires, n.CreatedBy).
		Scan(&n.ID, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
}

func UpdateNotice(db *sql.DB, n *models.Notice) error {
	var expires interface{}
	if n.ExpiresAt != nil {
		expires = n.ExpiresAt.Time
	}
	query := `UPDATE notices SET title = $1, body = $2, audience = $3, expires_at = $4,
			  is_active = $5, updated_at = NOW() WHERE id = $6`
	_, err := db.Exec(query, n.Title, n.Body, n.Audience, expires, n.IsActive, n.ID)
	return err
}

func DeleteNotice(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM notices WHERE id = $1`, id)
	return err
}
