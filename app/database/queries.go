package database

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roles, err := GetUserRoles(db, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, COALESCE(phone, ''), is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roles, err := GetUserRoles(db, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name FROM roles r
			  JOIN user_roles ur ON r.id = ur.role_id
			  WHERE ur.user_id = $1`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateUser inserts a user with a hashed password and assigns the given roles.
func CreateUser(db *sql.DB, user *models.User, roleNames []string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		user.Email, hashed, user.FirstName, user.LastName, user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	for _, name := range roleNames {
		_, err = tx.Exec(`INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2
			ON CONFLICT DO NOTHING`, user.ID, name)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func UpdateUserPassword(db *sql.DB, userID, newPassword string) error {
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = db.Exec(`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`,
		hashed, time.Now(), userID)
	return err
}
