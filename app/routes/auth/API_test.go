package auth

import (
	"bytes"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
)

// An email with no matching user must come back as 401, not reach the
// active-account check on a nil user.
func TestLoginAPIUnknownEmailIsUnauthorized(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	mock.ExpectQuery(`SELECT id, email, password, first_name`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	app := fiber.New()
	app.Post("/auth/login", LoginAPI)

	payload := []byte(`{"email":"nobody@example.com","password":"whatever"}`)
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentUserAPIMissingUserIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	mock.ExpectQuery(`SELECT id, email, password, first_name`).
		WithArgs("u-gone").
		WillReturnError(sql.ErrNoRows)

	app := fiber.New()
	app.Get("/api/users/me", func(c *fiber.Ctx) error {
		c.Locals("user_id", "u-gone")
		return c.Next()
	}, CurrentUserAPI)

	req := httptest.NewRequest("GET", "/api/users/me", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	assert.NoError(t, mock.ExpectationsWereMet())
}
