package attendance

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
)

// TestDeviceSyncAPIHappyPath walks one teacher check-in through the full
// endpoint: settings load, subject resolution, row upsert, punch save, and
// the device-status update.
func TestDeviceSyncAPIHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	now := time.Now()

	mock.ExpectQuery(`SELECT id, teacher_in_time, teacher_out_time`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "teacher_in_time", "teacher_out_time", "teacher_late_time", "student_in_time",
			"student_late_minutes", "auto_mark_late", "auto_mark_early_leave", "weekend_days",
			"created_at", "updated_at",
		}).AddRow("ds-1", "08:00", "16:00", "08:15", "08:00", 15, true, true, []byte("{0,6}"), now, now))

	mock.ExpectQuery(`SELECT id, user_id, employee_id`).
		WithArgs("T100").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "employee_id", "first_name", "last_name", "phone",
			"subject_id", "join_date", "is_active", "created_at", "updated_at",
		}).AddRow("t-1", nil, "T100", "Asha", "Rahman", "", nil, nil, true, now, now))

	mock.ExpectExec(`INSERT INTO teacher_attendances`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, teacher_id, date, status`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "teacher_id", "date", "status", "in_time", "out_time", "last_punch_time",
			"punch_state", "punch_type", "device_serial", "marked_by", "remarks",
			"created_at", "updated_at",
		}).AddRow("ta-1", "t-1", now, "present", nil, nil, nil, nil, "", "", "system", "", now, now))
	mock.ExpectExec(`UPDATE teacher_attendances`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT id FROM device_statuses`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO device_statuses`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := fiber.New()
	app.Post("/api/device/sync", DeviceSyncAPI)

	payload, _ := json.Marshal(fiber.Map{
		"device_id":     "DEV-1",
		"device_name":   "Main Gate",
		"device_ip":     "10.0.0.20",
		"serial_number": "ZK123",
		"sync_date":     "2024-03-04",
		"attendance_data": []fiber.Map{
			{"id": "T100", "timestamp": "2024-03-04 08:10:00", "state": 0, "type": "check-in"},
		},
	})

	req := httptest.NewRequest("POST", "/api/device/sync", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Status  string `json:"status"`
		Success bool   `json:"success"`
		Summary struct {
			Processed    int `json:"processed"`
			Total        int `json:"total"`
			AbsentMarked int `json:"absent_marked"`
		} `json:"summary"`
		Errors []struct {
			EmployeeID string `json:"employee_id"`
		} `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Summary.Processed)
	assert.Equal(t, 1, out.Summary.Total)
	assert.Zero(t, out.Summary.AbsentMarked)
	assert.Empty(t, out.Errors)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceSyncAPIReportsUnparsableTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()
	config.AppConfig = &config.Config{DB: db}

	now := time.Now()

	mock.ExpectQuery(`SELECT id, teacher_in_time, teacher_out_time`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "teacher_in_time", "teacher_out_time", "teacher_late_time", "student_in_time",
			"student_late_minutes", "auto_mark_late", "auto_mark_early_leave", "weekend_days",
			"created_at", "updated_at",
		}).AddRow("ds-1", "08:00", "16:00", "08:15", "08:00", 15, true, true, []byte("{0,6}"), now, now))

	// The bad record never reaches reconciliation, so the only further
	// calls are the device-status update.
	mock.ExpectQuery(`SELECT id FROM device_statuses`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO device_statuses`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := fiber.New()
	app.Post("/api/device/sync", DeviceSyncAPI)

	payload, _ := json.Marshal(fiber.Map{
		"device_id": "DEV-1",
		"sync_date": "2024-03-04",
		"attendance_data": []fiber.Map{
			{"id": "T100", "timestamp": "yesterday-ish", "state": 0},
		},
	})

	req := httptest.NewRequest("POST", "/api/device/sync", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Success bool `json:"success"`
		Summary struct {
			Processed int `json:"processed"`
			Total     int `json:"total"`
		} `json:"summary"`
		Errors []struct {
			EmployeeID string `json:"employee_id"`
			Error      string `json:"error"`
		} `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Zero(t, out.Summary.Processed)
	assert.Equal(t, 1, out.Summary.Total)
	if assert.Len(t, out.Errors, 1) {
		assert.Equal(t, "T100", out.Errors[0].EmployeeID)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
