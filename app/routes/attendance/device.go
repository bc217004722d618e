package attendance

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/services"
)

// punchTimeFormats covers the timestamp shapes the sync agent is known to
// send. Timestamps carry no zone; they are read in the server's local zone,
// which is configured to the school's timezone at startup.
var punchTimeFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parsePunchTime(s string) (time.Time, error) {
	for _, layout := range punchTimeFormats {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t.In(time.Local), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

type deviceSyncRequest struct {
	DeviceID     string `json:"device_id"`
	DeviceName   string `json:"device_name"`
	DeviceIP     string `json:"device_ip"`
	SerialNumber string `json:"serial_number"`
	SyncDate     string `json:"sync_date"`

	AttendanceData []struct {
		ID        string `json:"id"`
		UID       string `json:"uid"`
		Timestamp string `json:"timestamp"`
		State     int    `json:"state"`
		Type      string `json:"type"`
	} `json:"attendance_data"`

	AbsentTeachers []string `json:"absent_teachers"`
	AbsentStudents []string `json:"absent_students"`
}

// DeviceSyncAPI ingests a full sync batch from the device agent: punches,
// absent lists, and device identity. Per-record failures come back inside
// the summary; the endpoint itself only fails on a malformed request or an
// infrastructure error.
func DeviceSyncAPI(c *fiber.Ctx) error {
	var req deviceSyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	settings, err := database.GetDeviceSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load device settings"})
	}

	syncDate := time.Now()
	if req.SyncDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.SyncDate, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid sync_date, expected YYYY-MM-DD"})
		}
		syncDate = d
	}

	in := services.SyncInput{
		DeviceID:       req.DeviceID,
		DeviceName:     req.DeviceName,
		DeviceIP:       req.DeviceIP,
		SerialNumber:   req.SerialNumber,
		AbsentTeachers: req.AbsentTeachers,
		AbsentStudents: req.AbsentStudents,
		Date:           syncDate,
	}

	// Records with unusable timestamps are reported alongside lookup
	// misses; they never reach reconciliation.
	var parseErrors []services.SyncError
	for _, rec := range req.AttendanceData {
		subjectID := rec.ID
		if subjectID == "" {
			subjectID = rec.UID
		}

		ts, err := parsePunchTime(rec.Timestamp)
		if err != nil {
			parseErrors = append(parseErrors, services.SyncError{EmployeeID: subjectID, Error: err.Error()})
			continue
		}

		in.Punches = append(in.Punches, services.PunchEvent{
			SubjectID:    subjectID,
			Timestamp:    ts,
			State:        models.PunchState(rec.State),
			Type:         rec.Type,
			DeviceSerial: req.SerialNumber,
		})
	}

	summary := services.ProcessDeviceSync(config.GetDB(), *settings, in)
	summary.Total += len(parseErrors)
	summary.Errors = append(summary.Errors, parseErrors...)

	message := fmt.Sprintf("Sync complete: %d/%d punches processed, %d marked absent",
		summary.Processed, summary.Total, summary.AbsentMarked)

	return c.JSON(fiber.Map{
		"status":  "ok",
		"success": len(summary.Errors) == 0,
		"message": message,
		"summary": summary,
		"errors":  summary.Errors,
	})
}

type legacyBatchRequest struct {
	Attendance []struct {
		EmployeeID string `json:"employee_id"`
		PunchTime  string `json:"punch_time"`
		PunchState int    `json:"punch_state"`
		PunchType  string `json:"punch_type"`
		DeviceSN   string `json:"device_sn"`
		Type       string `json:"type"`
	} `json:"attendance"`
}

// LegacyBatchAPI accepts the older agent payload and runs the same
// reconciliation per record.
func LegacyBatchAPI(c *fiber.Ctx) error {
	var req legacyBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	settings, err := database.GetDeviceSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load device settings"})
	}

	in := services.SyncInput{Date: time.Now()}
	var parseErrors []services.SyncError
	for _, rec := range req.Attendance {
		ts, err := parsePunchTime(rec.PunchTime)
		if err != nil {
			parseErrors = append(parseErrors, services.SyncError{EmployeeID: rec.EmployeeID, Error: err.Error()})
			continue
		}

		punchType := rec.PunchType
		if punchType == "" {
			punchType = rec.Type
		}

		in.Punches = append(in.Punches, services.PunchEvent{
			SubjectID:    rec.EmployeeID,
			Timestamp:    ts,
			State:        models.PunchState(rec.PunchState),
			Type:         punchType,
			DeviceSerial: rec.DeviceSN,
		})
	}

	summary := services.ProcessDeviceSync(config.GetDB(), *settings, in)
	summary.Total += len(parseErrors)
	summary.Errors = append(summary.Errors, parseErrors...)

	return c.JSON(fiber.Map{
		"status":  "ok",
		"success": len(summary.Errors) == 0,
		"message": fmt.Sprintf("Processed %d of %d records", summary.Processed, summary.Total),
		"summary": summary,
		"errors":  summary.Errors,
	})
}

func GetDeviceStatusAPI(c *fiber.Ctx) error {
	status, err := database.GetDeviceStatus(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if status == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No device has synced yet"})
	}

	return c.JSON(fiber.Map{"device_status": status})
}
