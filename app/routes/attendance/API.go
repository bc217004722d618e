package attendance

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func parseDateParam(c *fiber.Ctx, name string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.Params(name), time.Local)
}

func GetTeacherAttendanceByDateAPI(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	records, err := database.GetTeacherAttendanceByDate(config.GetDB(), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":       date.Format("2006-01-02"),
		"attendance": records,
	})
}

func GetTeacherAttendanceAPI(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	rec, err := database.GetTeacherAttendanceByTeacherAndDate(config.GetDB(), c.Params("teacherId"), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if rec == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No attendance record for that date"})
	}

	return c.JSON(fiber.Map{"attendance": rec})
}

type manualTeacherAttendanceRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late half_day early_leave excused leave holiday"`
	Remarks   string `json:"remarks"`
}

// CreateOrUpdateTeacherAttendanceAPI is the staff form path; it lands on the
// same (teacher, date) row the device punches use.
func CreateOrUpdateTeacherAttendanceAPI(c *fiber.Ctx) error {
	var req manualTeacherAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	teacher, err := database.GetTeacherByID(config.GetDB(), req.TeacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	rec := &models.TeacherAttendance{
		TeacherID: teacher.ID,
		Date:      date,
		Status:    models.AttendanceStatus(req.Status),
		Remarks:   req.Remarks,
		MarkedBy:  c.Locals("user_id").(string),
	}

	if err := database.CreateOrUpdateTeacherAttendance(config.GetDB(), rec); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	return c.JSON(fiber.Map{"message": "Attendance saved"})
}

func GetTeacherAttendanceSummaryAPI(c *fiber.Ctx) error {
	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, expected YYYY-MM-DD"})
	}

	summaries, err := database.GetTeacherAttendanceSummary(config.GetDB(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build summary"})
	}

	return c.JSON(fiber.Map{
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"summary": summaries,
	})
}

func GetStudentAttendanceByClassAndDateAPI(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	records, err := database.GetStudentAttendanceByClassAndDate(config.GetDB(), c.Params("classId"), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":       date.Format("2006-01-02"),
		"attendance": records,
	})
}

func GetStudentAttendanceAPI(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	rec, err := database.GetStudentAttendanceByStudentAndDate(config.GetDB(), c.Params("studentId"), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if rec == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No attendance record for that date"})
	}

	return c.JSON(fiber.Map{"attendance": rec})
}

type manualStudentAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late half_day early_leave excused leave holiday"`
	Remarks   string `json:"remarks"`
}

func CreateOrUpdateStudentAttendanceAPI(c *fiber.Ctx) error {
	var req manualStudentAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	student, err := database.GetStudentByID(config.GetDB(), req.StudentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	rec := &models.StudentAttendance{
		StudentID:      student.ID,
		AcademicYearID: student.AcademicYearID,
		Date:           date,
		Status:         models.AttendanceStatus(req.Status),
		Remarks:        req.Remarks,
		MarkedBy:       c.Locals("user_id").(string),
	}

	if err := database.CreateOrUpdateStudentAttendance(config.GetDB(), rec); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	return c.JSON(fiber.Map{"message": "Attendance saved"})
}

func GetStudentAttendanceReportAPI(c *fiber.Ctx) error {
	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, expected YYYY-MM-DD"})
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), time.Local)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, expected YYYY-MM-DD"})
	}

	report, err := database.GetStudentAttendanceReport(config.GetDB(), c.Params("classId"), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}

	return c.JSON(fiber.Map{
		"class_id": c.Params("classId"),
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
		"report":   report,
	})
}
