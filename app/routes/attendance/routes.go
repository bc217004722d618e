package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App) {
	attendance := app.Group("/attendance")
	attendance.Use(auth.AuthMiddleware)
	attendance.Get("/", AttendancePage)

	// Device sync endpoints. The sync agent is a best-effort client on the
	// school LAN; it authenticates with a bearer token like any API client.
	device := app.Group("/api/device")
	device.Use(auth.AuthMiddleware)
	device.Post("/sync", DeviceSyncAPI)
	device.Post("/attendance", LegacyBatchAPI)
	device.Get("/status", GetDeviceStatusAPI)

	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/teachers/date/:date", GetTeacherAttendanceByDateAPI)
	api.Get("/teachers/:teacherId/date/:date", GetTeacherAttendanceAPI)
	api.Post("/teachers", CreateOrUpdateTeacherAttendanceAPI)
	api.Get("/teachers/summary", GetTeacherAttendanceSummaryAPI)

	api.Get("/students/class/:classId/date/:date", GetStudentAttendanceByClassAndDateAPI)
	api.Get("/students/:studentId/date/:date", GetStudentAttendanceAPI)
	api.Post("/students", CreateOrUpdateStudentAttendanceAPI)
	api.Get("/students/report/:classId", GetStudentAttendanceReportAPI)
}

func AttendancePage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		return c.Status(500).Render("error", fiber.Map{
			"Title": "Error",
			"Error": "Failed to fetch classes",
		})
	}

	return c.Render("attendance/index", fiber.Map{
		"Title":       "Attendance - School Management Pro",
		"CurrentPage": "attendance",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"classes":     classes,
	})
}
