package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
)

func DashboardPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	notices, err := database.GetNotices(config.GetDB(), "all", true)
	if err != nil {
		notices = nil
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - School Management Pro",
		"CurrentPage": "dashboard",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
		"Email":       user.Email,
		"notices":     notices,
	})
}

// GetDashboardStatsAPI aggregates the headline numbers for the dashboard
// cards: headcounts, today's attendance, and this month's fee position.
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	now := time.Now()
	stats := fiber.Map{}

	var totalStudents, totalTeachers, totalClasses int
	db.QueryRow(`SELECT COUNT(*) FROM students WHERE is_active = true AND deleted_at IS NULL`).Scan(&totalStudents)
	db.QueryRow(`SELECT COUNT(*) FROM teachers WHERE is_active = true AND deleted_at IS NULL`).Scan(&totalTeachers)
	db.QueryRow(`SELECT COUNT(*) FROM classes WHERE is_active = true AND deleted_at IS NULL`).Scan(&totalClasses)
	stats["total_students"] = totalStudents
	stats["total_teachers"] = totalTeachers
	stats["total_classes"] = totalClasses

	var presentToday, absentToday, lateToday int
	db.QueryRow(`SELECT
		COUNT(*) FILTER (WHERE status IN ('present', 'late', 'early_leave')),
		COUNT(*) FILTER (WHERE status = 'absent'),
		COUNT(*) FILTER (WHERE status = 'late')
		FROM student_attendances WHERE date = $1`, now.Format("2006-01-02"),
	).Scan(&presentToday, &absentToday, &lateToday)
	stats["students_present_today"] = presentToday
	stats["students_absent_today"] = absentToday
	stats["students_late_today"] = lateToday

	var teachersPresentToday int
	db.QueryRow(`SELECT COUNT(*) FROM teacher_attendances
		WHERE date = $1 AND status IN ('present', 'late', 'early_leave')`,
		now.Format("2006-01-02")).Scan(&teachersPresentToday)
	stats["teachers_present_today"] = teachersPresentToday

	var feesCollected, feesPending float64
	var overdueCount int
	db.QueryRow(`SELECT
		COALESCE(SUM(paid_amount), 0),
		COALESCE(SUM(total_amount - paid_amount) FILTER (WHERE status IN ('pending', 'partial', 'overdue')), 0),
		COUNT(*) FILTER (WHERE status = 'overdue')
		FROM fee_collections WHERE month = $1 AND year = $2`,
		int(now.Month()), now.Year(),
	).Scan(&feesCollected, &feesPending, &overdueCount)
	stats["fees_collected_this_month"] = feesCollected
	stats["fees_pending_this_month"] = feesPending
	stats["fees_overdue_count"] = overdueCount

	deviceStatus, err := database.GetDeviceStatus(db)
	if err == nil && deviceStatus != nil {
		stats["device_status"] = deviceStatus
	}

	return c.JSON(fiber.Map{"stats": stats})
}
