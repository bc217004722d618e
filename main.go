package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/academic"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/attendance"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/classes"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/dashboard"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/fees"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/notices"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/settings"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/students"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/subjects"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/teachers"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/services"
)

// customErrorHandler renders API errors as JSON and web errors as templates.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - School Management Pro",
			"CurrentPage": "",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - School Management Pro",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - School Management Pro",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	config.LoadEnv()

	// All attendance and fee date math runs in the school's timezone.
	tz := os.Getenv("APP_TIMEZONE")
	if tz == "" {
		tz = "Asia/Dhaka"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: failed to load timezone %s, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}
	time.Local = loc
	log.Printf("Application time zone set to: %s", time.Local.String())

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	services.StartScheduler(config.GetDB())

	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Request traffic triggers the fee sweep; the hourly guard keeps it to
	// one run per hour and the goroutine keeps it off the request path.
	app.Use(func(c *fiber.Ctx) error {
		go services.RunFeeSweep(config.GetDB(), services.SweepGuard)
		return c.Next()
	})

	app.Static("/static", "./static")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	teachers.SetupTeachersRoutes(app)
	classes.SetupClassesRoutes(app)
	subjects.SetupSubjectsRoutes(app)
	academic.SetupAcademicRoutes(app)
	attendance.SetupAttendanceRoutes(app)
	fees.SetupFeesRoutes(app)
	settings.SetupSettingsRoutes(app)
	notices.SetupNoticesRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
