package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard")
	dashboard.Use(auth.AuthMiddleware)
	dashboard.Get("/", DashboardPage)

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetDashboardStatsAPI)
}
