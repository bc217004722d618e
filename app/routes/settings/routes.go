package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupSettingsRoutes(app *fiber.App) {
	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)

	api.Get("/device", GetDeviceSettingsAPI)
	api.Put("/device", auth.RoleMiddleware(models.RoleAdmin), UpdateDeviceSettingsAPI)

	api.Get("/holidays", GetHolidaysAPI)
	api.Post("/holidays", auth.RoleMiddleware(models.RoleAdmin), CreateHolidayAPI)
	api.Delete("/holidays/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteHolidayAPI)
}
