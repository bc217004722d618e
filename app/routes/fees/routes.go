package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App) {
	fees := app.Group("/fees")
	fees.Use(auth.AuthMiddleware)
	fees.Get("/", FeesPage)

	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	// Fee types
	api.Get("/types", GetFeeTypesAPI)
	api.Post("/types", auth.RoleMiddleware(models.RoleAdmin), CreateFeeTypeAPI)
	api.Put("/types/:id", auth.RoleMiddleware(models.RoleAdmin), UpdateFeeTypeAPI)
	api.Delete("/types/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteFeeTypeAPI)

	// Fee structures
	api.Get("/structures", GetFeeStructuresAPI)
	api.Post("/structures", auth.RoleMiddleware(models.RoleAdmin), CreateFeeStructureAPI)
	api.Put("/structures/:id", auth.RoleMiddleware(models.RoleAdmin), UpdateFeeStructureAPI)
	api.Delete("/structures/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteFeeStructureAPI)

	// Collections
	api.Get("/collections", GetFeeCollectionsAPI)
	api.Post("/collections", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateFeeCollectionAPI)
	api.Get("/collections/:id", GetFeeCollectionAPI)
	api.Post("/collections/:id/pay", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), RecordPaymentAPI)
	api.Post("/collections/:id/discount", auth.RoleMiddleware(models.RoleAdmin), ApplyDiscountAPI)
}

func FeesPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	return c.Render("fees/index", fiber.Map{
		"Title":       "Fees - School Management Pro",
		"CurrentPage": "fees",
		"user":        user,
		"FirstName":   user.FirstName,
		"LastName":    user.LastName,
	})
}
