package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetClassesAPI)
	api.Get("/:id", GetClassAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateClassAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), UpdateClassAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteClassAPI)

	api.Get("/:id/sections", GetSectionsAPI)
	api.Post("/:id/sections", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateSectionAPI)
	api.Delete("/:id/sections/:sectionId", auth.RoleMiddleware(models.RoleAdmin), DeleteSectionAPI)
}
