package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupTeachersRoutes(app *fiber.App) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetTeachersAPI)
	api.Get("/:id", GetTeacherAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateTeacherAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), UpdateTeacherAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteTeacherAPI)
}
