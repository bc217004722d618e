package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateStudentAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), UpdateStudentAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteStudentAPI)
}
