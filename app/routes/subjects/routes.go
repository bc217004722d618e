package subjects

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func SetupSubjectsRoutes(app *fiber.App) {
	api := app.Group("/api/subjects")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetSubjectsAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateSubjectAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), UpdateSubjectAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteSubjectAPI)
}

func GetSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.GetAllSubjects(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}

type subjectRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

func CreateSubjectAPI(c *fiber.Ctx) error {
	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	subject := &models.Subject{Name: req.Name, Code: req.Code}
	if err := database.CreateSubject(config.GetDB(), subject); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Subject created successfully",
		"subject": subject,
	})
}

func UpdateSubjectAPI(c *fiber.Ctx) error {
	subject, err := database.GetSubjectByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if subject == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	subject.Name = req.Name
	subject.Code = req.Code

	if err := database.UpdateSubject(config.GetDB(), subject); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(fiber.Map{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

func DeleteSubjectAPI(c *fiber.Ctx) error {
	if err := database.DeleteSubject(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete subject"})
	}

	return c.JSON(fiber.Map{"message": "Subject deleted successfully"})
}
