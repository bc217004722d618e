package notices

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func SetupNoticesRoutes(app *fiber.App) {
	api := app.Group("/api/notices")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetNoticesAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleHeadTeacher), CreateNoticeAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteNoticeAPI)
}

func GetNoticesAPI(c *fiber.Ctx) error {
	audience := c.Query("audience", "all")
	activeOnly := c.Query("include_expired") != "true"

	notices, err := database.GetNotices(config.GetDB(), audience, activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notices"})
	}

	return c.JSON(fiber.Map{"notices": notices})
}

func CreateNoticeAPI(c *fiber.Ctx) error {
	type noticeRequest struct {
		Title     string             `json:"title" validate:"required"`
		Body      string             `json:"body" validate:"required"`
		Audience  string             `json:"audience" validate:"omitempty,oneof=all teachers students parents"`
		ExpiresAt *models.CustomDate `json:"expires_at"`
	}

	var req noticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	if req.Audience == "" {
		req.Audience = "all"
	}

	notice := &models.Notice{
		Title:       req.Title,
		Body:        req.Body,
		Audience:    req.Audience,
		PublishedAt: models.CustomDate{Time: time.Now()},
		ExpiresAt:   req.ExpiresAt,
		CreatedBy:   c.Locals("user_id").(string),
	}

	if err := database.CreateNotice(config.GetDB(), notice); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create notice"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Notice created",
		"notice":  notice,
	})
}

func DeleteNoticeAPI(c *fiber.Ctx) error {
	if err := database.DeleteNotice(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete notice"})
	}

	return c.JSON(fiber.Map{"message": "Notice deleted"})
}
