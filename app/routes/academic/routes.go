package academic

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/routes/auth"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func SetupAcademicRoutes(app *fiber.App) {
	api := app.Group("/api/academic-years")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetAcademicYearsAPI)
	api.Get("/current", GetCurrentAcademicYearAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin), CreateAcademicYearAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin), UpdateAcademicYearAPI)
	api.Post("/:id/set-current", auth.RoleMiddleware(models.RoleAdmin), SetCurrentAcademicYearAPI)
}

func GetAcademicYearsAPI(c *fiber.Ctx) error {
	years, err := database.GetAllAcademicYears(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic years"})
	}

	return c.JSON(fiber.Map{"academic_years": years})
}

func GetCurrentAcademicYearAPI(c *fiber.Ctx) error {
	year, err := database.GetCurrentAcademicYear(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No current academic year configured"})
	}

	return c.JSON(fiber.Map{"academic_year": year})
}

type academicYearRequest struct {
	Name      string            `json:"name" validate:"required"`
	StartDate models.CustomDate `json:"start_date" validate:"required"`
	EndDate   models.CustomDate `json:"end_date" validate:"required"`
	IsCurrent bool              `json:"is_current"`
}

func CreateAcademicYearAPI(c *fiber.Ctx) error {
	var req academicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}
	if !req.EndDate.After(req.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	year := &models.AcademicYear{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
	}

	if err := database.CreateAcademicYear(config.GetDB(), year); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create academic year"})
	}

	// Creating a year as current clears the flag on every other year.
	if req.IsCurrent {
		if err := database.SetCurrentAcademicYear(config.GetDB(), year.ID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to set current academic year"})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message":       "Academic year created successfully",
		"academic_year": year,
	})
}

func UpdateAcademicYearAPI(c *fiber.Ctx) error {
	year, err := database.GetAcademicYearByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	var req academicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}
	if !req.EndDate.After(req.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	year.Name = req.Name
	year.StartDate = req.StartDate
	year.EndDate = req.EndDate

	if err := database.UpdateAcademicYear(config.GetDB(), year); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update academic year"})
	}

	return c.JSON(fiber.Map{
		"message":       "Academic year updated successfully",
		"academic_year": year,
	})
}

func SetCurrentAcademicYearAPI(c *fiber.Ctx) error {
	year, err := database.GetAcademicYearByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	if err := database.SetCurrentAcademicYear(config.GetDB(), year.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to set current academic year"})
	}

	return c.JSON(fiber.Map{"message": "Current academic year updated"})
}
