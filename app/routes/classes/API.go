package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetClassesAPI(c *fiber.Ctx) error {
	classes, err := database.GetAllClasses(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}

	return c.JSON(fiber.Map{"classes": classes})
}

func GetClassAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	}

	return c.JSON(fiber.Map{"class": class})
}

type classRequest struct {
	Name      string  `json:"name" validate:"required"`
	Code      string  `json:"code" validate:"required"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
}

func CreateClassAPI(c *fiber.Ctx) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	class := &models.Class{
		Name:      req.Name,
		Code:      req.Code,
		TeacherID: req.TeacherID,
	}

	if err := database.CreateClass(config.GetDB(), class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

func UpdateClassAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	}

	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	class.Name = req.Name
	class.Code = req.Code
	class.TeacherID = req.TeacherID

	if err := database.UpdateClass(config.GetDB(), class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update class"})
	}

	return c.JSON(fiber.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

func DeleteClassAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	}

	if err := database.DeleteClass(config.GetDB(), class.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete class"})
	}

	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}

func GetSectionsAPI(c *fiber.Ctx) error {
	sections, err := database.GetSectionsByClass(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sections"})
	}

	return c.JSON(fiber.Map{"sections": sections})
}

func CreateSectionAPI(c *fiber.Ctx) error {
	class, err := database.GetClassByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if class == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	}

	type sectionRequest struct {
		Name     string `json:"name" validate:"required"`
		Capacity int    `json:"capacity" validate:"gte=0"`
	}

	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	if req.Capacity == 0 {
		req.Capacity = 40
	}

	section := &models.Section{
		ClassID:  class.ID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := database.CreateSection(config.GetDB(), section); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create section"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Section created successfully",
		"section": section,
	})
}

func DeleteSectionAPI(c *fiber.Ctx) error {
	if err := database.DeleteSection(config.GetDB(), c.Params("sectionId")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete section"})
	}

	return c.JSON(fiber.Map{"message": "Section deleted successfully"})
}
