package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetFeeTypesAPI(c *fiber.Ctx) error {
	types, err := database.GetAllFeeTypes(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee types"})
	}

	return c.JSON(fiber.Map{"fee_types": types})
}

type feeTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description *string `json:"description"`
}

func CreateFeeTypeAPI(c *fiber.Ctx) error {
	var req feeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	feeType := &models.FeeType{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}

	if err := database.CreateFeeType(config.GetDB(), feeType); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create fee type"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "Fee type created successfully",
		"fee_type": feeType,
	})
}

func UpdateFeeTypeAPI(c *fiber.Ctx) error {
	feeType, err := database.GetFeeTypeByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if feeType == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee type not found"})
	}

	var req feeTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	feeType.Name = req.Name
	feeType.Code = req.Code
	feeType.Description = req.Description

	if err := database.UpdateFeeType(config.GetDB(), feeType); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update fee type"})
	}

	return c.JSON(fiber.Map{
		"message":  "Fee type updated successfully",
		"fee_type": feeType,
	})
}

func DeleteFeeTypeAPI(c *fiber.Ctx) error {
	if err := database.DeleteFeeType(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete fee type"})
	}

	return c.JSON(fiber.Map{"message": "Fee type deleted successfully"})
}
