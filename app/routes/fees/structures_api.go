package fees

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetFeeStructuresAPI(c *fiber.Ctx) error {
	structures, err := database.GetFeeStructures(config.GetDB(), c.Query("academic_year_id"), c.Query("class_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee structures"})
	}

	return c.JSON(fiber.Map{"fee_structures": structures})
}

type feeStructureRequest struct {
	FeeTypeID      string             `json:"fee_type_id" validate:"required,uuid"`
	ClassID        string             `json:"class_id" validate:"required,uuid"`
	AcademicYearID string             `json:"academic_year_id" validate:"required,uuid"`
	Amount         float64            `json:"amount" validate:"required,gt=0"`
	Frequency      string             `json:"frequency" validate:"required,oneof=monthly quarterly yearly one_time"`
	DueDate        *models.CustomDate `json:"due_date"`
	LateFee        float64            `json:"late_fee" validate:"gte=0"`
	LateFeeDays    int                `json:"late_fee_days" validate:"gte=0"`
}

func CreateFeeStructureAPI(c *fiber.Ctx) error {
	var req feeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	year, err := database.GetAcademicYearByID(config.GetDB(), req.AcademicYearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	// A structure without an explicit due date gets one derived from its
	// billing frequency.
	dueDate := req.DueDate
	if dueDate == nil {
		derived := services.GenerateDueDate(models.FeeFrequency(req.Frequency), year, time.Now())
		dueDate = &models.CustomDate{Time: derived}
	}

	structure := &models.FeeStructure{
		FeeTypeID:      req.FeeTypeID,
		ClassID:        req.ClassID,
		AcademicYearID: req.AcademicYearID,
		Amount:         req.Amount,
		Frequency:      models.FeeFrequency(req.Frequency),
		DueDate:        dueDate,
		LateFee:        req.LateFee,
		LateFeeDays:    req.LateFeeDays,
	}

	if err := database.CreateFeeStructure(config.GetDB(), structure); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create fee structure"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":       "Fee structure created successfully",
		"fee_structure": structure,
	})
}

func UpdateFeeStructureAPI(c *fiber.Ctx) error {
	structure, err := database.GetFeeStructureByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if structure == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee structure not found"})
	}

	var req feeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	// Edits never rewrite collections already generated from this
	// structure; they only shape future generation and aging.
	structure.Amount = req.Amount
	structure.Frequency = models.FeeFrequency(req.Frequency)
	structure.LateFee = req.LateFee
	structure.LateFeeDays = req.LateFeeDays
	if req.DueDate != nil {
		structure.DueDate = req.DueDate
	}

	if err := database.UpdateFeeStructure(config.GetDB(), structure); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update fee structure"})
	}

	return c.JSON(fiber.Map{
		"message":       "Fee structure updated successfully",
		"fee_structure": structure,
	})
}

func DeleteFeeStructureAPI(c *fiber.Ctx) error {
	if err := database.DeleteFeeStructure(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete fee structure"})
	}

	return c.JSON(fiber.Map{"message": "Fee structure deleted successfully"})
}
