package fees

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetFeeCollectionsAPI(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month", "0"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filters := database.FeeCollectionFilters{
		StudentID: c.Query("student_id"),
		ClassID:   c.Query("class_id"),
		Status:    c.Query("status"),
		Month:     month,
		Year:      year,
		Limit:     limit,
		Offset:    offset,
	}

	collections, err := database.GetFeeCollections(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch fee collections"})
	}

	return c.JSON(fiber.Map{
		"collections": collections,
		"count":       len(collections),
	})
}

// CreateFeeCollectionAPI records a staff-created collection outside the
// monthly generator, typically a one-time charge. One-time collections carry
// month 0 and never enter the monthly aging pass.
func CreateFeeCollectionAPI(c *fiber.Ctx) error {
	type createCollectionRequest struct {
		StudentID string  `json:"student_id" validate:"required,uuid"`
		FeeTypeID string  `json:"fee_type_id" validate:"required,uuid"`
		Amount    float64 `json:"amount" validate:"required,gt=0"`
		Discount  float64 `json:"discount" validate:"gte=0"`
		Month     int     `json:"month" validate:"gte=0,lte=12"`
		Year      int     `json:"year" validate:"required"`
		DueDate   string  `json:"due_date"`
	}

	var req createCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}
	if req.Discount > req.Amount {
		return c.Status(400).JSON(fiber.Map{"error": "Discount cannot exceed the amount"})
	}

	db := config.GetDB()

	student, err := database.GetStudentByID(db, req.StudentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	feeType, err := database.GetFeeTypeByID(db, req.FeeTypeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if feeType == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee type not found"})
	}

	now := time.Now()
	due := services.GenerateDueDate(models.FrequencyOneTime, nil, now)
	if req.DueDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid due_date, expected YYYY-MM-DD"})
		}
		due = d
	}

	fc := &models.FeeCollection{
		StudentID:      req.StudentID,
		FeeTypeID:      req.FeeTypeID,
		AcademicYearID: student.AcademicYearID,
		Month:          req.Month,
		Year:           req.Year,
		Amount:         req.Amount,
		Discount:       req.Discount,
		DueDate:        models.CustomDate{Time: due},
	}

	if err := services.CreateManualCollection(db, fc, now); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create fee collection"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Fee collection created",
		"collection": fc,
	})
}

func GetFeeCollectionAPI(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid collection id"})
	}

	collection, err := database.GetFeeCollectionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if collection == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee collection not found"})
	}

	return c.JSON(fiber.Map{"collection": collection})
}

func RecordPaymentAPI(c *fiber.Ctx) error {
	type paymentRequest struct {
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		PaymentDate string  `json:"payment_date"`
	}

	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.PaymentDate, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
		}
		paymentDate = d
	}

	existing, err := database.GetFeeCollectionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee collection not found"})
	}
	if req.Amount > existing.Balance() {
		return c.Status(400).JSON(fiber.Map{"error": "Payment exceeds outstanding balance"})
	}

	collection, err := database.RecordFeePayment(config.GetDB(), existing.ID, req.Amount, paymentDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.JSON(fiber.Map{
		"message":    "Payment recorded",
		"collection": collection,
	})
}

func ApplyDiscountAPI(c *fiber.Ctx) error {
	type discountRequest struct {
		Discount float64 `json:"discount" validate:"gte=0"`
	}

	var req discountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	existing, err := database.GetFeeCollectionByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fee collection not found"})
	}
	if req.Discount > existing.Amount {
		return c.Status(400).JSON(fiber.Map{"error": "Discount exceeds the fee amount"})
	}

	if err := database.ApplyFeeDiscount(config.GetDB(), existing.ID, req.Discount); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to apply discount"})
	}

	collection, err := database.GetFeeCollectionByID(config.GetDB(), existing.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"message":    "Discount applied",
		"collection": collection,
	})
}
