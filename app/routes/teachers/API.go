package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetTeachersAPI(c *fiber.Ctx) error {
	activeOnly := c.Query("status", "active") == "active"

	teachers, err := database.GetAllTeachers(config.GetDB(), activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	return c.JSON(fiber.Map{
		"teachers": teachers,
		"count":    len(teachers),
	})
}

func GetTeacherAPI(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	teacher, err := database.GetTeacherByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	return c.JSON(fiber.Map{"teacher": teacher})
}

type teacherRequest struct {
	EmployeeID string            `json:"employee_id" validate:"required"`
	FirstName  string            `json:"first_name" validate:"required"`
	LastName   string            `json:"last_name" validate:"required"`
	Phone      string            `json:"phone"`
	SubjectID  *string           `json:"subject_id" validate:"omitempty,uuid"`
	UserID     *string           `json:"user_id" validate:"omitempty,uuid"`
	JoinDate   models.CustomDate `json:"join_date"`
}

func CreateTeacherAPI(c *fiber.Ctx) error {
	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	// Employee ids key device punches; reject duplicates up front.
	existing, err := database.GetTeacherByEmployeeID(config.GetDB(), req.EmployeeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Employee ID already in use"})
	}

	teacher := &models.Teacher{
		UserID:     req.UserID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		SubjectID:  req.SubjectID,
		JoinDate:   req.JoinDate,
	}

	if err := database.CreateTeacher(config.GetDB(), teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

func UpdateTeacherAPI(c *fiber.Ctx) error {
	teacher, err := database.GetTeacherByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	if req.EmployeeID != teacher.EmployeeID {
		existing, err := database.GetTeacherByEmployeeID(config.GetDB(), req.EmployeeID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if existing != nil {
			return c.Status(409).JSON(fiber.Map{"error": "Employee ID already in use"})
		}
	}

	teacher.EmployeeID = req.EmployeeID
	teacher.FirstName = req.FirstName
	teacher.LastName = req.LastName
	teacher.Phone = req.Phone
	teacher.SubjectID = req.SubjectID

	if err := database.UpdateTeacher(config.GetDB(), teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	return c.JSON(fiber.Map{
		"message": "Teacher updated successfully",
		"teacher": teacher,
	})
}

func DeleteTeacherAPI(c *fiber.Ctx) error {
	teacher, err := database.GetTeacherByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	if err := database.DeleteTeacher(config.GetDB(), teacher.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}

	return c.JSON(fiber.Map{"message": "Teacher deleted successfully"})
}
