package students

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetStudentsAPI(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filters := database.StudentFilters{
		Search:    c.Query("search"),
		ClassID:   c.Query("class_id"),
		SectionID: c.Query("section_id"),
		Gender:    c.Query("gender"),
		Status:    c.Query("status", "active"),
		Limit:     limit,
		Offset:    offset,
	}

	students, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentAPI(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid student id"})
	}

	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"student": student})
}

type studentRequest struct {
	AdmissionNo    string            `json:"admission_no" validate:"required"`
	RollNo         *int              `json:"roll_no"`
	FirstName      string            `json:"first_name" validate:"required"`
	LastName       string            `json:"last_name" validate:"required"`
	Gender         string            `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth    models.CustomDate `json:"date_of_birth"`
	ClassID        *string           `json:"class_id" validate:"omitempty,uuid"`
	SectionID      *string           `json:"section_id" validate:"omitempty,uuid"`
	AcademicYearID *string           `json:"academic_year_id" validate:"omitempty,uuid"`
	GuardianName   string            `json:"guardian_name"`
	GuardianPhone  string            `json:"guardian_phone"`
	AdmissionDate  models.CustomDate `json:"admission_date"`
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	// Admission numbers key device punches, so duplicates are rejected
	// up front rather than surfaced as a constraint error.
	existing, err := database.GetStudentByAdmissionNo(config.GetDB(), req.AdmissionNo)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if existing != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Admission number already in use"})
	}

	student := &models.Student{
		AdmissionNo:    req.AdmissionNo,
		RollNo:         req.RollNo,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         models.Gender(req.Gender),
		DateOfBirth:    req.DateOfBirth,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
		AcademicYearID: req.AcademicYearID,
		GuardianName:   req.GuardianName,
		GuardianPhone:  req.GuardianPhone,
		AdmissionDate:  req.AdmissionDate,
	}

	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	if req.AdmissionNo != student.AdmissionNo {
		existing, err := database.GetStudentByAdmissionNo(config.GetDB(), req.AdmissionNo)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Database error"})
		}
		if existing != nil {
			return c.Status(409).JSON(fiber.Map{"error": "Admission number already in use"})
		}
	}

	student.AdmissionNo = req.AdmissionNo
	student.RollNo = req.RollNo
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Gender = models.Gender(req.Gender)
	student.ClassID = req.ClassID
	student.SectionID = req.SectionID
	student.GuardianName = req.GuardianName
	student.GuardianPhone = req.GuardianPhone

	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	if err := database.DeleteStudent(config.GetDB(), student.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}
