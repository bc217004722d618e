package settings

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/config"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/database"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/models"
	"github.com/IstiakDeveloper/School-Management-Pro-sub007/app/validation"
)

func GetDeviceSettingsAPI(c *fiber.Ctx) error {
	settings, err := database.GetDeviceSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load device settings"})
	}

	return c.JSON(fiber.Map{"settings": settings})
}

type deviceSettingsRequest struct {
	TeacherInTime      string `json:"teacher_in_time" validate:"required"`
	TeacherOutTime     string `json:"teacher_out_time" validate:"required"`
	TeacherLateTime    string `json:"teacher_late_time" validate:"required"`
	StudentInTime      string `json:"student_in_time" validate:"required"`
	StudentLateMinutes int    `json:"student_late_minutes" validate:"gte=0"`
	AutoMarkLate       bool   `json:"auto_mark_late"`
	AutoMarkEarlyLeave bool   `json:"auto_mark_early_leave"`
	WeekendDays        []int  `json:"weekend_days" validate:"dive,gte=0,lte=6"`
}

func UpdateDeviceSettingsAPI(c *fiber.Ctx) error {
	var req deviceSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}

	// Every threshold must parse as HH:MM before anything is stored.
	for _, hhmm := range []string{req.TeacherInTime, req.TeacherOutTime, req.TeacherLateTime, req.StudentInTime} {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Time settings must be in HH:MM format"})
		}
	}

	settings, err := database.GetDeviceSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load device settings"})
	}

	settings.TeacherInTime = req.TeacherInTime
	settings.TeacherOutTime = req.TeacherOutTime
	settings.TeacherLateTime = req.TeacherLateTime
	settings.StudentInTime = req.StudentInTime
	settings.StudentLateMinutes = req.StudentLateMinutes
	settings.AutoMarkLate = req.AutoMarkLate
	settings.AutoMarkEarlyLeave = req.AutoMarkEarlyLeave
	settings.WeekendDays = req.WeekendDays

	if err := database.UpdateDeviceSettings(config.GetDB(), settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update device settings"})
	}

	return c.JSON(fiber.Map{
		"message":  "Device settings updated",
		"settings": settings,
	})
}

func GetHolidaysAPI(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))

	holidays, err := database.GetHolidays(config.GetDB(), year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch holidays"})
	}

	return c.JSON(fiber.Map{
		"year":     year,
		"holidays": holidays,
	})
}

func CreateHolidayAPI(c *fiber.Ctx) error {
	type holidayRequest struct {
		Name string            `json:"name" validate:"required"`
		Date models.CustomDate `json:"date" validate:"required"`
	}

	var req holidayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if errs := validation.Struct(req); errs != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": errs})
	}
	if req.Date.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "Date is required"})
	}

	holiday := &models.Holiday{Name: req.Name, Date: req.Date}
	if err := database.CreateHoliday(config.GetDB(), holiday); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create holiday"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Holiday created",
		"holiday": holiday,
	})
}

func DeleteHolidayAPI(c *fiber.Ctx) error {
	if err := database.DeleteHoliday(config.GetDB(), c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete holiday"})
	}

	return c.JSON(fiber.Map{"message": "Holiday deleted"})
}
