package controllers

import (
	"log"
	"strconv"
	"time"

	"interviewprep/config"
	"interviewprep/mailer"
	"interviewprep/models"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReminderController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Configs *mailer.ConfigStore
	Sender  mailer.Sender
}

func NewReminderController(db *gorm.DB, cfg *config.Config, configs *mailer.ConfigStore, sender mailer.Sender) *ReminderController {
	return &ReminderController{DB: db, Cfg: cfg, Configs: configs, Sender: sender}
}

type UpcomingInterview struct {
	models.Interview
	DaysUntil int `json:"days_until"`
}

// GetUpcoming godoc
// @Summary List upcoming interviews
// @Description Lists interviews dated today or later, soonest first, with days remaining
// @Tags reminders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reminders [get]
func (rc *ReminderController) GetUpcoming(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Wire dates are stored at UTC midnight, so the window boundary has
	// to be UTC midnight too or today's interviews fall out on servers
	// west of UTC.
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var interviews []models.Interview
	if err := rc.DB.Where("user_id = ? AND interview_date >= ?", userID, today).
		Order("interview_date ASC").
		Find(&interviews).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch interviews")
	}

	upcoming := make([]UpcomingInterview, 0, len(interviews))
	for _, iv := range interviews {
		upcoming = append(upcoming, UpcomingInterview{
			Interview: iv,
			DaysUntil: int(iv.InterviewDate.Sub(today).Hours() / 24),
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"upcoming": upcoming,
		"total":    len(upcoming),
	})
}

// SaveConfig godoc
// @Summary Save email configuration
// @Description Stores the user's SMTP settings in process memory; nothing is written to the database and a restart clears it
// @Tags reminders
// @Accept json
// @Produce json
// @Param config body mailer.EmailConfig true "SMTP settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reminders/config [put]
func (rc *ReminderController) SaveConfig(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input mailer.EmailConfig
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if !utils.ValidEmail(input.Email) {
		return utils.BadRequest(c, "Invalid email format")
	}
	if input.SMTPHost == "" {
		return utils.BadRequest(c, "SMTP host is required")
	}
	if input.SMTPPort == 0 {
		input.SMTPPort = 587
	}
	if input.SMTPPort < 1 || input.SMTPPort > 65535 {
		return utils.BadRequest(c, "SMTP port must be between 1 and 65535")
	}
	if input.ReminderDays < 0 || input.ReminderDays > 7 {
		return utils.BadRequest(c, "Reminder lead time must be between 0 and 7 days")
	}

	rc.Configs.Set(userID, input)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Email configuration saved",
	})
}

// SendTest godoc
// @Summary Send a test email
// @Description Sends a test email to the configured address
// @Tags reminders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reminders/test [post]
func (rc *ReminderController) SendTest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	cfg, ok := rc.Configs.Get(userID)
	if !ok {
		return utils.BadRequest(c, "Configure email first")
	}

	if err := rc.Sender.Send(cfg, cfg.Email, "Test Email from InterviewPrep Pro", mailer.TestBody()); err != nil {
		log.Printf("test email failed for user %d: %v", userID, err)
		return utils.BadGateway(c, "Failed to send email. Please check your configuration.")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Test email sent successfully",
	})
}

// SendReminder godoc
// @Summary Send an interview reminder
// @Description Emails the user about one upcoming interview and marks it as reminded; the flag is only set after the SMTP call succeeds
// @Tags reminders
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reminders/{id}/send [post]
func (rc *ReminderController) SendReminder(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid interview ID")
	}

	var interview models.Interview
	if err := rc.DB.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error; err != nil {
		return utils.NotFound(c, "Interview not found")
	}

	cfg, ok := rc.Configs.Get(userID)
	if !ok {
		return utils.BadRequest(c, "Configure email first")
	}

	subject := mailer.ReminderSubject(&interview)
	body := mailer.ReminderBody(&interview)
	if err := rc.Sender.Send(cfg, cfg.Email, subject, body); err != nil {
		log.Printf("reminder email failed for interview %d: %v", interview.ID, err)
		return utils.BadGateway(c, "Failed to send reminder")
	}

	if err := rc.DB.Model(&interview).Update("reminder_sent", true).Error; err != nil {
		return utils.InternalServerError(c, "Reminder sent but could not be recorded")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Reminder sent!",
	})
}
