package controllers

import (
	"errors"
	"strconv"
	"time"

	"interviewprep/config"
	"interviewprep/models"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InterviewController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInterviewController(db *gorm.DB, cfg *config.Config) *InterviewController {
	return &InterviewController{DB: db, Cfg: cfg}
}

type InterviewInput struct {
	CompanyName      string `json:"company_name"`
	Role             string `json:"role"`
	InterviewDate    string `json:"interview_date"` // YYYY-MM-DD
	Status           string `json:"status"`
	PreparationLevel int    `json:"preparation_level"`
	Notes            string `json:"notes"`
	TechnicalTopics  string `json:"technical_topics"`
}

// validate checks the input and returns the parsed interview date.
// An empty status defaults to Applied, matching the entry form.
func (in *InterviewInput) validate() (time.Time, map[string]string) {
	errs := make(map[string]string)

	if in.CompanyName == "" {
		errs["company_name"] = "Company name is required"
	}
	if in.Role == "" {
		errs["role"] = "Role is required"
	}
	if in.Status == "" {
		in.Status = models.StatusApplied
	} else if !utils.ValidStatus(in.Status) {
		errs["status"] = "Status must be one of Applied, Interviewed, Selected, Rejected"
	}
	if !utils.ValidPreparationLevel(in.PreparationLevel) {
		errs["preparation_level"] = "Preparation level must be between 1 and 5"
	}

	date, err := utils.ParseDate(in.InterviewDate)
	if err != nil {
		errs["interview_date"] = "Interview date must be in YYYY-MM-DD format"
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

// GetInterviews godoc
// @Summary List interviews
// @Description Returns all of the user's interviews, newest interview date first
// @Tags interviews
// @Produce json
// @Param status query string false "Filter by status (Applied|Interviewed|Selected|Rejected)"
// @Param sort query string false "Sort order (date_desc|date_asc|company|preparation)" default(date_desc)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews [get]
func (ic *InterviewController) GetInterviews(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := ic.DB.Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		if !utils.ValidStatus(status) {
			return utils.BadRequest(c, "Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}

	switch c.Query("sort", "date_desc") {
	case "date_desc":
		query = query.Order("interview_date DESC")
	case "date_asc":
		query = query.Order("interview_date ASC")
	case "company":
		query = query.Order("company_name ASC")
	case "preparation":
		query = query.Order("preparation_level DESC")
	default:
		return utils.BadRequest(c, "Invalid sort option")
	}

	var interviews []models.Interview
	if err := query.Find(&interviews).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch interviews")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"interviews": interviews,
		"total":      len(interviews),
	})
}

// GetInterview godoc
// @Summary Get one interview
// @Description Returns a single interview with its skills. Rows belonging to other users are indistinguishable from missing rows
// @Tags interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} models.Interview
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews/{id} [get]
func (ic *InterviewController) GetInterview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid interview ID")
	}

	var interview models.Interview
	if err := ic.DB.Preload("Skills").
		Where("id = ? AND user_id = ?", id, userID).
		First(&interview).Error; err != nil {
		return utils.NotFound(c, "Interview not found")
	}

	return utils.Success(c, fiber.StatusOK, interview)
}

// CreateInterview godoc
// @Summary Create an interview
// @Description Records a new interview for the authenticated user
// @Tags interviews
// @Accept json
// @Produce json
// @Param interview body controllers.InterviewInput true "Interview data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews [post]
func (ic *InterviewController) CreateInterview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input InterviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	date, errs := input.validate()
	if errs != nil {
		return utils.ValidationError(c, errs)
	}

	interview := models.Interview{
		UserID:           userID,
		CompanyName:      input.CompanyName,
		Role:             input.Role,
		InterviewDate:    date,
		Status:           input.Status,
		PreparationLevel: input.PreparationLevel,
		Notes:            input.Notes,
		TechnicalTopics:  input.TechnicalTopics,
	}
	if err := ic.DB.Create(&interview).Error; err != nil {
		return utils.InternalServerError(c, "Could not create interview")
	}

	return utils.Created(c, fiber.Map{"id": interview.ID})
}

// UpdateInterview godoc
// @Summary Update an interview
// @Description Replaces all editable fields of one of the user's interviews
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param interview body controllers.InterviewInput true "Interview data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews/{id} [put]
func (ic *InterviewController) UpdateInterview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid interview ID")
	}

	var input InterviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	date, errs := input.validate()
	if errs != nil {
		return utils.ValidationError(c, errs)
	}

	var interview models.Interview
	if err := ic.DB.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Interview not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	interview.CompanyName = input.CompanyName
	interview.Role = input.Role
	interview.InterviewDate = date
	interview.Status = input.Status
	interview.PreparationLevel = input.PreparationLevel
	interview.Notes = input.Notes
	interview.TechnicalTopics = input.TechnicalTopics

	if err := ic.DB.Save(&interview).Error; err != nil {
		return utils.InternalServerError(c, "Could not update interview")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Interview updated successfully"})
}

// DeleteInterview godoc
// @Summary Delete an interview
// @Description Removes one of the user's interviews
// @Tags interviews
// @Param id path int true "Interview ID"
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews/{id} [delete]
func (ic *InterviewController) DeleteInterview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid interview ID")
	}

	result := ic.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Interview{})
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete interview")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Interview not found")
	}

	return utils.NoContent(c)
}

type SkillInput struct {
	SkillName  string `json:"skill_name"`
	SkillScore int    `json:"skill_score"`
}

// AddSkill godoc
// @Summary Add a skill score
// @Description Records a per-skill score against one of the user's interviews
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param skill body controllers.SkillInput true "Skill data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /interviews/{id}/skills [post]
func (ic *InterviewController) AddSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid interview ID")
	}

	var input SkillInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.SkillName == "" {
		return utils.BadRequest(c, "Skill name is required")
	}

	var interview models.Interview
	if err := ic.DB.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error; err != nil {
		return utils.NotFound(c, "Interview not found")
	}

	skill := models.InterviewSkill{
		InterviewID: interview.ID,
		SkillName:   input.SkillName,
		SkillScore:  input.SkillScore,
	}
	if err := ic.DB.Create(&skill).Error; err != nil {
		return utils.InternalServerError(c, "Could not add skill")
	}

	return utils.Created(c, fiber.Map{"id": skill.ID})
}
