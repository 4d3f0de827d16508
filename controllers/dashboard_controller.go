package controllers

import (
	"time"

	"interviewprep/config"
	"interviewprep/models"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard godoc
// @Summary Dashboard analytics
// @Description Returns status counts, trailing-week activity, preparation stats, success rate by preparation level and the company breakdown
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var interviews []models.Interview
	if err := dc.DB.Where("user_id = ?", userID).
		Order("interview_date DESC").
		Find(&interviews).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch interviews")
	}

	now := time.Now()
	counts := statusCounts(interviews)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_interviews":       len(interviews),
		"status_counts":          counts,
		"success_rate":           successRate(interviews),
		"weekly_activity":        weeklyActivity(interviews, now),
		"preparation_stats":      preparationStats(interviews),
		"success_by_preparation": successByPreparation(interviews),
		"company_breakdown":      companyBreakdown(interviews, 10),
		"added_last_7_days":      countCreatedSince(interviews, now.AddDate(0, 0, -7)),
	})
}

type SkillAnalysisRow struct {
	SkillName string  `json:"skill_name"`
	AvgScore  float64 `json:"avg_score"`
	Count     int     `json:"count"`
}

// GetSkillAnalysis godoc
// @Summary Skill score analysis
// @Description Returns the mean skill score grouped by skill name across all of the user's interviews, weakest skills first
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard/skills [get]
func (dc *DashboardController) GetSkillAnalysis(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var rows []SkillAnalysisRow
	if err := dc.DB.Raw(`
		SELECT s.skill_name AS skill_name, AVG(s.skill_score) AS avg_score, COUNT(*) AS count
		FROM interview_skills s
		JOIN interviews i ON s.interview_id = i.id
		WHERE i.user_id = ? AND s.deleted_at IS NULL AND i.deleted_at IS NULL
		GROUP BY s.skill_name
		ORDER BY avg_score ASC
	`, userID).Scan(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch skill analysis")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"skills": rows,
	})
}
