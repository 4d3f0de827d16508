package controllers

import (
	"interviewprep/config"
	"interviewprep/models"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InsightsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInsightsController(db *gorm.DB, cfg *config.Config) *InsightsController {
	return &InsightsController{DB: db, Cfg: cfg}
}

// GetInsights godoc
// @Summary Performance insights
// @Description Regenerates the rule-based recommendations from the user's interview history. Nothing is persisted; the same data always produces the same text
// @Tags insights
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /insights [get]
func (ic *InsightsController) GetInsights(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ic.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Chronological order so trend halves and the recent-five window
	// line up with the calendar.
	var interviews []models.Interview
	if err := ic.DB.Where("user_id = ?", userID).
		Order("interview_date ASC").
		Find(&interviews).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch interviews")
	}

	if len(interviews) == 0 {
		return utils.Success(c, fiber.StatusOK, fiber.Map{
			"message": "No data available for analysis. Add some interviews first!",
		})
	}

	topics := topicStats(interviews)
	weak := weakTopics(topics)

	response := fiber.Map{
		"performance": performanceSummary(interviews),
		"weak_areas": fiber.Map{
			"topics":          topics,
			"flagged":         weak,
			"recommendations": weakTopicRecommendations(weak),
		},
		"tips":        personalizedTips(interviews),
		"predictions": prediction(interviews),
	}

	if trend, ok := trendAnalysis(interviews); ok {
		response["trend"] = trend
	} else {
		response["trend"] = fiber.Map{
			"direction": "insufficient_data",
			"message":   "Add more interviews to see performance trends!",
		}
	}

	return utils.Success(c, fiber.StatusOK, response)
}
