package controllers

import (
	"interviewprep/config"
	"interviewprep/models"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data with interview totals
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var totalInterviews int64
	uc.DB.Model(&models.Interview{}).Where("user_id = ?", userID).Count(&totalInterviews)

	var selected int64
	uc.DB.Model(&models.Interview{}).
		Where("user_id = ? AND status = ?", userID, models.StatusSelected).
		Count(&selected)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"created_at":       user.CreatedAt,
		"last_login":       user.LastLogin,
		"total_interviews": totalInterviews,
		"selected":         selected,
	})
}
