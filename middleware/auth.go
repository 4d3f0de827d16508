package middleware

import (
	"interviewprep/config"
	"interviewprep/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}
