package routes

import (
	"interviewprep/config"
	"interviewprep/controllers"
	"interviewprep/mailer"
	"interviewprep/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, configs *mailer.ConfigStore, sender mailer.Sender) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Interview routes
	interviewController := controllers.NewInterviewController(db, cfg)
	interviews := app.Group("/api/interviews", authMiddleware)
	interviews.Get("/", interviewController.GetInterviews)
	interviews.Post("/", interviewController.CreateInterview)
	interviews.Get("/:id", interviewController.GetInterview)
	interviews.Put("/:id", interviewController.UpdateInterview)
	interviews.Delete("/:id", interviewController.DeleteInterview)
	interviews.Post("/:id/skills", interviewController.AddSkill)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/api/dashboard/skills", authMiddleware, dashboardController.GetSkillAnalysis)

	// Insights routes
	insightsController := controllers.NewInsightsController(db, cfg)
	app.Get("/api/insights", authMiddleware, insightsController.GetInsights)

	// Reminder routes
	reminderController := controllers.NewReminderController(db, cfg, configs, sender)
	reminders := app.Group("/api/reminders", authMiddleware)
	reminders.Get("/", reminderController.GetUpcoming)
	reminders.Put("/config", reminderController.SaveConfig)
	reminders.Post("/test", reminderController.SendTest)
	reminders.Post("/:id/send", reminderController.SendReminder)
}
