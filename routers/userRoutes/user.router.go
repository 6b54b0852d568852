package userRoutes

import (
	courseControllers "ocms/controllers/course"
	userControllers "ocms/controllers/user"
	"ocms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	// Student dashboard
	app.Get("/api/dashboard/student",
		middleware.JWTMiddleware, middleware.RequireStudent, courseControllers.StudentDashboard)

	// Notifications
	notificationGroup := app.Group("/api/notifications", middleware.JWTMiddleware)
	notificationGroup.Get("/", userControllers.GetNotifications)
	notificationGroup.Post("/read-all", userControllers.MarkAllNotificationsRead)
	notificationGroup.Post("/:id/read", userControllers.MarkNotificationRead)
}
