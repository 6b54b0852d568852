package adminRoutes

import (
	adminControllers "ocms/controllers/admin"
	"ocms/middleware"
	adminValidators "ocms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin subtree. Every route is behind the
// ADMIN role gate.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireAdmin)

	// User management
	adminGroup.Get("/users", adminValidators.UserList(), adminControllers.GetAllUsers)
	adminGroup.Get("/users/:id", adminValidators.UserID(), adminControllers.GetUser)
	adminGroup.Put("/users/:id/active", adminValidators.UserID(), adminControllers.SetUserActive)
	adminGroup.Delete("/users/:id", adminValidators.UserID(), adminControllers.DeleteUser)

	// Instructor approval
	adminGroup.Get("/instructors/pending", adminControllers.GetPendingInstructors)
	adminGroup.Post("/instructors/:id/approve", adminValidators.ProfileID(), adminControllers.ApproveInstructor)
	adminGroup.Post("/instructors/:id/reject", adminValidators.ProfileID(), adminControllers.RejectInstructor)

	// Payments
	adminGroup.Get("/payments", adminControllers.GetAllPayments)
	adminGroup.Post("/payments/:id/refund", adminValidators.PaymentID(), adminControllers.RefundPayment)

	// Dashboard
	adminGroup.Get("/stats", adminControllers.PlatformStats)
}
