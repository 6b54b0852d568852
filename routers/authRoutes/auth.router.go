package authRoutes

import (
	authControllers "ocms/controllers/auth"
	"ocms/middleware"
	authValidators "ocms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
	authGroup.Put("/me", middleware.JWTMiddleware, authControllers.UpdateMe)
	authGroup.Put("/change-password", middleware.JWTMiddleware, authControllers.ChangePassword)
}
