package middleware

import (
	"ocms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that rejects the request with a 403
// unless the resolved user's role is in the allow-list. Must run after
// JWTMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// RequireStudent, RequireInstructor and RequireAdmin cover the common cases.
var (
	RequireStudent    = RequireRoles(models.RoleStudent)
	RequireInstructor = RequireRoles(models.RoleInstructor)
	RequireAdmin      = RequireRoles(models.RoleAdmin)
)
