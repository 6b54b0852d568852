package courseValidator

import (
	"ocms/middleware"

	"github.com/gofiber/fiber/v2"
)

// MarkProgress validates the completion-mark body.
func MarkProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EnrollmentID uint `json:"enrollment_id"`
			LessonID     uint `json:"lesson_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.EnrollmentID == 0 {
			errors["enrollment_id"] = "Enrollment id is required!"
		}
		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Lesson id is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
