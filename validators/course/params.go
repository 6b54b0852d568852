package courseValidator

import (
	"ocms/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// uintParam returns a validator that parses a positive integer route
// parameter into c.Locals under localKey. All ids in the API are uint;
// parsing once here keeps the controllers free of string/int mixups.
func uintParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params(param)
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || value == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(localKey, uint(value))
		return c.Next()
	}
}

func CourseID() fiber.Handler     { return uintParam("id", "courseID") }
func LessonID() fiber.Handler     { return uintParam("lesson_id", "lessonID") }
func EnrollmentID() fiber.Handler { return uintParam("id", "enrollmentID") }
func PaymentID() fiber.Handler    { return uintParam("id", "paymentID") }
func QuizID() fiber.Handler       { return uintParam("id", "quizID") }
func QuestionID() fiber.Handler   { return uintParam("question_id", "questionID") }
func ResourceID() fiber.Handler   { return uintParam("id", "resourceID") }
