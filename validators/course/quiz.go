package courseValidator

import (
	"ocms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz validates the quiz creation body.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonID     uint   `json:"lesson_id"`
			Title        string `json:"title"`
			PassingScore int    `json:"passing_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.LessonID == 0 {
			errors["lesson_id"] = "Lesson id is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// AddQuestion validates a question with its answer options. Exactly one
// option must be marked correct.
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text    string `json:"text"`
			Marks   int    `json:"marks"`
			Answers []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Marks == 0 {
			reqData.Marks = 1
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}
		if reqData.Marks < 1 {
			errors["marks"] = "Marks must be at least 1!"
		}
		if len(reqData.Answers) < 2 {
			errors["answers"] = "At least two answer options are required!"
		} else {
			correct := 0
			for _, a := range reqData.Answers {
				if strings.TrimSpace(a.Text) == "" {
					errors["answers"] = "Answer options cannot be empty!"
					break
				}
				if a.IsCorrect {
					correct++
				}
			}
			if _, bad := errors["answers"]; !bad && correct != 1 {
				errors["answers"] = "Exactly one answer option must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
