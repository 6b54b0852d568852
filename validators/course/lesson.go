package courseValidator

import (
	"ocms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validContentTypes = map[string]bool{"TEXT": true, "VIDEO": true, "PDF": true}

// CreateLesson validates the lesson creation body.
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			ContentType string `json:"content_type"`
			ContentURL  string `json:"content_url"`
			TextContent string `json:"text_content"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))
		if reqData.ContentType == "" {
			reqData.ContentType = "TEXT"
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if !validContentTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be TEXT, VIDEO or PDF!"
		}

		switch reqData.ContentType {
		case "TEXT":
			if strings.TrimSpace(reqData.TextContent) == "" {
				errors["text_content"] = "Text content is required for TEXT lessons!"
			}
		case "VIDEO", "PDF":
			if strings.TrimSpace(reqData.ContentURL) == "" {
				errors["content_url"] = "Content URL is required for VIDEO and PDF lessons!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
