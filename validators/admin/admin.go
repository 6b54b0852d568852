package adminValidator

import (
	"ocms/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func uintParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err != nil || value == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(localKey, uint(value))
		return c.Next()
	}
}

func UserID() fiber.Handler    { return uintParam("id", "targetUserID") }
func ProfileID() fiber.Handler { return uintParam("id", "profileID") }
func PaymentID() fiber.Handler { return uintParam("id", "paymentID") }

// UserList validates optional pagination query parameters.
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
