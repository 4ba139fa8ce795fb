package gearinfo

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Post("/lookup", func(c *fiber.Ctx) error {
		var body struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		}
		if err := c.BodyParser(&body); err != nil || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}

		info, err := svc.Lookup(c.Context(), body.Name, body.Category)
		if errors.Is(err, ErrRateLimited) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":        "lookup temporarily unavailable, enter the details manually",
				"manual_entry": true,
			})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(info)
	})
}
