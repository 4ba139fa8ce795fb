package share

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the public share endpoint. No auth middleware here;
// the token and optional password are the whole gate.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:token", func(c *fiber.Ctx) error {
		password := c.Query("password")
		if password == "" {
			password = c.Get("X-Share-Password")
		}

		view, err := svc.View(c.Context(), c.Params("token"), password)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "share not found")
		}
		if errors.Is(err, ErrPasswordRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":             "password required",
				"password_required": true,
			})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(view)
	})
}
