package storage

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, requireHike fiber.Handler) {
	r.Use(authMiddleware)

	r.Post("/upload", requireHike, func(c *fiber.Ctx) error {
		hikeID := c.FormValue("hike_id")
		if hikeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "hike_id required")
		}
		header, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file required")
		}
		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		defer file.Close()

		userID, _ := c.Locals("user_id").(string)
		url, err := svc.Save(c.Context(), userID, hikeID, header.Filename, file)
		if errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrInvalidHikeID) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})

	r.Get("/objects/:hikeID", requireHike, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		urls, err := svc.ListObjects(c.Context(), userID, c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"urls": urls})
	})
}
