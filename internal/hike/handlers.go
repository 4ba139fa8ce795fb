package hike

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/", func(c *fiber.Ctx) error {
		hikes, err := svc.ListHikes(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(hikes)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req Hike
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		req.UserID = userID(c)
		h, err := svc.CreateHike(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(h)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		h, err := svc.GetHike(c.Context(), userID(c), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "hike not found")
		}
		return c.JSON(h)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req Hike
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h, err := svc.UpdateHike(c.Context(), userID(c), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(h)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.DeleteHike(c.Context(), userID(c), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:id/share", func(c *fiber.Ctx) error {
		var req ShareUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		h, err := svc.UpdateShare(c.Context(), userID(c), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(h)
	})
}

// OwnershipMiddleware blocks requests whose hike does not belong to the
// authenticated user, before any hike-scoped handler runs. The hike id comes
// from the :hikeID route param, or from the hike_id form field for uploads.
// A foreign hike reads as 404 so the route leaks nothing about its existence.
func OwnershipMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hikeID := c.Params("hikeID")
		if hikeID == "" {
			hikeID = c.FormValue("hike_id")
		}
		if hikeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "hike_id required")
		}
		if err := svc.Owns(c.Context(), userID(c), hikeID); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "hike not found")
		}
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
