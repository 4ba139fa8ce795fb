package gear

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/", func(c *fiber.Ctx) error {
		items, err := svc.ListGear(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(items)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req GearItem
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		if req.WeightKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight_kg must be non-negative")
		}
		req.UserID = userID(c)
		item, err := svc.CreateGear(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	// categories before /:id so the literal segment wins the match
	r.Get("/categories", func(c *fiber.Ctx) error {
		cats, err := svc.Categories(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(cats)
	})

	r.Post("/categories", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		cat, err := svc.CreateCategory(c.Context(), userID(c), body.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	})

	r.Delete("/categories/:id", func(c *fiber.Ctx) error {
		if err := svc.DeleteCategory(c.Context(), userID(c), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		item, err := svc.GetGear(c.Context(), userID(c), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "gear item not found")
		}
		return c.JSON(item)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req GearItem
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		item, err := svc.UpdateGear(c.Context(), userID(c), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(item)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.DeleteGear(c.Context(), userID(c), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
