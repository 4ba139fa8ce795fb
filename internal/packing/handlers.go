package packing

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, requireHike fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/:hikeID/gear", requireHike, func(c *fiber.Ctx) error {
		assignments, err := svc.List(c.Context(), c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(assignments)
	})

	r.Post("/:hikeID/gear", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			GearID   string `json:"gear_id"`
			Quantity int    `json:"quantity"`
			IsWorn   *bool  `json:"is_worn"`
			Notes    string `json:"notes"`
		}
		if err := c.BodyParser(&body); err != nil || body.GearID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "gear_id required")
		}
		a, err := svc.AddGear(c.Context(), c.Params("hikeID"), body.GearID, body.Quantity, body.IsWorn, body.Notes)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	r.Delete("/:hikeID/gear/:id", requireHike, func(c *fiber.Ctx) error {
		if err := svc.Remove(c.Context(), c.Params("hikeID"), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:hikeID/gear/:id/checked", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			Checked bool `json:"checked"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SetChecked(c.Context(), c.Params("hikeID"), c.Params("id"), body.Checked); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:hikeID/gear/:id/worn", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			IsWorn bool `json:"is_worn"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SetWorn(c.Context(), c.Params("hikeID"), c.Params("id"), body.IsWorn); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:hikeID/summary", requireHike, func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context(), c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summary)
	})

	r.Get("/:hikeID/food", requireHike, func(c *fiber.Ctx) error {
		items, err := svc.ListFood(c.Context(), c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(items)
	})

	r.Post("/:hikeID/food", requireHike, func(c *fiber.Ctx) error {
		var req FoodItem
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.MealCategory == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and meal_category required")
		}
		req.HikeID = c.Params("hikeID")
		req.UserID, _ = c.Locals("user_id").(string)
		item, err := svc.AddFood(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	r.Delete("/:hikeID/food/:id", requireHike, func(c *fiber.Ctx) error {
		if err := svc.DeleteFood(c.Context(), c.Params("hikeID"), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
