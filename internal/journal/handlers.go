package journal

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, requireHike fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/:hikeID/logs", requireHike, func(c *fiber.Ctx) error {
		logs, err := svc.List(c.Context(), c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(logs)
	})

	r.Post("/:hikeID/logs", requireHike, func(c *fiber.Ctx) error {
		var input Log
		if err := c.BodyParser(&input); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		input.HikeID = c.Params("hikeID")
		l, err := svc.Create(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(l)
	})

	r.Get("/:hikeID/logs/:id", requireHike, func(c *fiber.Ctx) error {
		l, err := svc.Get(c.Context(), c.Params("hikeID"), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "log not found")
		}
		return c.JSON(l)
	})

	r.Put("/:hikeID/logs/:id", requireHike, func(c *fiber.Ctx) error {
		var update LogUpdate
		if err := c.BodyParser(&update); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		l, err := svc.Update(c.Context(), c.Params("hikeID"), c.Params("id"), update)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(l)
	})

	r.Post("/:hikeID/logs/:id/images", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			URL string `json:"url"`
		}
		if err := c.BodyParser(&body); err != nil || body.URL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "url required")
		}
		if err := svc.AddImage(c.Context(), c.Params("hikeID"), c.Params("id"), body.URL); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:hikeID/logs/:id", requireHike, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("hikeID"), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
