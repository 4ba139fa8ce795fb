package task

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware, requireHike fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/:hikeID/tasks", requireHike, func(c *fiber.Ctx) error {
		tasks, err := svc.List(c.Context(), c.Params("hikeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(tasks)
	})

	r.Post("/:hikeID/tasks", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			Description string `json:"description"`
		}
		if err := c.BodyParser(&body); err != nil || body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "description required")
		}
		t, err := svc.Create(c.Context(), c.Params("hikeID"), body.Description)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	})

	r.Put("/:hikeID/tasks/reorder", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			TaskIDs []string `json:"task_ids"`
		}
		if err := c.BodyParser(&body); err != nil || len(body.TaskIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "task_ids required")
		}
		if err := svc.Reorder(c.Context(), c.Params("hikeID"), body.TaskIDs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:hikeID/tasks/:id/completed", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			Completed bool `json:"completed"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SetCompleted(c.Context(), c.Params("hikeID"), c.Params("id"), body.Completed); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:hikeID/tasks/:id", requireHike, func(c *fiber.Ctx) error {
		var body struct {
			Description string `json:"description"`
		}
		if err := c.BodyParser(&body); err != nil || body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "description required")
		}
		if err := svc.UpdateDescription(c.Context(), c.Params("hikeID"), c.Params("id"), body.Description); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:hikeID/tasks/:id", requireHike, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("hikeID"), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
