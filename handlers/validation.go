package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupValidationRoutes wires the dual-approval "BAK getrokken" endpoints.
func SetupValidationRoutes(app *fiber.App, svc *services.ValidationService, auth fiber.Handler) {
	group := app.Group("/bak-getrokken", auth)

	group.Get("/", func(c *fiber.Ctx) error {
		activePage, _ := strconv.Atoi(c.Query("activePage", "1"))
		closedPage, _ := strconv.Atoi(c.Query("closedPage", "1"))

		open, closed, err := svc.List(activePage, closedPage)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"active": open,
			"closed": closed,
		})
	})

	group.Post("/", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		targetID := c.FormValue("target_id")
		evidence, err := c.FormFile("evidence")
		if err != nil {
			evidence = nil // missing file is reported by the service
		}

		request, err := svc.Create(c.Context(), actor.ID, targetID, evidence)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(request)
	})

	group.Post("/:id/approve", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		if err := svc.Approve(c.Context(), actor, c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "approval recorded"})
	})

	group.Post("/:id/decline", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		if err := svc.Decline(c.Context(), actor, c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "request declined"})
	})
}
