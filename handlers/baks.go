package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/apperrors"
	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupBakRoutes wires the simple one-step BAK request endpoints.
func SetupBakRoutes(app *fiber.App, svc *services.BakRequestService, auth fiber.Handler) {
	group := app.Group("/bak", auth)

	group.Post("/submit", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		var body struct {
			TargetID string `json:"target_id"`
			Reason   string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		request, err := svc.Submit(actor.ID, body.TargetID, body.Reason)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(request)
	})

	group.Get("/validate", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		requests, err := svc.PendingForTarget(actor.ID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(requests)
	})

	group.Post("/validate/:id/:decision", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		decision := c.Params("decision")
		if decision != "approve" && decision != "decline" {
			return respondError(c, apperrors.Validation("decision must be approve or decline"))
		}

		if err := svc.Resolve(actor, c.Params("id"), decision == "approve"); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "request resolved"})
	})
}
