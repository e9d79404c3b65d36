package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/apperrors"
	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupHallOfFameRoutes wires the hall of fame endpoints. Listing is open to
// all members; creating and reordering entries is admin-only.
func SetupHallOfFameRoutes(app *fiber.App, svc *services.HallOfFameService, auth fiber.Handler) {
	group := app.Group("/hall-of-fame", auth)

	group.Get("/", func(c *fiber.Ctx) error {
		entries, err := svc.List()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	})

	admin := group.Group("/", middleware.RequireAdmin())

	admin.Post("/", func(c *fiber.Ctx) error {
		var body struct {
			UserID   string `json:"user_id"`
			Feat     string `json:"feat"`
			Activity string `json:"activity"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		entry, err := svc.Create(body.UserID, body.Feat, body.Activity)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	admin.Post("/reorder", func(c *fiber.Ctx) error {
		var body struct {
			OrderedIDs []string `json:"ordered_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := svc.Reorder(body.OrderedIDs); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "order updated"})
	})
}
