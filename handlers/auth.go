package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/services"
)

// SetupAuthRoutes wires the gateway sync endpoint. The gateway calls this
// after a Google login so the member row exists before any other request;
// it runs without the user-context middleware because the member may not
// exist yet.
func SetupAuthRoutes(app *fiber.App, svc *services.UserService) {
	app.Post("/auth/sync", func(c *fiber.Ctx) error {
		googleID := c.Get("X-User-Google-ID")
		email := c.Get("X-User-Email")
		name := c.Get("X-User-Name")

		if googleID == "" || email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "X-User-Google-ID and X-User-Email headers are required",
			})
		}

		user, err := svc.FindOrCreateByGoogleID(googleID, email, name)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	})
}
