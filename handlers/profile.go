package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/apperrors"
	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupProfileRoutes wires member profile endpoints.
func SetupProfileRoutes(app *fiber.App, svc *services.UserService, auth fiber.Handler) {
	group := app.Group("/profile", auth)

	group.Get("/:id", func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(profile)
	})

	group.Put("/description", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		var body struct {
			Description string `json:"description"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := svc.UpdateDescription(actor.ID, body.Description); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "description updated"})
	})

	group.Put("/picture", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		picture, err := c.FormFile("picture")
		if err != nil {
			return respondError(c, apperrors.Validation("picture file is required"))
		}

		if err := svc.UpdatePicture(c.Context(), actor, picture); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"profile_picture": actor.ProfilePicture})
	})

	group.Delete("/picture", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		if err := svc.DeletePicture(c.Context(), actor); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "picture removed"})
	})
}
