package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/apperrors"
	"bak-counter/middleware"
	"bak-counter/services"
	"bak-counter/storage"
)

// SetupAdminRoutes wires the moderation endpoints. Every route requires the
// acting member to be on the admin allow-list.
func SetupAdminRoutes(app *fiber.App, users *services.UserService, trophies *services.TrophyService, store storage.EvidenceStore, auth fiber.Handler) {
	group := app.Group("/admin", auth, middleware.RequireAdmin())

	group.Get("/users", func(c *fiber.Ctx) error {
		members, err := users.List()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(members)
	})

	group.Put("/users/:id/bak", func(c *fiber.Ctx) error {
		admin := middleware.CurrentUser(c)

		var body struct {
			Bak    int    `json:"bak"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := users.SetBak(admin, c.Params("id"), body.Bak, body.Reason); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "bak counter updated"})
	})

	group.Put("/users/:id/xp", func(c *fiber.Ctx) error {
		admin := middleware.CurrentUser(c)

		var body struct {
			XP     int    `json:"xp"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := users.SetXP(admin, c.Params("id"), body.XP, body.Reason); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "xp updated"})
	})

	group.Put("/users/:id/rep", func(c *fiber.Ctx) error {
		admin := middleware.CurrentUser(c)

		var body struct {
			Rep    int    `json:"rep"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := users.SetRep(admin, c.Params("id"), body.Rep, body.Reason); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "reputation updated"})
	})

	group.Get("/users/:id/assignable-trophies", func(c *fiber.Ctx) error {
		available, err := trophies.AssignableTrophies(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(available)
	})

	group.Post("/users/:id/trophies", func(c *fiber.Ctx) error {
		admin := middleware.CurrentUser(c)

		var body struct {
			TrophyID string `json:"trophy_id"`
			Reason   string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := trophies.AssignTrophy(admin, c.Params("id"), body.TrophyID, body.Reason); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "trophy assigned"})
	})

	group.Post("/trophies", func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		description := c.FormValue("description")
		if name == "" {
			return respondError(c, apperrors.Validation("trophy name is required"))
		}

		image, err := c.FormFile("image")
		if err != nil {
			return respondError(c, apperrors.Validation("trophy image is required"))
		}

		data, contentType, err := openUpload(image)
		if err != nil {
			return respondError(c, err)
		}

		key := storage.TrophyImageKey(name, image.Filename)
		if err := store.Put(c.Context(), key, data, contentType); err != nil {
			return respondError(c, err)
		}

		trophy, err := trophies.CreateTrophy(name, description, key)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(trophy)
	})
}
