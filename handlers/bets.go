package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bak-counter/apperrors"
	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupBetRoutes wires the wager endpoints.
func SetupBetRoutes(app *fiber.App, svc *services.BetService, auth fiber.Handler) {
	group := app.Group("/bets", auth)

	group.Get("/", func(c *fiber.Ctx) error {
		bets, err := svc.List()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(bets)
	})

	group.Post("/", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		var body struct {
			OpponentID  string `json:"opponent_id"`
			JudgeID     string `json:"judge_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Stake       int    `json:"stake"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		bet, err := svc.Create(actor, body.OpponentID, body.JudgeID, body.Title, body.Description, body.Stake)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(bet)
	})

	group.Post("/:id/approve", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		if err := svc.ApproveByOpponent(actor, c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "bet approved"})
	})

	group.Post("/:id/decline", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)
		if err := svc.DeclineByOpponent(actor, c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "bet cancelled"})
	})

	group.Post("/:id/judge", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		var body struct {
			WinnerID string `json:"winner_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, apperrors.Validation("invalid request body"))
		}

		if err := svc.Judge(actor, c.Params("id"), body.WinnerID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "bet settled"})
	})
}
