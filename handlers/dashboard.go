package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bak-counter/middleware"
	"bak-counter/services"
)

// SetupDashboardRoutes wires the member overview and audit log endpoints.
func SetupDashboardRoutes(app *fiber.App, users *services.UserService, baks *services.BakRequestService, bets *services.BetService, logs *services.EventLogService, auth fiber.Handler) {
	group := app.Group("/dashboard", auth)

	group.Get("/", func(c *fiber.Ctx) error {
		actor := middleware.CurrentUser(c)

		members, err := users.List()
		if err != nil {
			return respondError(c, err)
		}

		pendingBaks, err := baks.PendingCountForTarget(actor.ID)
		if err != nil {
			return respondError(c, err)
		}
		pendingBets, err := bets.PendingCountForOpponent(actor.ID)
		if err != nil {
			return respondError(c, err)
		}

		topXP, topRep, err := users.Leaderboards()
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(fiber.Map{
			"users":             members,
			"pending_bak_count": pendingBaks,
			"pending_bet_count": pendingBets,
			"leaderboard_xp":    topXP,
			"leaderboard_rep":   topRep,
		})
	})

	group.Get("/event-logs", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "10"))

		entries, total, err := logs.List(page, size)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"entries": entries,
			"total":   total,
			"page":    page,
		})
	})
}
