package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bak-counter/config"
	"bak-counter/models"
)

// UserContext resolves the gateway-authenticated identity. The gateway has
// already done OAuth; we only get the forwarded X-User-ID header and look
// the member up fresh on every request (no process-wide user cache).
// The admin flag is recomputed from the configured allow-list each time.
func UserContext(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if _, err := uuid.Parse(userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or malformed X-User-ID header",
			})
		}

		var user models.User
		err := db.First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unknown user",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load user",
			})
		}

		user.IsAdmin = cfg.IsAdminEmail(user.Email)
		c.Locals("user", &user)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin members. Must run after UserContext.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the member resolved by UserContext, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
