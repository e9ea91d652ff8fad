package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CleanupOldPosts runs the retention sweeper. Invoked by an external
// scheduler; guarded by CRON_SECRET when one is configured.
func CleanupOldPosts(c *fiber.Ctx) error {
	if cfg.CronSecret != "" {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if token != cfg.CronSecret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
	}

	result, err := sweeper.Sweep()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}
