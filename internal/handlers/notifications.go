package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetNotifications(c *fiber.Ctx) error {
	list, err := notifier.List(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

// GetNotificationCount is the polling target for the unread badge.
func GetNotificationCount(c *fiber.Ctx) error {
	count, err := notifier.UnreadCount(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}
	if err := notifier.MarkRead(actor(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := notifier.MarkAllRead(actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
