package handlers

import (
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/gitkushall/lostfound-project/internal/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ReportInfo(c *fiber.Ctx) error {
	var req models.CreateInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	update, err := info.Report(actor(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(update)
}

func ListItemInfo(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Query("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "itemId required",
		})
	}
	updates, err := info.ListForItem(itemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updates)
}
