package handlers

import (
	"time"

	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/gitkushall/lostfound-project/internal/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func CreateItem(c *fiber.Ctx) error {
	var req models.CreateItemRequest
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

	item, err := items.Create(actor(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func ListItems(c *fiber.Ctx) error {
	filter := models.ItemFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort", "newest"),
	}
	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}

	list, err := items.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}
	item, err := items.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func MyItems(c *fiber.Ctx) error {
	list, err := items.ListMine(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var req models.UpdateItemRequest
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

	item, err := items.Update(actor(c), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}
	if err := items.Delete(actor(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
