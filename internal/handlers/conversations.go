package handlers

import (
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/gitkushall/lostfound-project/internal/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListConversations returns all conversations of the current user, or a
// single one when ?itemId= is supplied.
func ListConversations(c *fiber.Ctx) error {
	if raw := c.Query("itemId"); raw != "" {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid item ID",
			})
		}
		conv, err := conversations.FindForItem(actor(c), itemID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(conv)
	}

	list, err := conversations.ListMine(actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func OpenConversation(c *fiber.Ctx) error {
	var req models.OpenConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "itemId required",
		})
	}

	conv, err := conversations.GetOrCreate(actor(c), req.ItemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(conv)
}

func ListMessages(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid conversation ID",
		})
	}

	messages, err := conversations.Messages(actor(c), convID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(messages)
}

func SendMessage(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid conversation ID",
		})
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message",
		})
	}

	message, err := conversations.Send(actor(c), convID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

func AddReaction(c *fiber.Ctx) error {
	convID, messageID, ok := parseMessagePath(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	var req models.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid emoji",
		})
	}

	reaction, err := conversations.AddReaction(actor(c), convID, messageID, req.Emoji)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reaction)
}

func RemoveReaction(c *fiber.Ctx) error {
	convID, messageID, ok := parseMessagePath(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	emoji := c.Query("emoji")
	if emoji == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "emoji required",
		})
	}

	if err := conversations.RemoveReaction(actor(c), convID, messageID, emoji); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func ListReactions(c *fiber.Ctx) error {
	convID, messageID, ok := parseMessagePath(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ID",
		})
	}

	reactions, err := conversations.Reactions(actor(c), convID, messageID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reactions)
}

func parseMessagePath(c *fiber.Ctx) (convID, messageID uuid.UUID, ok bool) {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	messageID, err = uuid.Parse(c.Params("messageId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return convID, messageID, true
}
