package handlers

import (
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/gitkushall/lostfound-project/internal/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SubmitClaim(c *fiber.Ctx) error {
	var req models.CreateClaimRequest
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

	claim, err := claims.Submit(actor(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(claim)
}

func ResolveClaim(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid claim ID",
		})
	}

	var req models.ResolveClaimRequest
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

	claim, err := claims.Resolve(actor(c), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(claim)
}
