package handlers

import (
	"errors"
	"log"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/config"
	"github.com/gitkushall/lostfound-project/internal/middleware"
	"github.com/gitkushall/lostfound-project/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	cfg           *config.Config
	mailer        services.Mailer
	items         *services.ItemService
	claims        *services.ClaimService
	info          *services.InfoService
	conversations *services.ConversationService
	notifier      *services.Notifier
	sweeper       *services.Sweeper
	db            *gorm.DB
)

// Init wires the handler package to its services. Called once from main.
func Init(c *config.Config, gdb *gorm.DB, m services.Mailer) {
	cfg = c
	db = gdb
	mailer = m
	notifier = services.NewNotifier(gdb, m)
	items = services.NewItemService(gdb)
	claims = services.NewClaimService(gdb, notifier)
	info = services.NewInfoService(gdb, notifier)
	conversations = services.NewConversationService(gdb, notifier)
	sweeper = services.NewSweeper(gdb)
}

// actor builds the explicit acting principal from the request context.
func actor(c *fiber.Ctx) services.Actor {
	return services.Actor{
		ID:       middleware.GetUserID(c),
		Verified: middleware.IsVerified(c),
	}
}

var statusByCode = map[apperrors.Code]int{
	apperrors.CodeUnauthorized:     fiber.StatusUnauthorized,
	apperrors.CodeForbidden:        fiber.StatusForbidden,
	apperrors.CodeNotFound:         fiber.StatusNotFound,
	apperrors.CodeValidation:       fiber.StatusBadRequest,
	apperrors.CodeInvalidOperation: fiber.StatusBadRequest,
	apperrors.CodeInvalidState:     fiber.StatusBadRequest,
	apperrors.CodeConflict:         fiber.StatusConflict,
	apperrors.CodeInternal:         fiber.StatusInternalServerError,
}

// fail maps a workflow error onto an HTTP response.
func fail(c *fiber.Ctx, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusByCode[appErr.Code]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		if appErr.Code == apperrors.CodeInternal {
			log.Printf("internal error: %v", err)
		}
		return c.Status(status).JSON(fiber.Map{"error": appErr.Message})
	}
	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
