package routes

import (
	"github.com/gitkushall/lostfound-project/internal/handlers"
	"github.com/gitkushall/lostfound-project/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/verify-email", handlers.VerifyEmail)
	auth.Post("/resend-code", handlers.ResendCode)

	// Public browsing. /items/my must be registered before /items/:id.
	api.Get("/items", handlers.ListItems)
	api.Get("/items/my", middleware.Protected(), handlers.MyItems)
	api.Get("/items/:id", handlers.GetItem)

	// Sweeper trigger for the external scheduler (secret-guarded).
	api.Get("/cron/cleanup", handlers.CleanupOldPosts)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	protected.Post("/items", handlers.CreateItem)
	protected.Put("/items/:id", handlers.UpdateItem)
	protected.Delete("/items/:id", handlers.DeleteItem)

	protected.Post("/claims", handlers.SubmitClaim)
	protected.Put("/claims/:id", handlers.ResolveClaim)

	protected.Post("/item-info", handlers.ReportInfo)
	protected.Get("/item-info", handlers.ListItemInfo)

	conversations := protected.Group("/conversations")
	conversations.Get("/", handlers.ListConversations)
	conversations.Post("/", handlers.OpenConversation)
	conversations.Get("/:id/messages", handlers.ListMessages)
	conversations.Post("/:id/messages", handlers.SendMessage)
	conversations.Get("/:id/messages/:messageId/reactions", handlers.ListReactions)
	conversations.Post("/:id/messages/:messageId/reactions", handlers.AddReaction)
	conversations.Delete("/:id/messages/:messageId/reactions", handlers.RemoveReaction)

	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Get("/count", handlers.GetNotificationCount)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllNotificationsRead)

	protected.Post("/upload", handlers.UploadImage)
}
