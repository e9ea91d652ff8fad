package main

import (
	"log"

	"github.com/gitkushall/lostfound-project/internal/config"
	"github.com/gitkushall/lostfound-project/internal/database"
	"github.com/gitkushall/lostfound-project/internal/handlers"
	"github.com/gitkushall/lostfound-project/internal/routes"
	"github.com/gitkushall/lostfound-project/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("database connect: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	mailer := services.NewMailer(cfg)
	handlers.Init(cfg, database.DB, mailer)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app)
	app.Static("/uploads", cfg.UploadDir)

	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
