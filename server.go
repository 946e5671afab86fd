package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"app/handlers"
	"app/logger"
	"app/middleware"
	"app/routes"
)

// newServer assembles the fiber app serving the screen view models.
func newServer(h *handlers.Handlers, log *logger.Logger) *fiber.App {
	app := fiber.New()

	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log))

	// Liveness of the companion itself, not of the forecast backend.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupRoutes(app, h)
	return app
}
