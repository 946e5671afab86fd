package routes

import (
	"github.com/gofiber/fiber/v2"

	"app/handlers"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	api := app.Group("/api/v1")

	// --- Dashboard ---
	dashboard := api.Group("/dashboard")
	dashboard.Get("/", h.HandleGetDashboard)
	dashboard.Post("/refresh", h.HandleRefreshDashboard)
	dashboard.Post("/select-store", h.HandleSelectDashboardStore)

	// --- Forecast ---
	forecast := api.Group("/forecast")
	forecast.Get("/", h.HandleGetForecast)
	forecast.Post("/refresh", h.HandleRefreshForecast)
	forecast.Post("/select-store", h.HandleSelectForecastStore)
	forecast.Post("/select-sku", h.HandleSelectForecastSKU)
	forecast.Post("/horizon", h.HandleSetForecastHorizon)
	forecast.Post("/run", h.HandleRunForecast)

	// --- Reorder ---
	reorder := api.Group("/reorder")
	reorder.Get("/", h.HandleGetReorder)
	reorder.Post("/refresh", h.HandleRefreshReorder)
	reorder.Post("/select-store", h.HandleSelectReorderStore)
	reorder.Post("/horizon", h.HandleSetReorderHorizon)
	reorder.Post("/regenerate", h.HandleSetReorderRegenerate)

	// --- Upload ---
	upload := api.Group("/upload")
	upload.Get("/", h.HandleGetUpload)
	upload.Post("/", h.HandleUploadSales)

	// --- Settings ---
	settings := api.Group("/settings")
	settings.Get("/", h.HandleGetSettings)
	settings.Post("/refresh", h.HandleRefreshSettings)
	settings.Post("/festivals/seed", h.HandleSeedFestivals)
	settings.Post("/festivals", h.HandleAddFestival)
	settings.Post("/festivals/impact", h.HandleCheckImpact)
	settings.Post("/stock", h.HandleUpdateStock)
}
