package handlers

import (
	"github.com/gofiber/fiber/v2"

	"app/backend"
	"app/screens"
)

// Handlers exposes the five screen controllers over HTTP. GET endpoints
// snapshot a screen (loading it on first entry), POST endpoints trigger a
// transition and return the fresh snapshot.
type Handlers struct {
	Dashboard *screens.DashboardScreen
	Forecast  *screens.ForecastScreen
	Reorder   *screens.ReorderScreen
	Upload    *screens.UploadScreen
	Settings  *screens.SettingsScreen
}

type storeRequest struct {
	StoreID string `json:"store_id"`
}

type skuRequest struct {
	SKUID string `json:"sku_id"`
}

type horizonRequest struct {
	Horizon int `json:"horizon"`
}

type regenerateRequest struct {
	Regenerate bool `json:"regenerate"`
}

type seedRequest struct {
	Year int `json:"year"`
}

type impactRequest struct {
	Date string `json:"date"`
}

type stockRequest struct {
	StoreID string                `json:"store_id"`
	Updates []backend.StockUpdate `json:"updates"`
}

// --- Dashboard ---

// HandleGetDashboard returns the dashboard view model, loading it on first entry.
func (h *Handlers) HandleGetDashboard(c *fiber.Ctx) error {
	h.Dashboard.EnsureLoaded(c.UserContext())
	return c.JSON(h.Dashboard.Snapshot())
}

// HandleRefreshDashboard re-fetches everything the dashboard shows.
func (h *Handlers) HandleRefreshDashboard(c *fiber.Ctx) error {
	h.Dashboard.Refresh(c.UserContext())
	return c.JSON(h.Dashboard.Snapshot())
}

// HandleSelectDashboardStore switches the dashboard's selected store.
func (h *Handlers) HandleSelectDashboardStore(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Dashboard.SelectStore(c.UserContext(), req.StoreID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Dashboard.Snapshot())
}

// --- Forecast ---

// HandleGetForecast returns the forecast view model, loading it on first entry.
func (h *Handlers) HandleGetForecast(c *fiber.Ctx) error {
	h.Forecast.EnsureLoaded(c.UserContext())
	return c.JSON(h.Forecast.Snapshot())
}

// HandleRefreshForecast re-runs the store/SKU/forecast fetch sequence.
func (h *Handlers) HandleRefreshForecast(c *fiber.Ctx) error {
	h.Forecast.Refresh(c.UserContext())
	return c.JSON(h.Forecast.Snapshot())
}

// HandleSelectForecastStore switches the forecast screen's store.
func (h *Handlers) HandleSelectForecastStore(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Forecast.SelectStore(c.UserContext(), req.StoreID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Forecast.Snapshot())
}

// HandleSelectForecastSKU narrows the chart to one SKU (empty id clears).
func (h *Handlers) HandleSelectForecastSKU(c *fiber.Ctx) error {
	var req skuRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Forecast.SelectSKU(c.UserContext(), req.SKUID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Forecast.Snapshot())
}

// HandleSetForecastHorizon changes the forecast window (1..30 days).
func (h *Handlers) HandleSetForecastHorizon(c *fiber.Ctx) error {
	var req horizonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Forecast.SetHorizon(c.UserContext(), req.Horizon); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Forecast.Snapshot())
}

// HandleRunForecast triggers a recomputation on the backend.
func (h *Handlers) HandleRunForecast(c *fiber.Ctx) error {
	if err := h.Forecast.RunForecast(c.UserContext()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Forecast.Snapshot())
}

// --- Reorder ---

// HandleGetReorder returns the reorder view model, loading it on first entry.
func (h *Handlers) HandleGetReorder(c *fiber.Ctx) error {
	h.Reorder.EnsureLoaded(c.UserContext())
	return c.JSON(h.Reorder.Snapshot())
}

// HandleRefreshReorder re-fetches the reorder list.
func (h *Handlers) HandleRefreshReorder(c *fiber.Ctx) error {
	h.Reorder.Refresh(c.UserContext())
	return c.JSON(h.Reorder.Snapshot())
}

// HandleSelectReorderStore switches the reorder screen's store.
func (h *Handlers) HandleSelectReorderStore(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Reorder.SelectStore(c.UserContext(), req.StoreID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Reorder.Snapshot())
}

// HandleSetReorderHorizon changes the reorder window (1..30 days).
func (h *Handlers) HandleSetReorderHorizon(c *fiber.Ctx) error {
	var req horizonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Reorder.SetHorizon(c.UserContext(), req.Horizon); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Reorder.Snapshot())
}

// HandleSetReorderRegenerate toggles recomputation on reorder fetches.
func (h *Handlers) HandleSetReorderRegenerate(c *fiber.Ctx) error {
	var req regenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	h.Reorder.SetRegenerate(req.Regenerate)
	return c.JSON(h.Reorder.Snapshot())
}

// --- Upload ---

// HandleGetUpload returns the upload screen state.
func (h *Handlers) HandleGetUpload(c *fiber.Ctx) error {
	return c.JSON(h.Upload.Snapshot())
}

// HandleUploadSales accepts a multipart CSV and runs the init-then-upload sequence.
func (h *Handlers) HandleUploadSales(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a file field is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read uploaded file"})
	}
	defer file.Close()

	if err := h.Upload.Upload(c.UserContext(), fileHeader.Filename, fileHeader.Size, file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Upload.Snapshot())
}

// --- Settings ---

// HandleGetSettings returns the settings view model, loading it on first entry.
func (h *Handlers) HandleGetSettings(c *fiber.Ctx) error {
	h.Settings.EnsureLoaded(c.UserContext())
	return c.JSON(h.Settings.Snapshot())
}

// HandleRefreshSettings re-fetches festivals and backend health.
func (h *Handlers) HandleRefreshSettings(c *fiber.Ctx) error {
	h.Settings.Refresh(c.UserContext())
	return c.JSON(h.Settings.Snapshot())
}

// HandleSeedFestivals bulk-adds the default festival calendar for a year.
func (h *Handlers) HandleSeedFestivals(c *fiber.Ctx) error {
	var req seedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Settings.SeedFestivals(c.UserContext(), req.Year); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Settings.Snapshot())
}

// HandleAddFestival registers a custom festival.
func (h *Handlers) HandleAddFestival(c *fiber.Ctx) error {
	var req backend.FestivalCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Settings.AddFestival(c.UserContext(), req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Settings.Snapshot())
}

// HandleCheckImpact looks up the festival demand multiplier for a date.
func (h *Handlers) HandleCheckImpact(c *fiber.Ctx) error {
	var req impactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Settings.CheckImpact(c.UserContext(), req.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Settings.Snapshot())
}

// HandleUpdateStock sends stock corrections to the backend.
func (h *Handlers) HandleUpdateStock(c *fiber.Ctx) error {
	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.Settings.UpdateStock(c.UserContext(), req.StoreID, req.Updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.Settings.Snapshot())
}
