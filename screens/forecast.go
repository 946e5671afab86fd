package screens

import (
	"context"
	"fmt"

	"app/assembler"
	"app/backend"
	"app/logger"
)

// ForecastScreen shows per-SKU demand forecasts for the selected store as a
// chart plus backend-generated insights.
type ForecastScreen struct {
	state
	api Backend
	log *logger.Logger

	horizon       int
	stores        []backend.Store
	selectedStore string
	skus          []backend.SKU
	selectedSKU   string
	chart         *assembler.Chart
	insights      []string
	generatedAt   string
	lastRun       *backend.RunForecastResult
}

// ForecastSnapshot is the forecast view model.
type ForecastSnapshot struct {
	Phase         Phase                      `json:"phase"`
	Error         string                     `json:"error,omitempty"`
	Horizon       int                        `json:"horizon"`
	Stores        []backend.Store            `json:"stores"`
	SelectedStore string                     `json:"selected_store"`
	SKUs          []backend.SKU              `json:"skus"`
	SelectedSKU   string                     `json:"selected_sku"`
	Chart         *assembler.Chart           `json:"chart"`
	Insights      []string                   `json:"insights"`
	GeneratedAt   string                     `json:"generated_at"`
	LastRun       *backend.RunForecastResult `json:"last_run,omitempty"`
}

type horizonParam struct {
	Horizon int `validate:"required,min=1,max=30"`
}

func NewForecastScreen(api Backend, log *logger.Logger, defaultHorizon int) *ForecastScreen {
	return &ForecastScreen{
		state:   state{phase: PhaseIdle},
		api:     api,
		log:     log.With("screen", "forecast"),
		horizon: defaultHorizon,
	}
}

// EnsureLoaded triggers the initial fetch on first screen entry.
func (s *ForecastScreen) EnsureLoaded(ctx context.Context) {
	if s.isIdle() {
		s.Refresh(ctx)
	}
}

// Refresh runs the full dependent sequence: store list, then SKUs for the
// selected store, then the forecast itself. Later steps are never issued
// before the earlier ones resolve.
func (s *ForecastScreen) Refresh(ctx context.Context) {
	s.mu.Lock()
	selectedStore := s.selectedStore
	selectedSKU := s.selectedSKU
	horizon := s.horizon
	s.mu.Unlock()

	gen := s.begin()

	stores, err := s.api.ListStores(ctx)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}
	if len(stores) == 0 {
		s.finish(gen, nil, func() {
			s.stores = stores
			s.selectedStore = ""
			s.skus = nil
			s.selectedSKU = ""
			s.chart = assembler.BuildChart(nil, horizon)
			s.insights = nil
			s.generatedAt = ""
		})
		return
	}

	if selectedStore == "" || !containsStore(stores, selectedStore) {
		selectedStore = stores[0].StoreID
		selectedSKU = ""
	}

	skus, envelope, err := s.fetchStoreData(ctx, selectedStore, horizon, selectedSKU)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}

	s.finish(gen, nil, func() {
		s.stores = stores
		s.selectedStore = selectedStore
		s.selectedSKU = selectedSKU
		s.applyEnvelope(skus, envelope, horizon)
	})
}

// SelectStore switches to another store. The SKU filter belongs to the old
// store, so it is cleared before the dependent fetches run.
func (s *ForecastScreen) SelectStore(ctx context.Context, storeID string) error {
	s.mu.Lock()
	known := containsStore(s.stores, storeID)
	horizon := s.horizon
	s.mu.Unlock()
	if storeID == "" {
		return fmt.Errorf("store_id is required")
	}
	if !known {
		return fmt.Errorf("unknown store %q", storeID)
	}

	gen := s.begin()

	skus, envelope, err := s.fetchStoreData(ctx, storeID, horizon, "")
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.selectedStore = storeID
		s.selectedSKU = ""
		s.applyEnvelope(skus, envelope, horizon)
	})
	return nil
}

// SelectSKU narrows the chart to one SKU; an empty id clears the filter.
func (s *ForecastScreen) SelectSKU(ctx context.Context, skuID string) error {
	s.mu.Lock()
	storeID := s.selectedStore
	horizon := s.horizon
	s.mu.Unlock()
	if storeID == "" {
		return fmt.Errorf("no store selected")
	}

	gen := s.begin()

	envelope, err := s.api.GetForecast(ctx, storeID, horizon, skuID)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.selectedSKU = skuID
		s.chart = assembler.BuildChart(envelope.Forecasts, horizon)
		s.insights = envelope.Insights
		s.generatedAt = envelope.GeneratedAt
	})
	return nil
}

// SetHorizon changes the forecast window and re-fetches. Horizons outside
// the backend's 1..30 bounds are rejected before any call is made.
func (s *ForecastScreen) SetHorizon(ctx context.Context, horizon int) error {
	if err := validate.Struct(horizonParam{Horizon: horizon}); err != nil {
		return fmt.Errorf("horizon must be between 1 and 30 days")
	}

	s.mu.Lock()
	s.horizon = horizon
	storeID := s.selectedStore
	skuID := s.selectedSKU
	s.mu.Unlock()
	if storeID == "" {
		return nil
	}

	gen := s.begin()

	envelope, err := s.api.GetForecast(ctx, storeID, horizon, skuID)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.chart = assembler.BuildChart(envelope.Forecasts, horizon)
		s.insights = envelope.Insights
		s.generatedAt = envelope.GeneratedAt
	})
	return nil
}

// RunForecast asks the backend to recompute predictions for the selected
// store, then fetches the fresh result.
func (s *ForecastScreen) RunForecast(ctx context.Context) error {
	s.mu.Lock()
	storeID := s.selectedStore
	skuID := s.selectedSKU
	horizon := s.horizon
	s.mu.Unlock()
	if storeID == "" {
		return fmt.Errorf("no store selected")
	}

	gen := s.begin()

	run, err := s.api.RunForecast(ctx, backend.ForecastRequest{StoreID: storeID, Horizon: horizon})
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}
	envelope, err := s.api.GetForecast(ctx, storeID, horizon, skuID)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.lastRun = &run
		s.chart = assembler.BuildChart(envelope.Forecasts, horizon)
		s.insights = envelope.Insights
		s.generatedAt = envelope.GeneratedAt
	})
	return nil
}

// Snapshot returns a copy of the current view model.
func (s *ForecastScreen) Snapshot() ForecastSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ForecastSnapshot{
		Phase:         s.phase,
		Error:         s.errMsg,
		Horizon:       s.horizon,
		Stores:        append([]backend.Store(nil), s.stores...),
		SelectedStore: s.selectedStore,
		SKUs:          append([]backend.SKU(nil), s.skus...),
		SelectedSKU:   s.selectedSKU,
		Chart:         s.chart,
		Insights:      append([]string(nil), s.insights...),
		GeneratedAt:   s.generatedAt,
		LastRun:       s.lastRun,
	}
}

func (s *ForecastScreen) fetchStoreData(ctx context.Context, storeID string, horizon int, skuID string) ([]backend.SKU, backend.ForecastEnvelope, error) {
	skus, err := s.api.ListSKUs(ctx, storeID)
	if err != nil {
		return nil, backend.ForecastEnvelope{}, err
	}
	envelope, err := s.api.GetForecast(ctx, storeID, horizon, skuID)
	if err != nil {
		return nil, backend.ForecastEnvelope{}, err
	}
	return skus, envelope, nil
}

// applyEnvelope must run under the state lock (inside finish).
func (s *ForecastScreen) applyEnvelope(skus []backend.SKU, envelope backend.ForecastEnvelope, horizon int) {
	s.skus = skus
	s.chart = assembler.BuildChart(envelope.Forecasts, horizon)
	s.insights = envelope.Insights
	s.generatedAt = envelope.GeneratedAt
}
