package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"app/backend"
	"app/logger"
)

// DashboardScreen shows the store list, the reorder summary for the selected
// store, and current mandi reference prices.
type DashboardScreen struct {
	state
	api Backend
	log *logger.Logger

	stores   []backend.Store
	selected string
	detail   backend.Store
	summary  backend.ReorderSummary
	prices   []backend.MandiPriceRecord
	stats    PriceStats
}

// PriceStats are derived modal-price aggregates over the mandi records.
type PriceStats struct {
	Count int             `json:"count"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Avg   decimal.Decimal `json:"avg"`
}

// DashboardSnapshot is the dashboard view model.
type DashboardSnapshot struct {
	Phase         Phase                      `json:"phase"`
	Error         string                     `json:"error,omitempty"`
	Stores        []backend.Store            `json:"stores"`
	SelectedStore string                     `json:"selected_store"`
	StoreDetail   backend.Store              `json:"store_detail"`
	Summary       backend.ReorderSummary     `json:"summary"`
	MandiPrices   []backend.MandiPriceRecord `json:"mandi_prices"`
	PriceStats    PriceStats                 `json:"price_stats"`
}

func NewDashboardScreen(api Backend, log *logger.Logger) *DashboardScreen {
	return &DashboardScreen{
		state: state{phase: PhaseIdle},
		api:   api,
		log:   log.With("screen", "dashboard"),
	}
}

// EnsureLoaded triggers the initial fetch on first screen entry.
func (s *DashboardScreen) EnsureLoaded(ctx context.Context) {
	if s.isIdle() {
		s.Refresh(ctx)
	}
}

// Refresh re-fetches everything the dashboard shows. Store list and mandi
// prices are independent and fetched concurrently; the reorder summary
// depends on a resolved store selection and is only fetched afterwards.
func (s *DashboardScreen) Refresh(ctx context.Context) {
	s.mu.Lock()
	selected := s.selected
	s.mu.Unlock()

	gen := s.begin()

	var (
		wg        sync.WaitGroup
		stores    []backend.Store
		storesErr error
		prices    []backend.MandiPriceRecord
		pricesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stores, storesErr = s.api.ListStores(ctx)
	}()
	go func() {
		defer wg.Done()
		prices, pricesErr = s.api.MandiPrices(ctx, "", "")
	}()
	wg.Wait()

	if storesErr != nil {
		s.finish(gen, storesErr, nil)
		return
	}
	if pricesErr != nil {
		s.finish(gen, pricesErr, nil)
		return
	}

	if len(stores) == 0 {
		s.finish(gen, nil, func() {
			s.stores = stores
			s.selected = ""
			s.detail = backend.Store{}
			s.summary = backend.ReorderSummary{}
			s.prices = prices
			s.stats = priceStatsOf(prices)
		})
		return
	}

	if selected == "" || !containsStore(stores, selected) {
		selected = stores[0].StoreID
	}

	detail, err := s.api.GetStore(ctx, selected)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}
	summary, err := s.api.GetReorderSummary(ctx, selected)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}

	s.finish(gen, nil, func() {
		s.stores = stores
		s.selected = selected
		s.detail = detail
		s.summary = summary
		s.prices = prices
		s.stats = priceStatsOf(prices)
	})
}

// SelectStore switches the dashboard to another store and re-fetches the
// dependent detail and summary. The store list and prices are kept as-is.
func (s *DashboardScreen) SelectStore(ctx context.Context, storeID string) error {
	s.mu.Lock()
	known := containsStore(s.stores, storeID)
	s.mu.Unlock()
	if storeID == "" {
		return fmt.Errorf("store_id is required")
	}
	if !known {
		return fmt.Errorf("unknown store %q", storeID)
	}

	gen := s.begin()

	detail, err := s.api.GetStore(ctx, storeID)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}
	summary, err := s.api.GetReorderSummary(ctx, storeID)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.selected = storeID
		s.detail = detail
		s.summary = summary
	})
	return nil
}

// Snapshot returns a copy of the current view model.
func (s *DashboardScreen) Snapshot() DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DashboardSnapshot{
		Phase:         s.phase,
		Error:         s.errMsg,
		Stores:        append([]backend.Store(nil), s.stores...),
		SelectedStore: s.selected,
		StoreDetail:   s.detail,
		Summary:       s.summary,
		MandiPrices:   append([]backend.MandiPriceRecord(nil), s.prices...),
		PriceStats:    s.stats,
	}
}

func containsStore(stores []backend.Store, storeID string) bool {
	for _, st := range stores {
		if st.StoreID == storeID {
			return true
		}
	}
	return false
}

func priceStatsOf(records []backend.MandiPriceRecord) PriceStats {
	stats := PriceStats{Count: len(records)}
	if len(records) == 0 {
		return stats
	}
	sum := decimal.Zero
	stats.Min = records[0].ModalPrice
	stats.Max = records[0].ModalPrice
	for _, r := range records {
		sum = sum.Add(r.ModalPrice)
		if r.ModalPrice.LessThan(stats.Min) {
			stats.Min = r.ModalPrice
		}
		if r.ModalPrice.GreaterThan(stats.Max) {
			stats.Max = r.ModalPrice
		}
	}
	stats.Avg = sum.DivRound(decimal.NewFromInt(int64(len(records))), 2)
	return stats
}
