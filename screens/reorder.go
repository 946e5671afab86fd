package screens

import (
	"context"
	"fmt"

	"app/assembler"
	"app/backend"
	"app/logger"
)

// ReorderScreen shows the prioritized reorder list for the selected store.
// The backend owns the ordering; this screen only counts urgency buckets.
type ReorderScreen struct {
	state
	api Backend
	log *logger.Logger

	horizon       int
	regenerate    bool
	stores        []backend.Store
	selectedStore string
	storeName     string
	generatedAt   string
	board         *assembler.Board
}

// ReorderSnapshot is the reorder view model.
type ReorderSnapshot struct {
	Phase         Phase            `json:"phase"`
	Error         string           `json:"error,omitempty"`
	Horizon       int              `json:"horizon"`
	Regenerate    bool             `json:"regenerate"`
	Stores        []backend.Store  `json:"stores"`
	SelectedStore string           `json:"selected_store"`
	StoreName     string           `json:"store_name"`
	GeneratedAt   string           `json:"generated_at"`
	Board         *assembler.Board `json:"board"`
}

func NewReorderScreen(api Backend, log *logger.Logger, defaultHorizon int) *ReorderScreen {
	return &ReorderScreen{
		state:      state{phase: PhaseIdle},
		api:        api,
		log:        log.With("screen", "reorder"),
		horizon:    defaultHorizon,
		regenerate: true,
	}
}

// EnsureLoaded triggers the initial fetch on first screen entry.
func (s *ReorderScreen) EnsureLoaded(ctx context.Context) {
	if s.isIdle() {
		s.Refresh(ctx)
	}
}

// Refresh fetches the store list and then the reorder list for the selected
// store. The list fetch waits for the store list to resolve.
func (s *ReorderScreen) Refresh(ctx context.Context) {
	s.mu.Lock()
	selectedStore := s.selectedStore
	horizon := s.horizon
	regenerate := s.regenerate
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
			s.storeName = ""
			s.generatedAt = ""
			s.board = assembler.BuildBoard(nil)
		})
		return
	}

	if selectedStore == "" || !containsStore(stores, selectedStore) {
		selectedStore = stores[0].StoreID
	}

	list, err := s.api.GetReorderList(ctx, selectedStore, horizon, regenerate)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}

	s.finish(gen, nil, func() {
		s.stores = stores
		s.selectedStore = selectedStore
		s.applyList(list)
	})
}

// SelectStore switches the reorder list to another store.
func (s *ReorderScreen) SelectStore(ctx context.Context, storeID string) error {
	s.mu.Lock()
	known := containsStore(s.stores, storeID)
	horizon := s.horizon
	regenerate := s.regenerate
	s.mu.Unlock()
	if storeID == "" {
		return fmt.Errorf("store_id is required")
	}
	if !known {
		return fmt.Errorf("unknown store %q", storeID)
	}

	gen := s.begin()

	list, err := s.api.GetReorderList(ctx, storeID, horizon, regenerate)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.selectedStore = storeID
		s.applyList(list)
	})
	return nil
}

// SetHorizon changes the reorder window and re-fetches the list.
func (s *ReorderScreen) SetHorizon(ctx context.Context, horizon int) error {
	if err := validate.Struct(horizonParam{Horizon: horizon}); err != nil {
		return fmt.Errorf("horizon must be between 1 and 30 days")
	}

	s.mu.Lock()
	s.horizon = horizon
	storeID := s.selectedStore
	regenerate := s.regenerate
	s.mu.Unlock()
	if storeID == "" {
		return nil
	}

	gen := s.begin()

	list, err := s.api.GetReorderList(ctx, storeID, horizon, regenerate)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() { s.applyList(list) })
	return nil
}

// SetRegenerate controls whether the next fetches recompute recommendations
// or read the last saved set.
func (s *ReorderScreen) SetRegenerate(regenerate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regenerate = regenerate
}

// Snapshot returns a copy of the current view model.
func (s *ReorderScreen) Snapshot() ReorderSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ReorderSnapshot{
		Phase:         s.phase,
		Error:         s.errMsg,
		Horizon:       s.horizon,
		Regenerate:    s.regenerate,
		Stores:        append([]backend.Store(nil), s.stores...),
		SelectedStore: s.selectedStore,
		StoreName:     s.storeName,
		GeneratedAt:   s.generatedAt,
		Board:         s.board,
	}
}

// applyList must run under the state lock (inside finish).
func (s *ReorderScreen) applyList(list backend.ReorderList) {
	s.storeName = list.StoreName
	s.generatedAt = list.GeneratedAt
	s.board = assembler.BuildBoard(list.Items)
}
