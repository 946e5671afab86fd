package screens

import (
	"context"
	"fmt"

	"app/backend"
	"app/logger"
	"app/utils"
)

// SettingsScreen manages the festival calendar, stock corrections and shows
// backend health.
type SettingsScreen struct {
	state
	api Backend
	log *logger.Logger

	festivals  []FestivalView
	health     *backend.HealthStatus
	healthErr  string
	lastSeed   *backend.SeedResult
	lastImpact *backend.ImpactResult
	lastStock  *backend.StockUpdateResult
}

// FestivalView is a festival with the region defaulted for display.
type FestivalView struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Date             string  `json:"date"`
	Region           string  `json:"region"`
	ImpactMultiplier float64 `json:"impact_multiplier"`
}

// SettingsSnapshot is the settings view model.
type SettingsSnapshot struct {
	Phase      Phase                      `json:"phase"`
	Error      string                     `json:"error,omitempty"`
	Festivals  []FestivalView             `json:"festivals"`
	Health     *backend.HealthStatus      `json:"health,omitempty"`
	HealthErr  string                     `json:"health_error,omitempty"`
	LastSeed   *backend.SeedResult        `json:"last_seed,omitempty"`
	LastImpact *backend.ImpactResult      `json:"last_impact,omitempty"`
	LastStock  *backend.StockUpdateResult `json:"last_stock_update,omitempty"`
}

type seedParam struct {
	Year int `validate:"required,min=2020,max=2030"`
}

type festivalParam struct {
	Name             string  `validate:"required"`
	ImpactMultiplier float64 `validate:"required,gte=1"`
}

type stockParam struct {
	StoreID string                `validate:"required"`
	Updates []backend.StockUpdate `validate:"required,min=1,dive"`
}

func NewSettingsScreen(api Backend, log *logger.Logger) *SettingsScreen {
	return &SettingsScreen{
		state: state{phase: PhaseIdle},
		api:   api,
		log:   log.With("screen", "settings"),
	}
}

// EnsureLoaded triggers the initial fetch on first screen entry.
func (s *SettingsScreen) EnsureLoaded(ctx context.Context) {
	if s.isIdle() {
		s.Refresh(ctx)
	}
}

// Refresh fetches the festival calendar and probes backend health. A failed
// health probe is shown inline rather than failing the whole screen; that is
// exactly what this screen exists to surface.
func (s *SettingsScreen) Refresh(ctx context.Context) {
	gen := s.begin()

	festivals, err := s.api.ListFestivals(ctx)
	if err != nil {
		s.finish(gen, err, nil)
		return
	}

	health, healthErr := s.api.Health(ctx)

	s.finish(gen, nil, func() {
		s.festivals = festivalViews(festivals)
		if healthErr != nil {
			s.health = nil
			s.healthErr = healthErr.Error()
		} else {
			s.health = &health
			s.healthErr = ""
		}
	})
}

// SeedFestivals bulk-adds the default calendar for a year and reloads the
// festival list.
func (s *SettingsScreen) SeedFestivals(ctx context.Context, year int) error {
	if err := validate.Struct(seedParam{Year: year}); err != nil {
		return fmt.Errorf("year must be between 2020 and 2030")
	}

	gen := s.begin()

	seeded, err := s.api.SeedFestivals(ctx, year)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}
	festivals, err := s.api.ListFestivals(ctx)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.log.Info("festivals seeded", "year", year, "added", seeded.FestivalsAdded)

	s.finish(gen, nil, func() {
		s.lastSeed = &seeded
		s.festivals = festivalViews(festivals)
	})
	return nil
}

// AddFestival registers a custom festival and reloads the list.
func (s *SettingsScreen) AddFestival(ctx context.Context, festival backend.FestivalCreate) error {
	if err := validate.Struct(festivalParam{Name: festival.Name, ImpactMultiplier: festival.ImpactMultiplier}); err != nil {
		return fmt.Errorf("festival needs a name and an impact multiplier of at least 1.0")
	}
	if !utils.ValidISODate(festival.Date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}

	gen := s.begin()

	if _, err := s.api.AddFestival(ctx, festival); err != nil {
		s.finish(gen, err, nil)
		return nil
	}
	festivals, err := s.api.ListFestivals(ctx)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.festivals = festivalViews(festivals)
	})
	return nil
}

// CheckImpact looks up the demand multiplier for a date.
func (s *SettingsScreen) CheckImpact(ctx context.Context, date string) error {
	if !utils.ValidISODate(date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}

	gen := s.begin()

	impact, err := s.api.FestivalImpact(ctx, date)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.finish(gen, nil, func() {
		s.lastImpact = &impact
	})
	return nil
}

// UpdateStock sends current stock corrections for a store.
func (s *SettingsScreen) UpdateStock(ctx context.Context, storeID string, updates []backend.StockUpdate) error {
	if err := validate.Struct(stockParam{StoreID: storeID, Updates: updates}); err != nil {
		return fmt.Errorf("stock updates need a store and non-negative quantities")
	}

	gen := s.begin()

	result, err := s.api.UpdateStock(ctx, storeID, updates)
	if err != nil {
		s.finish(gen, err, nil)
		return nil
	}

	s.log.Info("stock updated", "store", storeID, "updated", result.Updated, "total", result.Total)

	s.finish(gen, nil, func() {
		s.lastStock = &result
	})
	return nil
}

// Snapshot returns a copy of the current view model.
func (s *SettingsScreen) Snapshot() SettingsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SettingsSnapshot{
		Phase:      s.phase,
		Error:      s.errMsg,
		Festivals:  append([]FestivalView(nil), s.festivals...),
		Health:     s.health,
		HealthErr:  s.healthErr,
		LastSeed:   s.lastSeed,
		LastImpact: s.lastImpact,
		LastStock:  s.lastStock,
	}
}

func festivalViews(festivals []backend.Festival) []FestivalView {
	views := make([]FestivalView, 0, len(festivals))
	for _, f := range festivals {
		region := "All India"
		if f.Region != nil && *f.Region != "" {
			region = *f.Region
		}
		views = append(views, FestivalView{
			ID:               f.ID,
			Name:             f.Name,
			Date:             f.Date,
			Region:           region,
			ImpactMultiplier: f.ImpactMultiplier,
		})
	}
	return views
}
