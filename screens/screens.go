package screens

import (
	"context"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"

	"app/backend"
)

// Backend is the slice of the transport client the screens consume. Screens
// never share state with each other; this client is the only component they
// have in common and it is stateless.
type Backend interface {
	Health(ctx context.Context) (backend.HealthStatus, error)
	InitDB(ctx context.Context) error
	UploadSales(ctx context.Context, filename string, file io.Reader) (backend.UploadResult, error)
	ListStores(ctx context.Context) ([]backend.Store, error)
	GetStore(ctx context.Context, storeID string) (backend.Store, error)
	ListSKUs(ctx context.Context, storeID string) ([]backend.SKU, error)
	RunForecast(ctx context.Context, req backend.ForecastRequest) (backend.RunForecastResult, error)
	GetForecast(ctx context.Context, storeID string, horizon int, skuID string) (backend.ForecastEnvelope, error)
	GetReorderList(ctx context.Context, storeID string, horizon int, regenerate bool) (backend.ReorderList, error)
	GetReorderSummary(ctx context.Context, storeID string) (backend.ReorderSummary, error)
	ListFestivals(ctx context.Context) ([]backend.Festival, error)
	SeedFestivals(ctx context.Context, year int) (backend.SeedResult, error)
	AddFestival(ctx context.Context, festival backend.FestivalCreate) (backend.Festival, error)
	FestivalImpact(ctx context.Context, date string) (backend.ImpactResult, error)
	UpdateStock(ctx context.Context, storeID string, updates []backend.StockUpdate) (backend.StockUpdateResult, error)
	MandiPrices(ctx context.Context, commodity, state string) ([]backend.MandiPriceRecord, error)
}

// Phase is a screen's lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

var validate = validator.New()

// state is the shared per-screen state machine. Every fetch cycle gets a
// generation number; completions carrying a stale generation are discarded,
// so a response that raced a newer selection can never overwrite its result.
type state struct {
	mu     sync.Mutex
	phase  Phase
	errMsg string
	gen    uint64
}

// begin starts a new fetch cycle and invalidates all in-flight ones.
func (s *state) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.phase = PhaseLoading
	s.errMsg = ""
	return s.gen
}

// finish completes the cycle identified by gen. apply runs under the state
// lock and only when the cycle is still current; the return value reports
// whether the completion was acted upon.
func (s *state) finish(gen uint64, err error, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	if err != nil {
		s.phase = PhaseFailed
		s.errMsg = err.Error()
		return true
	}
	if apply != nil {
		apply()
	}
	s.phase = PhaseReady
	return true
}

func (s *state) isIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseIdle
}
