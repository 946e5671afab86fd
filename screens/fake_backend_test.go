package screens

import (
	"context"
	"io"
	"sync"

	"app/backend"
)

// fakeBackend records every call in order and delegates to optional function
// fields, defaulting to empty successful responses.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	healthFn       func(ctx context.Context) (backend.HealthStatus, error)
	initDBFn       func(ctx context.Context) error
	uploadFn       func(ctx context.Context, filename string, file io.Reader) (backend.UploadResult, error)
	listStoresFn   func(ctx context.Context) ([]backend.Store, error)
	getStoreFn     func(ctx context.Context, storeID string) (backend.Store, error)
	listSKUsFn     func(ctx context.Context, storeID string) ([]backend.SKU, error)
	runForecastFn  func(ctx context.Context, req backend.ForecastRequest) (backend.RunForecastResult, error)
	getForecastFn  func(ctx context.Context, storeID string, horizon int, skuID string) (backend.ForecastEnvelope, error)
	reorderListFn  func(ctx context.Context, storeID string, horizon int, regenerate bool) (backend.ReorderList, error)
	summaryFn      func(ctx context.Context, storeID string) (backend.ReorderSummary, error)
	festivalsFn    func(ctx context.Context) ([]backend.Festival, error)
	seedFn         func(ctx context.Context, year int) (backend.SeedResult, error)
	addFestivalFn  func(ctx context.Context, festival backend.FestivalCreate) (backend.Festival, error)
	impactFn       func(ctx context.Context, date string) (backend.ImpactResult, error)
	updateStockFn  func(ctx context.Context, storeID string, updates []backend.StockUpdate) (backend.StockUpdateResult, error)
	mandiPricesFn  func(ctx context.Context, commodity, state string) ([]backend.MandiPriceRecord, error)
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) callCount(name string) int {
	n := 0
	for _, c := range f.callList() {
		if c == name {
			n++
		}
	}
	return n
}

// callIndex returns the position of the first occurrence, or -1.
func (f *fakeBackend) callIndex(name string) int {
	for i, c := range f.callList() {
		if c == name {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) Health(ctx context.Context) (backend.HealthStatus, error) {
	f.record("Health")
	if f.healthFn != nil {
		return f.healthFn(ctx)
	}
	return backend.HealthStatus{Status: "healthy"}, nil
}

func (f *fakeBackend) InitDB(ctx context.Context) error {
	f.record("InitDB")
	if f.initDBFn != nil {
		return f.initDBFn(ctx)
	}
	return nil
}

func (f *fakeBackend) UploadSales(ctx context.Context, filename string, file io.Reader) (backend.UploadResult, error) {
	f.record("UploadSales")
	if f.uploadFn != nil {
		return f.uploadFn(ctx, filename, file)
	}
	return backend.UploadResult{Success: true}, nil
}

func (f *fakeBackend) ListStores(ctx context.Context) ([]backend.Store, error) {
	f.record("ListStores")
	if f.listStoresFn != nil {
		return f.listStoresFn(ctx)
	}
	return nil, nil
}

func (f *fakeBackend) GetStore(ctx context.Context, storeID string) (backend.Store, error) {
	f.record("GetStore")
	if f.getStoreFn != nil {
		return f.getStoreFn(ctx, storeID)
	}
	return backend.Store{StoreID: storeID}, nil
}

func (f *fakeBackend) ListSKUs(ctx context.Context, storeID string) ([]backend.SKU, error) {
	f.record("ListSKUs:" + storeID)
	if f.listSKUsFn != nil {
		return f.listSKUsFn(ctx, storeID)
	}
	return nil, nil
}

func (f *fakeBackend) RunForecast(ctx context.Context, req backend.ForecastRequest) (backend.RunForecastResult, error) {
	f.record("RunForecast")
	if f.runForecastFn != nil {
		return f.runForecastFn(ctx, req)
	}
	return backend.RunForecastResult{Success: true}, nil
}

func (f *fakeBackend) GetForecast(ctx context.Context, storeID string, horizon int, skuID string) (backend.ForecastEnvelope, error) {
	f.record("GetForecast:" + storeID)
	if f.getForecastFn != nil {
		return f.getForecastFn(ctx, storeID, horizon, skuID)
	}
	return backend.ForecastEnvelope{StoreID: storeID, Horizon: horizon}, nil
}

func (f *fakeBackend) GetReorderList(ctx context.Context, storeID string, horizon int, regenerate bool) (backend.ReorderList, error) {
	f.record("GetReorderList:" + storeID)
	if f.reorderListFn != nil {
		return f.reorderListFn(ctx, storeID, horizon, regenerate)
	}
	return backend.ReorderList{StoreID: storeID}, nil
}

func (f *fakeBackend) GetReorderSummary(ctx context.Context, storeID string) (backend.ReorderSummary, error) {
	f.record("GetReorderSummary")
	if f.summaryFn != nil {
		return f.summaryFn(ctx, storeID)
	}
	return backend.ReorderSummary{}, nil
}

func (f *fakeBackend) ListFestivals(ctx context.Context) ([]backend.Festival, error) {
	f.record("ListFestivals")
	if f.festivalsFn != nil {
		return f.festivalsFn(ctx)
	}
	return nil, nil
}

func (f *fakeBackend) SeedFestivals(ctx context.Context, year int) (backend.SeedResult, error) {
	f.record("SeedFestivals")
	if f.seedFn != nil {
		return f.seedFn(ctx, year)
	}
	return backend.SeedResult{Success: true, Year: year}, nil
}

func (f *fakeBackend) AddFestival(ctx context.Context, festival backend.FestivalCreate) (backend.Festival, error) {
	f.record("AddFestival")
	if f.addFestivalFn != nil {
		return f.addFestivalFn(ctx, festival)
	}
	return backend.Festival{Name: festival.Name}, nil
}

func (f *fakeBackend) FestivalImpact(ctx context.Context, date string) (backend.ImpactResult, error) {
	f.record("FestivalImpact")
	if f.impactFn != nil {
		return f.impactFn(ctx, date)
	}
	return backend.ImpactResult{Date: date, ImpactMultiplier: 1.0}, nil
}

func (f *fakeBackend) UpdateStock(ctx context.Context, storeID string, updates []backend.StockUpdate) (backend.StockUpdateResult, error) {
	f.record("UpdateStock")
	if f.updateStockFn != nil {
		return f.updateStockFn(ctx, storeID, updates)
	}
	return backend.StockUpdateResult{Updated: len(updates), Total: len(updates)}, nil
}

func (f *fakeBackend) MandiPrices(ctx context.Context, commodity, state string) ([]backend.MandiPriceRecord, error) {
	f.record("MandiPrices")
	if f.mandiPricesFn != nil {
		return f.mandiPricesFn(ctx, commodity, state)
	}
	return nil, nil
}

func twoStores() []backend.Store {
	return []backend.Store{
		{ID: 1, StoreID: "S1", Name: "Sharma General"},
		{ID: 2, StoreID: "S2", Name: "Gupta Kirana"},
	}
}
