package backend

import "github.com/shopspring/decimal"

// Wire types for the forecasting backend. Field names follow the backend's
// snake_case JSON contract; dates travel as ISO strings and are passed
// through untouched because the UI only ever displays them.

// Store is a store registered by a sales upload.
type Store struct {
	ID        int     `json:"id"`
	StoreID   string  `json:"store_id"`
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	CreatedAt string  `json:"created_at"`
}

// SKU is a single stock-keeping unit within a store.
type SKU struct {
	ID           int     `json:"id"`
	SKUID        string  `json:"sku_id"`
	SKUName      string  `json:"sku_name"`
	Category     *string `json:"category"`
	CurrentStock int     `json:"current_stock"`
}

// ForecastPoint is one predicted day for one SKU.
type ForecastPoint struct {
	SKUID           string   `json:"sku_id"`
	SKUName         string   `json:"sku_name"`
	ForecastDate    string   `json:"forecast_date"`
	PredictedUnits  float64  `json:"predicted_units"`
	ConfidenceLower *float64 `json:"confidence_lower"`
	ConfidenceUpper *float64 `json:"confidence_upper"`
	ModelUsed       string   `json:"model_used"`
}

// ForecastEnvelope is the full GET /get-forecast response.
type ForecastEnvelope struct {
	StoreID        string          `json:"store_id"`
	Horizon        int             `json:"horizon"`
	GeneratedAt    string          `json:"generated_at"`
	TotalPredicted float64         `json:"total_predicted"`
	Forecasts      []ForecastPoint `json:"forecasts"`
	Insights       []string        `json:"insights"`
}

// ForecastRequest is the POST /run-forecast body.
type ForecastRequest struct {
	StoreID string   `json:"store_id"`
	SKUIDs  []string `json:"sku_ids,omitempty"`
	Horizon int      `json:"horizon"`
}

// RunForecastResult is the POST /run-forecast response.
type RunForecastResult struct {
	Success              bool   `json:"success"`
	StoreID              string `json:"store_id"`
	Horizon              int    `json:"horizon"`
	SKUsForecasted       int    `json:"skus_forecasted"`
	ForecastsSaved       int    `json:"forecasts_saved"`
	ReorderRecsGenerated int    `json:"reorder_recs_generated"`
}

// ReorderItem is a single reorder recommendation.
type ReorderItem struct {
	SKUID             string   `json:"sku_id"`
	SKUName           string   `json:"sku_name"`
	ReorderQty        int      `json:"reorder_qty"`
	Reason            string   `json:"reason"`
	Urgency           string   `json:"urgency"`
	ForecastedDemand  float64  `json:"forecasted_demand"`
	CurrentStock      int      `json:"current_stock"`
	VelocityChangePct *float64 `json:"velocity_change_pct"`
}

// ReorderList is the GET /get-reorder-list response.
type ReorderList struct {
	StoreID       string        `json:"store_id"`
	StoreName     string        `json:"store_name"`
	GeneratedAt   string        `json:"generated_at"`
	TotalItems    int           `json:"total_items"`
	CriticalItems int           `json:"critical_items"`
	Items         []ReorderItem `json:"items"`
}

// ReorderSummary is the GET /reorder-summary response.
type ReorderSummary struct {
	TotalItems     int      `json:"total_items"`
	Critical       int      `json:"critical"`
	High           int      `json:"high"`
	Medium         int      `json:"medium"`
	Low            int      `json:"low"`
	EstimatedValue *float64 `json:"estimated_value"`
}

// UploadResult is the POST /upload-sales response.
type UploadResult struct {
	Success       bool     `json:"success"`
	RowsProcessed int      `json:"rows_processed"`
	RowsFailed    int      `json:"rows_failed"`
	Errors        []string `json:"errors"`
	StoreID       *string  `json:"store_id"`
}

// Festival is one configured festival calendar entry.
type Festival struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Date             string  `json:"date"`
	Region           *string `json:"region"`
	ImpactMultiplier float64 `json:"impact_multiplier"`
}

// FestivalCreate is the POST /festivals body.
type FestivalCreate struct {
	Name             string  `json:"name"`
	Date             string  `json:"date"`
	Region           *string `json:"region,omitempty"`
	ImpactMultiplier float64 `json:"impact_multiplier"`
}

// SeedResult is the POST /festivals/seed response.
type SeedResult struct {
	Success        bool `json:"success"`
	FestivalsAdded int  `json:"festivals_added"`
	Year           int  `json:"year"`
}

// ImpactResult is the GET /festivals/impact response.
type ImpactResult struct {
	Date             string  `json:"date"`
	ImpactMultiplier float64 `json:"impact_multiplier"`
	IsFestivalPeriod bool    `json:"is_festival_period"`
}

// StockUpdate is one element of the POST /stores/{id}/update-stock body.
type StockUpdate struct {
	SKUID        string `json:"sku_id"`
	CurrentStock int    `json:"current_stock" validate:"min=0"`
}

// StockUpdateResult is the POST /stores/{id}/update-stock response.
type StockUpdateResult struct {
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// HealthStatus is the GET /health response.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// MandiPriceRecord is one wholesale market price record from OGD India.
// The upstream API serializes prices as strings ("4100"), which decimal
// unmarshals without losing precision.
type MandiPriceRecord struct {
	Commodity  string          `json:"commodity"`
	Market     string          `json:"market"`
	State      string          `json:"state"`
	ModalPrice decimal.Decimal `json:"modal_price"`
	MaxPrice   decimal.Decimal `json:"max_price"`
	Date       string          `json:"date"`
}

type mandiPricesResponse struct {
	Success bool               `json:"success"`
	Source  string             `json:"source"`
	Records []MandiPriceRecord `json:"records"`
}

type initDBResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
