package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"app/logger"
)

// Client talks to the forecasting backend. It is stateless apart from its
// configuration, so a single instance is shared by every screen.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New builds a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
		return &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnreachableError{BaseURL: c.baseURL, Err: err}
	}

	c.log.Debug("backend call", "method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID, "took", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, params url.Values, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, params, body, contentType, out)
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	err := c.getJSON(ctx, "/health", nil, &status)
	return status, err
}

// InitDB asks the backend to create its tables. Idempotent on the backend
// side, so calling it before every upload is safe.
func (c *Client) InitDB(ctx context.Context) error {
	var resp initDBResponse
	return c.postJSON(ctx, "/init-db", nil, nil, &resp)
}

// UploadSales sends a CSV of sales history as a multipart body.
func (c *Client) UploadSales(ctx context.Context, filename string, file io.Reader) (UploadResult, error) {
	var result UploadResult

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return result, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return result, fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("build multipart body: %w", err)
	}

	err = c.do(ctx, http.MethodPost, "/upload-sales", nil, &buf, writer.FormDataContentType(), &result)
	return result, err
}

// ListStores returns every store known to the backend.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	err := c.getJSON(ctx, "/stores", nil, &stores)
	return stores, err
}

// GetStore returns one store by its external id.
func (c *Client) GetStore(ctx context.Context, storeID string) (Store, error) {
	var store Store
	err := c.getJSON(ctx, "/stores/"+url.PathEscape(storeID), nil, &store)
	return store, err
}

// ListSKUs returns the SKUs of a store.
func (c *Client) ListSKUs(ctx context.Context, storeID string) ([]SKU, error) {
	var skus []SKU
	err := c.getJSON(ctx, "/stores/"+url.PathEscape(storeID)+"/skus", nil, &skus)
	return skus, err
}

// RunForecast triggers a forecast (and reorder) recomputation for a store.
func (c *Client) RunForecast(ctx context.Context, req ForecastRequest) (RunForecastResult, error) {
	var result RunForecastResult
	err := c.postJSON(ctx, "/run-forecast", nil, req, &result)
	return result, err
}

// GetForecast fetches the stored forecast for a store. skuID narrows the
// result to one SKU when non-empty.
func (c *Client) GetForecast(ctx context.Context, storeID string, horizon int, skuID string) (ForecastEnvelope, error) {
	params := url.Values{}
	params.Set("store_id", storeID)
	params.Set("horizon", strconv.Itoa(horizon))
	if skuID != "" {
		params.Set("sku_id", skuID)
	}
	var envelope ForecastEnvelope
	err := c.getJSON(ctx, "/get-forecast", params, &envelope)
	return envelope, err
}

// GetReorderList fetches reorder recommendations for a store.
func (c *Client) GetReorderList(ctx context.Context, storeID string, horizon int, regenerate bool) (ReorderList, error) {
	params := url.Values{}
	params.Set("store_id", storeID)
	params.Set("horizon", strconv.Itoa(horizon))
	params.Set("regenerate", strconv.FormatBool(regenerate))
	var list ReorderList
	err := c.getJSON(ctx, "/get-reorder-list", params, &list)
	return list, err
}

// GetReorderSummary fetches the per-urgency counts for a store.
func (c *Client) GetReorderSummary(ctx context.Context, storeID string) (ReorderSummary, error) {
	params := url.Values{}
	params.Set("store_id", storeID)
	var summary ReorderSummary
	err := c.getJSON(ctx, "/reorder-summary", params, &summary)
	return summary, err
}

// ListFestivals returns the configured festival calendar.
func (c *Client) ListFestivals(ctx context.Context) ([]Festival, error) {
	var festivals []Festival
	err := c.getJSON(ctx, "/festivals", nil, &festivals)
	return festivals, err
}

// SeedFestivals bulk-adds the default festival calendar for a year.
func (c *Client) SeedFestivals(ctx context.Context, year int) (SeedResult, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))
	var result SeedResult
	err := c.postJSON(ctx, "/festivals/seed", params, nil, &result)
	return result, err
}

// AddFestival registers a custom festival.
func (c *Client) AddFestival(ctx context.Context, festival FestivalCreate) (Festival, error) {
	var created Festival
	err := c.postJSON(ctx, "/festivals", nil, festival, &created)
	return created, err
}

// FestivalImpact returns the demand multiplier for a date (YYYY-MM-DD).
func (c *Client) FestivalImpact(ctx context.Context, date string) (ImpactResult, error) {
	params := url.Values{}
	params.Set("date", date)
	var impact ImpactResult
	err := c.getJSON(ctx, "/festivals/impact", params, &impact)
	return impact, err
}

// UpdateStock overrides current stock levels for a store's SKUs.
func (c *Client) UpdateStock(ctx context.Context, storeID string, updates []StockUpdate) (StockUpdateResult, error) {
	var result StockUpdateResult
	err := c.postJSON(ctx, "/stores/"+url.PathEscape(storeID)+"/update-stock", nil, updates, &result)
	return result, err
}

// MandiPrices fetches wholesale market reference prices, optionally filtered
// by commodity and state.
func (c *Client) MandiPrices(ctx context.Context, commodity, state string) ([]MandiPriceRecord, error) {
	params := url.Values{}
	if commodity != "" {
		params.Set("commodity", commodity)
	}
	if state != "" {
		params.Set("state", state)
	}
	var resp mandiPricesResponse
	if err := c.getJSON(ctx, "/mandi-prices", params, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}
