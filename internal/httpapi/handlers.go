package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/seeder"
	"github.com/storeseed/storeseed-mcp/internal/shopify"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Seeder is the pipeline surface the handlers drive. *seeder.Service
// implements it; tests substitute a fake.
type Seeder interface {
	SeedOrders(ctx context.Context, api seeder.StoreAPI, req seeder.OrderSeedRequest) (*seeder.OrderOutcome, error)
	SeedInventory(ctx context.Context, api seeder.StoreAPI, req seeder.InventorySeedRequest) (*seeder.InventoryOutcome, error)
	Preview(ctx context.Context, api seeder.StoreAPI, req seeder.PreviewRequest) (*seeder.PreviewResult, error)
	ClearOrders(ctx context.Context, api seeder.StoreAPI, shop string) (*seeder.ClearResult, error)
	ResetInventory(ctx context.Context, api seeder.StoreAPI, req seeder.ResetInventoryRequest) (*seeder.ResetResult, error)
}

var _ Seeder = (*seeder.Service)(nil)

// Handlers serves the JSON API routes. Every request carries its own shop
// credentials; no session outlives a request.
type Handlers struct {
	seeder Seeder
	store  storage.Store // audit log, may be nil
	logger *zap.Logger
}

// NewHandlers creates the route handlers.
func NewHandlers(svc Seeder, store storage.Store, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{seeder: svc, store: store, logger: logger}
}

// generateRequest is the JSON body shared by the mutating routes.
type generateRequest struct {
	ShopURL       string `json:"shop_url"`
	AccessToken   string `json:"access_token"`
	NumItems      int    `json:"num_items"`
	DateRangeDays int    `json:"date_range_days"`
	MinAdjustment *int   `json:"min_adjustment,omitempty"`
	MaxAdjustment *int   `json:"max_adjustment,omitempty"`
	Baseline      *int   `json:"baseline,omitempty"`
}

// decodeRequest parses the body and applies route-independent defaults.
func decodeRequest(r *http.Request) (*generateRequest, error) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if req.NumItems == 0 {
		req.NumItems = 10
	}
	if req.DateRangeDays == 0 {
		req.DateRangeDays = 30
	}
	return &req, nil
}

// client builds the per-request GraphQL client.
func (h *Handlers) client(req *generateRequest) (*shopify.Client, error) {
	return shopify.New(shopify.Config{
		ShopURL:     req.ShopURL,
		AccessToken: req.AccessToken,
		Logger:      h.logger,
	})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GenerateOrders handles POST /generate-orders.
func (h *Handlers) GenerateOrders(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(r.Context(), w, codeInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}
	if req.NumItems < 1 || req.NumItems > 250 {
		writeError(r.Context(), w, codeInvalidRequest, "num_items must be between 1 and 250", http.StatusBadRequest)
		return
	}
	if req.DateRangeDays < 1 || req.DateRangeDays > 365 {
		writeError(r.Context(), w, codeInvalidRequest, "date_range_days must be between 1 and 365", http.StatusBadRequest)
		return
	}

	api, err := h.client(req)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	outcome, err := h.seeder.SeedOrders(r.Context(), api, seeder.OrderSeedRequest{
		Shop:          req.ShopURL,
		Count:         req.NumItems,
		DateRangeDays: req.DateRangeDays,
	})
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// GenerateInventory handles POST /generate-inventory.
func (h *Handlers) GenerateInventory(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(r.Context(), w, codeInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}
	if req.NumItems < 1 || req.NumItems > 250 {
		writeError(r.Context(), w, codeInvalidRequest, "num_items must be between 1 and 250", http.StatusBadRequest)
		return
	}

	bounds := types.DefaultModelAdjustmentRange
	if req.MinAdjustment != nil {
		bounds.Min = *req.MinAdjustment
	}
	if req.MaxAdjustment != nil {
		bounds.Max = *req.MaxAdjustment
	}
	if err := bounds.Validate(); err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	api, err := h.client(req)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	outcome, err := h.seeder.SeedInventory(r.Context(), api, seeder.InventorySeedRequest{
		Shop:   req.ShopURL,
		Count:  req.NumItems,
		Bounds: &bounds,
	})
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// Preview handles POST /preview.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(r.Context(), w, codeInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}

	api, err := h.client(req)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	result, err := h.seeder.Preview(r.Context(), api, seeder.PreviewRequest{
		Shop:          req.ShopURL,
		DateRangeDays: req.DateRangeDays,
	})
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":            result.Message,
		"sample_data":        result.SampleData(),
		"available_products": result.AvailableProducts,
	})
}

// ClearOrders handles POST and DELETE /clear-orders.
func (h *Handlers) ClearOrders(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(r.Context(), w, codeInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}

	api, err := h.client(req)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	result, err := h.seeder.ClearOrders(r.Context(), api, req.ShopURL)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ResetInventory handles POST /reset-inventory.
func (h *Handlers) ResetInventory(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(r.Context(), w, codeInvalidRequest, "malformed request body", http.StatusBadRequest)
		return
	}
	if req.Baseline != nil && *req.Baseline < 0 {
		writeError(r.Context(), w, codeInvalidRequest, "baseline must be >= 0", http.StatusBadRequest)
		return
	}

	api, err := h.client(req)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}

	result, err := h.seeder.ResetInventory(r.Context(), api, seeder.ResetInventoryRequest{
		Shop:     req.ShopURL,
		Baseline: req.Baseline,
	})
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History handles GET /history.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop_url")
	if shop == "" {
		writeError(r.Context(), w, codeInvalidRequest, "shop_url query parameter is required", http.StatusBadRequest)
		return
	}

	kind := storage.RunKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(r.Context(), w, codeInvalidRequest, "unknown kind", http.StatusBadRequest)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(r.Context(), w, codeInvalidRequest, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	if h.store == nil {
		writeError(r.Context(), w, codeInternalError, "audit log is not configured", http.StatusInternalServerError)
		return
	}

	runs, err := h.store.ListRecentRuns(r.Context(), shop, kind, limit)
	if err != nil {
		h.logger.Warn("history query failed", zap.Error(err))
		writeError(r.Context(), w, codeInternalError, "failed to list runs", http.StatusInternalServerError)
		return
	}

	entries := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		entry := map[string]interface{}{
			"id":         run.ID,
			"kind":       string(run.Kind),
			"requested":  run.Requested,
			"succeeded":  run.Succeeded,
			"failed":     run.Failed,
			"created_at": run.CreatedAt,
		}
		if len(run.Payload) > 0 {
			entry["result"] = json.RawMessage(run.Payload)
		}
		entries = append(entries, entry)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"shop": shop,
		"runs": entries,
	})
}
