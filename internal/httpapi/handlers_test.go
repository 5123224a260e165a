package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeseed/storeseed-mcp/internal/seeder"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// fakeSeeder returns canned outcomes and records the requests it saw.
type fakeSeeder struct {
	orderReq     *seeder.OrderSeedRequest
	inventoryReq *seeder.InventorySeedRequest
	resetReq     *seeder.ResetInventoryRequest
	err          error
}

func (f *fakeSeeder) SeedOrders(ctx context.Context, api seeder.StoreAPI, req seeder.OrderSeedRequest) (*seeder.OrderOutcome, error) {
	f.orderReq = &req
	if f.err != nil {
		return nil, f.err
	}
	return &seeder.OrderOutcome{Message: "Successfully created 2 orders, 0 failed", Success: true}, nil
}

func (f *fakeSeeder) SeedInventory(ctx context.Context, api seeder.StoreAPI, req seeder.InventorySeedRequest) (*seeder.InventoryOutcome, error) {
	f.inventoryReq = &req
	if f.err != nil {
		return nil, f.err
	}
	return &seeder.InventoryOutcome{Message: "Applied 2 inventory adjustments", Success: true}, nil
}

func (f *fakeSeeder) Preview(ctx context.Context, api seeder.StoreAPI, req seeder.PreviewRequest) (*seeder.PreviewResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &seeder.PreviewResult{Message: "Generated preview data", AvailableProducts: 3}, nil
}

func (f *fakeSeeder) ClearOrders(ctx context.Context, api seeder.StoreAPI, shop string) (*seeder.ClearResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &seeder.ClearResult{Message: "Successfully deleted 4 AI-generated orders", DeletedCount: 4}, nil
}

func (f *fakeSeeder) ResetInventory(ctx context.Context, api seeder.StoreAPI, req seeder.ResetInventoryRequest) (*seeder.ResetResult, error) {
	f.resetReq = &req
	if f.err != nil {
		return nil, f.err
	}
	return &seeder.ResetResult{Message: "Reset inventory for 5 variants", AdjustedCount: 5}, nil
}

// fakeRunStore is an in-memory audit log.
type fakeRunStore struct {
	runs []*storage.Run
}

func (f *fakeRunStore) SaveRun(ctx context.Context, run *storage.Run) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunStore) GetRun(ctx context.Context, id string) (*storage.Run, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeRunStore) ListRecentRuns(ctx context.Context, shop string, kind storage.RunKind, limit int) ([]*storage.Run, error) {
	out := make([]*storage.Run, 0, len(f.runs))
	for _, run := range f.runs {
		if run.Shop != shop {
			continue
		}
		if kind != "" && run.Kind != kind {
			continue
		}
		out = append(out, run)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRunStore) Close() error { return nil }

func newTestRouter(svc Seeder, store storage.Store) http.Handler {
	return NewRouter(NewHandlers(svc, store, nil))
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"shop_url":     "dev-store.myshopify.com",
		"access_token": "shpat_test",
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"status": "healthy"}, decodeBody(t, rec))
}

func TestGenerateOrders(t *testing.T) {
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	body := validBody()
	body["num_items"] = 5
	body["date_range_days"] = 14
	rec := postJSON(t, router, "/generate-orders", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	require.NotNil(t, svc.orderReq)
	assert.Equal(t, 5, svc.orderReq.Count)
	assert.Equal(t, 14, svc.orderReq.DateRangeDays)
	assert.Equal(t, "dev-store.myshopify.com", svc.orderReq.Shop)
}

func TestGenerateOrdersDefaults(t *testing.T) {
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	rec := postJSON(t, router, "/generate-orders", validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.orderReq)
	assert.Equal(t, 10, svc.orderReq.Count)
	assert.Equal(t, 30, svc.orderReq.DateRangeDays)
}

func TestGenerateOrdersValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		message string
	}{
		{"num_items too large", func(b map[string]interface{}) { b["num_items"] = 1000 }, "num_items"},
		{"negative num_items", func(b map[string]interface{}) { b["num_items"] = -1 }, "num_items"},
		{"date range too large", func(b map[string]interface{}) { b["date_range_days"] = 999 }, "date_range_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeSeeder{}, nil)
			body := validBody()
			tt.mutate(body)
			rec := postJSON(t, router, "/generate-orders", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeBody(t, rec)
			assert.Equal(t, "invalid_request", resp["error"])
			assert.Contains(t, resp["message"], tt.message)
		})
	}
}

func TestGenerateOrdersMalformedBody(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate-orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingCredentials(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	rec := postJSON(t, router, "/generate-orders", map[string]interface{}{
		"shop_url": "dev-store.myshopify.com",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing_credentials", decodeBody(t, rec)["error"])
}

func TestDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"empty catalog", types.ErrEmptyCatalog, http.StatusBadRequest, "empty_catalog"},
		{"empty generation", types.ErrEmptyGeneration, http.StatusBadGateway, "empty_generation"},
		{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeSeeder{err: tt.err}, nil)
			rec := postJSON(t, router, "/generate-orders", validBody())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeBody(t, rec)["error"])
		})
	}
}

func TestGenerateInventoryBounds(t *testing.T) {
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	body := validBody()
	body["min_adjustment"] = -10
	body["max_adjustment"] = 20
	rec := postJSON(t, router, "/generate-inventory", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.inventoryReq)
	require.NotNil(t, svc.inventoryReq.Bounds)
	assert.Equal(t, types.AdjustmentRange{Min: -10, Max: 20}, *svc.inventoryReq.Bounds)
}

func TestGenerateInventoryExplicitZeroBounds(t *testing.T) {
	// min 0, max 0 is a chosen degenerate range, not an omission.
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	body := validBody()
	body["min_adjustment"] = 0
	body["max_adjustment"] = 0
	rec := postJSON(t, router, "/generate-inventory", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.inventoryReq)
	require.NotNil(t, svc.inventoryReq.Bounds)
	assert.Equal(t, types.AdjustmentRange{Min: 0, Max: 0}, *svc.inventoryReq.Bounds)
}

func TestGenerateInventoryInvertedBounds(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	body := validBody()
	body["min_adjustment"] = 10
	body["max_adjustment"] = -5
	rec := postJSON(t, router, "/generate-inventory", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearOrdersBothMethods(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			router := newTestRouter(&fakeSeeder{}, nil)
			raw, err := json.Marshal(validBody())
			require.NoError(t, err)
			req := httptest.NewRequest(method, "/clear-orders", bytes.NewReader(raw))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, float64(4), decodeBody(t, rec)["deleted_count"])
		})
	}
}

func TestResetInventory(t *testing.T) {
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	body := validBody()
	body["baseline"] = 15
	rec := postJSON(t, router, "/reset-inventory", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.resetReq)
	require.NotNil(t, svc.resetReq.Baseline)
	assert.Equal(t, 15, *svc.resetReq.Baseline)
}

func TestResetInventoryExplicitZeroBaseline(t *testing.T) {
	// Draining stock to zero is distinct from omitting the baseline.
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	body := validBody()
	body["baseline"] = 0
	rec := postJSON(t, router, "/reset-inventory", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.resetReq)
	require.NotNil(t, svc.resetReq.Baseline)
	assert.Equal(t, 0, *svc.resetReq.Baseline)
}

func TestResetInventoryOmittedBaseline(t *testing.T) {
	svc := &fakeSeeder{}
	router := newTestRouter(svc, nil)

	rec := postJSON(t, router, "/reset-inventory", validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.resetReq)
	assert.Nil(t, svc.resetReq.Baseline)
}

func TestResetInventoryNegativeBaseline(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	body := validBody()
	body["baseline"] = -1
	rec := postJSON(t, router, "/reset-inventory", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	rec := postJSON(t, router, "/preview", validBody())

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Generated preview data", resp["message"])
	assert.Equal(t, float64(3), resp["available_products"])
}

func TestHistory(t *testing.T) {
	store := &fakeRunStore{}
	_ = store.SaveRun(context.Background(), &storage.Run{
		ID:        "run-1",
		Shop:      "dev-store.myshopify.com",
		Kind:      storage.RunKindOrders,
		Requested: 5,
		Succeeded: 5,
		Payload:   []byte(`{"message":"ok"}`),
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	})
	router := newTestRouter(&fakeSeeder{}, store)

	req := httptest.NewRequest(http.MethodGet, "/history?shop_url=dev-store.myshopify.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	runs, ok := resp["runs"].([]interface{})
	require.True(t, ok)
	require.Len(t, runs, 1)
}

func TestHistoryValidation(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, &fakeRunStore{})

	tests := []struct {
		name string
		path string
	}{
		{"missing shop_url", "/history"},
		{"unknown kind", "/history?shop_url=dev.myshopify.com&kind=refunds"},
		{"bad limit", "/history?shop_url=dev.myshopify.com&limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	router := newTestRouter(&fakeSeeder{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route_not_found", decodeBody(t, rec)["error"])
}
