package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

func testPrompts(t *testing.T) *Prompts {
	t.Helper()
	prompts, err := LoadPrompts("")
	require.NoError(t, err)
	return prompts
}

// chatResponse wraps content into the chat-completions response shape.
func chatResponse(t *testing.T, content interface{}) []byte {
	t.Helper()
	inner, err := json.Marshal(content)
	require.NoError(t, err)
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": string(inner)}},
		},
	}
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return out
}

func newTestOpenAIProvider(t *testing.T, serverURL string) *OpenAIProvider {
	t.Helper()
	return &OpenAIProvider{
		apiKey:  "test-key",
		model:   DefaultOpenAIModel,
		baseURL: serverURL,
		prompts: testPrompts(t),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func TestOpenAIGenerateOrders(t *testing.T) {
	var gotAuth, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if rf, ok := body["response_format"].(map[string]interface{}); ok {
			gotFormat, _ = rf["type"].(string)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatResponse(t, map[string]interface{}{
			"orders": []map[string]interface{}{
				{
					"customer":   map[string]string{"first_name": "Mary", "last_name": "Jones", "email": "mary.jones@example.com"},
					"line_items": []map[string]interface{}{{"variant_id": 10, "quantity": 2, "taxable": true}},
					"created_at": "2026-08-20T10:00:00Z",
					"tags":       []string{"AI_GENERATED"},
				},
			},
		}))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	defer provider.Close()

	orders, err := provider.GenerateOrders(context.Background(), OrderRequest{
		Projection:    testProjection(),
		Count:         1,
		DateRangeDays: 7,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "json_schema", gotFormat)
	assert.Equal(t, "mary.jones@example.com", orders[0].Customer.Email)
	assert.Equal(t, int64(10), orders[0].LineItems[0].VariantID)
	assert.Equal(t, 2026, orders[0].CreatedAt.Year())
}

func TestOpenAIGenerateAdjustmentsClampsBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatResponse(t, map[string]interface{}{
			"adjustments": []map[string]interface{}{
				{"variant_id": 10, "product_id": 100, "adjustment": 99, "reason": "received", "timestamp": "2026-08-20T10:00:00Z"},
			},
		}))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	defer provider.Close()

	adjustments, err := provider.GenerateAdjustments(context.Background(), AdjustmentRequest{
		Projection: testProjection(),
		Count:      1,
		Bounds:     types.AdjustmentRange{Min: -5, Max: 10},
	})
	require.NoError(t, err)
	require.Len(t, adjustments, 1)

	// Out-of-range model output is clamped, not rejected.
	assert.Equal(t, 10, adjustments[0].Adjustment)
	assert.Equal(t, types.ReasonReceived, adjustments[0].Reason)
}

func TestOpenAIBadSchemaNoRetry(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		// Valid HTTP response carrying content that is not the schema shape.
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "not json at all"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	defer provider.Close()

	_, err := provider.GenerateOrders(context.Background(), OrderRequest{
		Projection:    testProjection(),
		Count:         1,
		DateRangeDays: 7,
	})
	assert.ErrorIs(t, err, ErrBadSchema)
	assert.Equal(t, 1, callCount, "schema violations must not retry")
}

func TestOpenAITransportRetry(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		if callCount < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(chatResponse(t, map[string]interface{}{
			"orders": []map[string]interface{}{
				{
					"customer":   map[string]string{"first_name": "A", "last_name": "B", "email": "a.b@example.com"},
					"line_items": []map[string]interface{}{{"variant_id": 10, "quantity": 1, "taxable": true}},
					"created_at": "2026-08-20T10:00:00Z",
					"tags":       []string{},
				},
			},
		}))
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	defer provider.Close()

	orders, err := provider.GenerateOrders(context.Background(), OrderRequest{
		Projection:    testProjection(),
		Count:         1,
		DateRangeDays: 7,
	})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 3, callCount)
}

func TestOpenAIRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "", "refusal": "cannot comply"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider := newTestOpenAIProvider(t, server.URL)
	defer provider.Close()

	_, err := provider.GenerateOrders(context.Background(), OrderRequest{
		Projection:    testProjection(),
		Count:         1,
		DateRangeDays: 7,
	})
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestNewOpenAIProviderMissingKey(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "")
	_, err := NewOpenAIProvider("", testPrompts(t))
	assert.ErrorIs(t, err, types.ErrMissingCredentials)
}
