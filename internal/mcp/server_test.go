package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeseed/storeseed-mcp/internal/storage"
)

// fakeStore is an in-memory audit log.
type fakeStore struct {
	runs []*storage.Run
}

func (f *fakeStore) SaveRun(ctx context.Context, run *storage.Run) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeStore) GetRun(ctx context.Context, id string) (*storage.Run, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStore) ListRecentRuns(ctx context.Context, shop string, kind storage.RunKind, limit int) ([]*storage.Run, error) {
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

func (f *fakeStore) Close() error { return nil }

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	tools := []struct {
		tool     mcp.Tool
		name     string
		required []string
	}{
		{seedOrdersTool(), "seed_orders", []string{"shop_url", "access_token"}},
		{seedInventoryTool(), "seed_inventory", []string{"shop_url", "access_token"}},
		{previewDataTool(), "preview_data", []string{"shop_url", "access_token"}},
		{clearOrdersTool(), "clear_orders", []string{"shop_url", "access_token"}},
		{resetInventoryTool(), "reset_inventory", []string{"shop_url", "access_token"}},
		{getHistoryTool(), "get_history", []string{"shop_url"}},
	}

	for _, tt := range tools {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
			assert.Equal(t, tt.required, tt.tool.InputSchema.Required)
			for _, field := range tt.required {
				assert.Contains(t, tt.tool.InputSchema.Properties, field)
			}
		})
	}
}

func TestCredentialValidation(t *testing.T) {
	server := NewServer(Config{})

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing shop_url", map[string]interface{}{"access_token": "shpat_test"}},
		{"empty shop_url", map[string]interface{}{"shop_url": "", "access_token": "shpat_test"}},
		{"missing access_token", map[string]interface{}{"shop_url": "dev.myshopify.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := server.handleSeedOrders(context.Background(), callRequest(tt.args))
			require.Error(t, err)
			var mcpErr *MCPError
			require.ErrorAs(t, err, &mcpErr)
			assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
		})
	}
}

func TestSeedOrdersRejectsOutOfRangeParams(t *testing.T) {
	server := NewServer(Config{})

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"count too small", map[string]interface{}{
			"shop_url": "dev.myshopify.com", "access_token": "shpat_test", "count": float64(0),
		}},
		{"count too large", map[string]interface{}{
			"shop_url": "dev.myshopify.com", "access_token": "shpat_test", "count": float64(500),
		}},
		{"date range too large", map[string]interface{}{
			"shop_url": "dev.myshopify.com", "access_token": "shpat_test", "date_range_days": float64(1000),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := server.handleSeedOrders(context.Background(), callRequest(tt.args))
			require.Error(t, err)
			var mcpErr *MCPError
			require.ErrorAs(t, err, &mcpErr)
			assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
		})
	}
}

func TestSeedInventoryRejectsInvertedBounds(t *testing.T) {
	server := NewServer(Config{})

	_, err := server.handleSeedInventory(context.Background(), callRequest(map[string]interface{}{
		"shop_url":       "dev.myshopify.com",
		"access_token":   "shpat_test",
		"min_adjustment": float64(10),
		"max_adjustment": float64(-5),
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestResetInventoryRejectsNegativeBaseline(t *testing.T) {
	server := NewServer(Config{})

	_, err := server.handleResetInventory(context.Background(), callRequest(map[string]interface{}{
		"shop_url":     "dev.myshopify.com",
		"access_token": "shpat_test",
		"baseline":     float64(-1),
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestOptionalInt(t *testing.T) {
	args := map[string]interface{}{
		"zero":    float64(0),
		"set":     float64(7),
		"native":  3,
		"not_int": "ten",
	}

	// An explicit zero is present, not a fallback.
	value, ok := optionalInt(args, "zero")
	assert.True(t, ok)
	assert.Equal(t, 0, value)

	value, ok = optionalInt(args, "set")
	assert.True(t, ok)
	assert.Equal(t, 7, value)

	value, ok = optionalInt(args, "native")
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = optionalInt(args, "not_int")
	assert.False(t, ok)

	_, ok = optionalInt(args, "absent")
	assert.False(t, ok)

	assert.Equal(t, 10, getIntDefault(args, "absent", 10))
	assert.Equal(t, 0, getIntDefault(args, "zero", 10))
}

func TestGetHistory(t *testing.T) {
	store := &fakeStore{}
	_ = store.SaveRun(context.Background(), &storage.Run{
		ID:        "run-1",
		Shop:      "dev.myshopify.com",
		Kind:      storage.RunKindOrders,
		Requested: 5,
		Succeeded: 5,
		Payload:   []byte(`{"message":"ok"}`),
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	})
	server := NewServer(Config{Store: store})

	result, err := server.handleGetHistory(context.Background(), callRequest(map[string]interface{}{
		"shop_url": "dev.myshopify.com",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)

	text := toolResultText(t, result)
	assert.Contains(t, text, "run-1")
	assert.Contains(t, text, `"kind": "orders"`)
}

func TestGetHistoryRejectsUnknownKind(t *testing.T) {
	server := NewServer(Config{Store: &fakeStore{}})

	_, err := server.handleGetHistory(context.Background(), callRequest(map[string]interface{}{
		"shop_url": "dev.myshopify.com",
		"kind":     "refunds",
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestGetHistoryWithoutStore(t *testing.T) {
	server := NewServer(Config{})

	_, err := server.handleGetHistory(context.Background(), callRequest(map[string]interface{}{
		"shop_url": "dev.myshopify.com",
	}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeHistoryUnavailable, mcpErr.Code)
}

func toolResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}
