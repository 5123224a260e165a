package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/storeseed/storeseed-mcp/internal/seeder"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeMissingCredentials = -32001 // Shop URL or access token missing/rejected
	ErrorCodeEmptyCatalog       = -32002 // Shop has no usable products
	ErrorCodeEmptyGeneration    = -32003 // Provider produced no usable records
	ErrorCodeHistoryUnavailable = -32004 // Audit log not configured
)

// handleSeedOrders handles the seed_orders tool invocation
func (s *Server) handleSeedOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, shopURL, accessToken, err := credentials(request)
	if err != nil {
		return nil, err
	}

	count := getIntDefault(args, "count", 10)
	if count < 1 || count > 250 {
		return nil, newMCPError(ErrorCodeInvalidParams, "count must be between 1 and 250", map[string]interface{}{
			"param": "count",
			"value": count,
		})
	}
	days := getIntDefault(args, "date_range_days", 30)
	if days < 1 || days > 365 {
		return nil, newMCPError(ErrorCodeInvalidParams, "date_range_days must be between 1 and 365", map[string]interface{}{
			"param": "date_range_days",
			"value": days,
		})
	}

	api, err := s.storeClient(shopURL, accessToken)
	if err != nil {
		return nil, domainError(err)
	}

	outcome, err := s.seeder.SeedOrders(ctx, api, seeder.OrderSeedRequest{
		Shop:          shopURL,
		Count:         count,
		DateRangeDays: days,
	})
	if err != nil {
		return nil, domainError(err)
	}
	return mcp.NewToolResultText(formatJSON(outcome)), nil
}

// handleSeedInventory handles the seed_inventory tool invocation
func (s *Server) handleSeedInventory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, shopURL, accessToken, err := credentials(request)
	if err != nil {
		return nil, err
	}

	count := getIntDefault(args, "count", 10)
	if count < 1 || count > 250 {
		return nil, newMCPError(ErrorCodeInvalidParams, "count must be between 1 and 250", map[string]interface{}{
			"param": "count",
			"value": count,
		})
	}

	bounds := types.AdjustmentRange{
		Min: getIntDefault(args, "min_adjustment", types.DefaultModelAdjustmentRange.Min),
		Max: getIntDefault(args, "max_adjustment", types.DefaultModelAdjustmentRange.Max),
	}
	if err := bounds.Validate(); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid adjustment bounds", map[string]interface{}{
			"reason": err.Error(),
		})
	}

	api, err := s.storeClient(shopURL, accessToken)
	if err != nil {
		return nil, domainError(err)
	}

	outcome, err := s.seeder.SeedInventory(ctx, api, seeder.InventorySeedRequest{
		Shop:   shopURL,
		Count:  count,
		Bounds: &bounds,
	})
	if err != nil {
		return nil, domainError(err)
	}
	return mcp.NewToolResultText(formatJSON(outcome)), nil
}

// handlePreviewData handles the preview_data tool invocation
func (s *Server) handlePreviewData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, shopURL, accessToken, err := credentials(request)
	if err != nil {
		return nil, err
	}

	count := getIntDefault(args, "count", 2)
	if count < 1 || count > 10 {
		return nil, newMCPError(ErrorCodeInvalidParams, "count must be between 1 and 10", map[string]interface{}{
			"param": "count",
			"value": count,
		})
	}

	api, err := s.storeClient(shopURL, accessToken)
	if err != nil {
		return nil, domainError(err)
	}

	result, err := s.seeder.Preview(ctx, api, seeder.PreviewRequest{
		Shop:  shopURL,
		Count: count,
	})
	if err != nil {
		return nil, domainError(err)
	}

	response := map[string]interface{}{
		"message":            result.Message,
		"sample_data":        result.SampleData(),
		"available_products": result.AvailableProducts,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClearOrders handles the clear_orders tool invocation
func (s *Server) handleClearOrders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, shopURL, accessToken, err := credentials(request)
	if err != nil {
		return nil, err
	}

	api, err := s.storeClient(shopURL, accessToken)
	if err != nil {
		return nil, domainError(err)
	}

	result, err := s.seeder.ClearOrders(ctx, api, shopURL)
	if err != nil {
		return nil, domainError(err)
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleResetInventory handles the reset_inventory tool invocation
func (s *Server) handleResetInventory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, shopURL, accessToken, err := credentials(request)
	if err != nil {
		return nil, err
	}

	// Absence falls back to the service default; an explicit zero drains
	// all stock.
	var baseline *int
	if value, ok := optionalInt(args, "baseline"); ok {
		if value < 0 {
			return nil, newMCPError(ErrorCodeInvalidParams, "baseline must be >= 0", map[string]interface{}{
				"param": "baseline",
				"value": value,
			})
		}
		baseline = &value
	}

	api, err := s.storeClient(shopURL, accessToken)
	if err != nil {
		return nil, domainError(err)
	}

	result, err := s.seeder.ResetInventory(ctx, api, seeder.ResetInventoryRequest{
		Shop:     shopURL,
		Baseline: baseline,
	})
	if err != nil {
		return nil, domainError(err)
	}
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleGetHistory handles the get_history tool invocation
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	shopURL, ok := args["shop_url"].(string)
	if !ok || shopURL == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "shop_url parameter is required", map[string]interface{}{
			"param":  "shop_url",
			"reason": "missing or empty",
		})
	}

	kind := storage.RunKind(getStringDefault(args, "kind", ""))
	if kind != "" && !kind.Valid() {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid kind", map[string]interface{}{
			"param":   "kind",
			"value":   string(kind),
			"allowed": []string{"orders", "inventory", "preview", "clear", "reset"},
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	if s.store == nil {
		return nil, newMCPError(ErrorCodeHistoryUnavailable, "audit log is not configured", nil)
	}

	runs, err := s.store.ListRecentRuns(ctx, shopURL, kind, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list runs", map[string]interface{}{
			"error": err.Error(),
		})
	}

	entries := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		entry := map[string]interface{}{
			"id":         run.ID,
			"kind":       string(run.Kind),
			"requested":  run.Requested,
			"succeeded":  run.Succeeded,
			"failed":     run.Failed,
			"created_at": run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if len(run.Payload) > 0 {
			entry["result"] = json.RawMessage(run.Payload)
		}
		entries = append(entries, entry)
	}

	response := map[string]interface{}{
		"shop": shopURL,
		"runs": entries,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// credentials extracts the argument map and the required credential pair.
func credentials(request mcp.CallToolRequest) (map[string]interface{}, string, string, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, "", "", newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	shopURL, ok := args["shop_url"].(string)
	if !ok || shopURL == "" {
		return nil, "", "", newMCPError(ErrorCodeInvalidParams, "shop_url parameter is required", map[string]interface{}{
			"param":  "shop_url",
			"reason": "missing or empty",
		})
	}

	accessToken, ok := args["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, "", "", newMCPError(ErrorCodeInvalidParams, "access_token parameter is required", map[string]interface{}{
			"param":  "access_token",
			"reason": "missing or empty",
		})
	}

	return args, shopURL, accessToken, nil
}

// domainError maps pipeline sentinels onto MCP error codes.
func domainError(err error) error {
	switch {
	case errors.Is(err, types.ErrMissingCredentials):
		return newMCPError(ErrorCodeMissingCredentials, "store credentials missing or rejected", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrEmptyCatalog):
		return newMCPError(ErrorCodeEmptyCatalog, "shop has no usable products", map[string]interface{}{
			"error": err.Error(),
		})
	case errors.Is(err, types.ErrEmptyGeneration):
		return newMCPError(ErrorCodeEmptyGeneration, "generation produced no usable records", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		return newMCPError(ErrorCodeInternalError, "operation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a response value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// optionalInt extracts an integer parameter, reporting whether it was present
func optionalInt(args map[string]interface{}, key string) (int, bool) {
	if val, ok := args[key].(float64); ok {
		return int(val), true
	}
	if val, ok := args[key].(int); ok {
		return val, true
	}
	return 0, false
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := optionalInt(args, key); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
