package seeder

import (
	"fmt"

	"github.com/storeseed/storeseed-mcp/internal/shopify"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// ItemFailure records one item that a remote mutation rejected. Ref
// identifies the item (customer email for orders, variant id for
// adjustments) and Reason carries the API-reported message.
type ItemFailure struct {
	Ref    string `json:"ref"`
	Items  int    `json:"items,omitempty"`
	Reason string `json:"error"`
}

// OrderOutcome summarizes one order seeding batch. Succeeded and Failed keep
// processing order.
type OrderOutcome struct {
	Message   string                 `json:"message"`
	Succeeded []shopify.OrderSummary `json:"items"`
	Failed    []ItemFailure          `json:"failed_items,omitempty"`
	Success   bool                   `json:"success"`
}

// InventoryOutcome summarizes one inventory seeding batch.
type InventoryOutcome struct {
	Message   string                      `json:"message"`
	Succeeded []types.InventoryAdjustment `json:"items"`
	Failed    []ItemFailure               `json:"failed_items,omitempty"`
	Success   bool                        `json:"success"`
}

// PreviewResult carries generated samples that were never applied.
type PreviewResult struct {
	Message           string                      `json:"message"`
	SampleOrders      []types.SyntheticOrder      `json:"sample_orders"`
	SampleAdjustments []types.InventoryAdjustment `json:"sample_adjustments"`
	AvailableProducts int                         `json:"available_products"`
}

// SampleData merges the samples into one list, orders first, matching the
// response contract of the preview operation.
func (p *PreviewResult) SampleData() []interface{} {
	out := make([]interface{}, 0, len(p.SampleOrders)+len(p.SampleAdjustments))
	for _, o := range p.SampleOrders {
		out = append(out, o)
	}
	for _, a := range p.SampleAdjustments {
		out = append(out, a)
	}
	return out
}

// ClearResult reports a bulk cancellation sweep.
type ClearResult struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

// ResetResult reports an inventory baseline sweep.
type ResetResult struct {
	Message       string `json:"message"`
	AdjustedCount int    `json:"adjusted_count"`
	FailedCount   int    `json:"failed_count,omitempty"`
}

// finalizeOrders folds per-item results into the response contract.
func finalizeOrders(succeeded []shopify.OrderSummary, failed []ItemFailure) *OrderOutcome {
	return &OrderOutcome{
		Message:   fmt.Sprintf("Successfully created %d orders, %d failed", len(succeeded), len(failed)),
		Succeeded: succeeded,
		Failed:    failed,
		Success:   len(succeeded) > 0,
	}
}

// finalizeInventory folds per-item results into the response contract.
func finalizeInventory(succeeded []types.InventoryAdjustment, failed []ItemFailure) *InventoryOutcome {
	return &InventoryOutcome{
		Message:   fmt.Sprintf("Applied %d inventory adjustments", len(succeeded)),
		Succeeded: succeeded,
		Failed:    failed,
		Success:   len(succeeded) > 0,
	}
}
