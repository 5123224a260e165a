package seeder

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/catalog"
	"github.com/storeseed/storeseed-mcp/internal/generator"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// InventorySeedRequest asks for a batch of synthetic stock adjustments.
// Bounds is the magnitude range for the deltas; nil falls back to the
// model-path default, so an explicit degenerate range survives.
type InventorySeedRequest struct {
	Shop   string
	Count  int
	Bounds *types.AdjustmentRange
}

// adjustmentWindowDays is the trailing window adjusted timestamps spread
// over. Adjustments have no caller-facing date range; a month reads
// naturally in admin views.
const adjustmentWindowDays = 30

// SeedInventory generates and applies a batch of inventory adjustments. The
// location is resolved once and reused for the whole batch; each
// adjustment's failure is recorded independently.
func (s *Service) SeedInventory(ctx context.Context, api StoreAPI, req InventorySeedRequest) (*InventoryOutcome, error) {
	bounds := types.DefaultModelAdjustmentRange
	if req.Bounds != nil {
		bounds = *req.Bounds
	}

	proj, err := s.fetchProjection(ctx, api)
	if err != nil {
		return nil, err
	}

	adjustments, err := s.gen.Adjustments(ctx, generator.AdjustmentRequest{
		Projection: proj,
		Count:      req.Count,
		Bounds:     bounds,
	})
	if err != nil {
		return nil, err
	}

	// Repair references the same way order line items are repaired.
	adjustments = s.reconcileAdjustments(proj, adjustments, bounds)
	s.distributeAdjustmentTimestamps(adjustments, adjustmentWindowDays)

	locationID, err := api.PrimaryLocationID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}

	succeeded := make([]types.InventoryAdjustment, 0, len(adjustments))
	failed := make([]ItemFailure, 0)

	for _, adj := range adjustments {
		if err := s.applyAdjustment(ctx, api, locationID, adj); err != nil {
			s.logger.Warn("adjustment not applied",
				zap.Int64("variant_id", adj.VariantID),
				zap.Error(err))
			failed = append(failed, ItemFailure{
				Ref:    strconv.FormatInt(adj.VariantID, 10),
				Reason: err.Error(),
			})
			continue
		}
		succeeded = append(succeeded, adj)
	}

	outcome := finalizeInventory(succeeded, failed)
	s.auditOutcome(ctx, storage.RunKindInventory, req.Shop, req.Count, len(succeeded), len(failed), outcome)
	return outcome, nil
}

// applyAdjustment resolves the variant's inventory-item handle and issues
// the delta mutation.
func (s *Service) applyAdjustment(ctx context.Context, api StoreAPI, locationID string, adj types.InventoryAdjustment) error {
	itemID, err := api.InventoryItemID(ctx, adj.VariantID)
	if err != nil {
		return err
	}
	_, err = api.AdjustInventory(ctx, itemID, locationID, adj.Adjustment, string(adj.Reason))
	return err
}

// reconcileAdjustments replaces unknown variant references with random valid
// ones and forces reasons and magnitudes into range.
func (s *Service) reconcileAdjustments(proj *catalog.Projection, adjustments []types.InventoryAdjustment, bounds types.AdjustmentRange) []types.InventoryAdjustment {
	out := make([]types.InventoryAdjustment, 0, len(adjustments))
	for _, adj := range adjustments {
		if !proj.HasVariant(adj.VariantID) {
			product, variant, ok := proj.RandomVariant(s.rng)
			if !ok {
				continue
			}
			s.logger.Debug("replaced unknown variant reference",
				zap.Int64("variant_id", adj.VariantID),
				zap.Int64("replacement", variant.ID))
			adj.VariantID = variant.ID
			adj.ProductID = product.ID
		} else if product, _, ok := proj.Variant(adj.VariantID); ok {
			// Keep the product id honest even when the variant was valid.
			adj.ProductID = product.ID
		}
		adj.Adjustment = bounds.Clamp(adj.Adjustment)
		if !adj.Reason.Valid() {
			adj.Reason = types.AdjustmentReasons[s.rng.Intn(len(types.AdjustmentReasons))]
		}
		out = append(out, adj)
	}
	return out
}

// ResetInventoryRequest asks for every variant to be swept back to a
// baseline stock level. A nil Baseline uses the service default; an explicit
// zero drains all stock.
type ResetInventoryRequest struct {
	Shop     string
	Baseline *int
}

// ResetInventory computes the delta from each variant's current level to the
// baseline and applies it. Variants already at the baseline are skipped; one
// variant's failure never stops the sweep.
func (s *Service) ResetInventory(ctx context.Context, api StoreAPI, req ResetInventoryRequest) (*ResetResult, error) {
	baseline := s.baseline
	if req.Baseline != nil {
		baseline = *req.Baseline
	}

	proj, err := s.fetchProjection(ctx, api)
	if err != nil {
		return nil, err
	}

	locationID, err := api.PrimaryLocationID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}

	adjusted, failures := 0, 0
	for _, product := range proj.Products() {
		for _, variant := range product.Variants {
			delta := baseline - variant.InventoryQuantity
			if delta == 0 {
				continue
			}
			err := s.applyAdjustment(ctx, api, locationID, types.InventoryAdjustment{
				VariantID:  variant.ID,
				ProductID:  product.ID,
				Adjustment: delta,
				Reason:     types.ReasonRecount,
			})
			if err != nil {
				s.logger.Warn("inventory reset skipped variant",
					zap.Int64("variant_id", variant.ID),
					zap.Error(err))
				failures++
				continue
			}
			adjusted++
		}
	}

	result := &ResetResult{
		Message:       fmt.Sprintf("Reset inventory for %d variants", adjusted),
		AdjustedCount: adjusted,
		FailedCount:   failures,
	}
	s.auditOutcome(ctx, storage.RunKindReset, req.Shop, 0, adjusted, failures, result)
	return result, nil
}
