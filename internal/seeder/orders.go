package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/catalog"
	"github.com/storeseed/storeseed-mcp/internal/generator"
	"github.com/storeseed/storeseed-mcp/internal/shopify"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// OrderSeedRequest asks for a batch of synthetic orders applied to a store.
type OrderSeedRequest struct {
	Shop          string
	Count         int
	DateRangeDays int
}

// SeedOrders generates, validates, and applies a batch of synthetic orders.
// Only an empty catalog or empty generation aborts the request; every
// per-order remote failure is recorded and the batch continues.
func (s *Service) SeedOrders(ctx context.Context, api StoreAPI, req OrderSeedRequest) (*OrderOutcome, error) {
	proj, err := s.fetchProjection(ctx, api)
	if err != nil {
		return nil, err
	}

	orders, err := s.gen.Orders(ctx, generator.OrderRequest{
		Projection:    proj,
		Count:         req.Count,
		DateRangeDays: req.DateRangeDays,
	})
	if err != nil {
		return nil, err
	}

	orders = s.reconcileOrders(proj, orders)
	s.distributeOrderTimestamps(orders, req.DateRangeDays)

	succeeded := make([]shopify.OrderSummary, 0, len(orders))
	failed := make([]ItemFailure, 0)

	for i := range orders {
		order := &orders[i]
		summary, err := s.applyOrder(ctx, api, order)
		if err != nil {
			s.logger.Warn("order not created",
				zap.String("email", order.Customer.Email),
				zap.Error(err))
			failed = append(failed, ItemFailure{
				Ref:    order.Customer.Email,
				Items:  len(order.LineItems),
				Reason: err.Error(),
			})
			continue
		}
		succeeded = append(succeeded, *summary)
	}

	outcome := finalizeOrders(succeeded, failed)
	s.auditOutcome(ctx, storage.RunKindOrders, req.Shop, req.Count, len(succeeded), len(failed), outcome)
	return outcome, nil
}

// applyOrder runs the two-phase order workflow: stage a draft, then complete
// it. When completion fails after the draft exists, the orphaned draft is
// deleted best-effort so failed batches do not litter the store admin.
func (s *Service) applyOrder(ctx context.Context, api StoreAPI, order *types.SyntheticOrder) (*shopify.OrderSummary, error) {
	draftID, err := api.CreateDraftOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}

	summary, err := api.CompleteDraftOrder(ctx, draftID)
	if err != nil {
		if cleanupErr := api.DeleteDraftOrder(ctx, draftID); cleanupErr != nil {
			s.logger.Warn("orphaned draft not cleaned up",
				zap.String("draft_id", draftID),
				zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("complete: %w", err)
	}

	summary.ItemCount = len(order.LineItems)
	return summary, nil
}

// fetchProjection snapshots the catalog for this request. A store with no
// products, or products with no variants, cannot seed anything.
func (s *Service) fetchProjection(ctx context.Context, api StoreAPI) (*catalog.Projection, error) {
	products, err := api.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("catalog fetch failed", zap.Error(err))
		return nil, types.ErrEmptyCatalog
	}

	proj := catalog.NewProjection(products)
	if proj.Empty() || proj.VariantCount() == 0 {
		return nil, types.ErrEmptyCatalog
	}
	return proj, nil
}

// auditOutcome writes the batch outcome to the audit log, best-effort.
func (s *Service) auditOutcome(ctx context.Context, kind storage.RunKind, shop string, requested, succeeded, failed int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("audit payload not serialized", zap.Error(err))
		body = nil
	}
	s.recordRun(ctx, &storage.Run{
		Shop:      shop,
		Kind:      kind,
		Requested: requested,
		Succeeded: succeeded,
		Failed:    failed,
		Payload:   body,
	})
}
