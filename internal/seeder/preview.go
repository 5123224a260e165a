package seeder

import (
	"context"

	"github.com/storeseed/storeseed-mcp/internal/generator"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// PreviewRequest asks for generated samples without applying anything.
type PreviewRequest struct {
	Shop          string
	Count         int
	DateRangeDays int
}

// previewDefaultCount matches the fixed sample size of the preview
// operation: enough to judge plausibility, cheap to generate.
const previewDefaultCount = 2

// Preview generates sample orders and adjustments against the live catalog
// but never touches the store.
func (s *Service) Preview(ctx context.Context, api StoreAPI, req PreviewRequest) (*PreviewResult, error) {
	count := req.Count
	if count <= 0 {
		count = previewDefaultCount
	}
	days := req.DateRangeDays
	if days <= 0 {
		days = 30
	}

	proj, err := s.fetchProjection(ctx, api)
	if err != nil {
		return nil, err
	}

	orders, err := s.gen.Orders(ctx, generator.OrderRequest{
		Projection:    proj,
		Count:         count,
		DateRangeDays: days,
	})
	if err != nil {
		return nil, err
	}
	orders = s.reconcileOrders(proj, orders)
	s.distributeOrderTimestamps(orders, days)

	adjustments, err := s.gen.Adjustments(ctx, generator.AdjustmentRequest{
		Projection: proj,
		Count:      count,
		Bounds:     types.DefaultModelAdjustmentRange,
	})
	if err != nil {
		return nil, err
	}
	adjustments = s.reconcileAdjustments(proj, adjustments, types.DefaultModelAdjustmentRange)
	s.distributeAdjustmentTimestamps(adjustments, adjustmentWindowDays)

	result := &PreviewResult{
		Message:           "Generated preview data",
		SampleOrders:      orders,
		SampleAdjustments: adjustments,
		AvailableProducts: proj.ProductCount(),
	}
	s.auditOutcome(ctx, storage.RunKindPreview, req.Shop, count, len(orders)+len(adjustments), 0, result)
	return result, nil
}
