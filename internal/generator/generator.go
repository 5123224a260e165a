package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/catalog"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Common errors
var (
	ErrProviderFailed = errors.New("generation provider failed")
	ErrBadSchema      = errors.New("model output did not match schema")
	ErrUnsupported    = errors.New("unsupported generation provider")
)

// OrderRequest asks a provider for synthetic orders grounded on a catalog
// projection.
type OrderRequest struct {
	Projection    *catalog.Projection
	Count         int
	DateRangeDays int
}

// AdjustmentRequest asks a provider for synthetic inventory adjustments.
// Bounds is the caller-chosen magnitude range for the deltas.
type AdjustmentRequest struct {
	Projection *catalog.Projection
	Count      int
	Bounds     types.AdjustmentRange
}

// Provider produces raw synthetic records. A provider may return fewer or
// more records than requested; the Generator wrapper normalizes the count.
type Provider interface {
	// GenerateOrders produces synthetic orders from the catalog projection.
	GenerateOrders(ctx context.Context, req OrderRequest) ([]types.SyntheticOrder, error)

	// GenerateAdjustments produces synthetic inventory adjustments.
	GenerateAdjustments(ctx context.Context, req AdjustmentRequest) ([]types.InventoryAdjustment, error)

	// Name returns the provider name.
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}

// Generator wraps a Provider and enforces the exact-count contract: the
// result is truncated to the requested count, shortfalls are padded by
// cloning the last valid record with its variable fields perturbed, and an
// empty result fails with types.ErrEmptyGeneration.
type Generator struct {
	provider Provider
	rng      *rand.Rand
	logger   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source used for padding perturbation. Tests use
// this for deterministic output. The source is wrapped so draws stay safe
// when one Generator serves concurrent requests.
func WithSource(src rand.Source) Option {
	return func(g *Generator) { g.rng = NewSharedRand(src) }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator wraps a provider with count normalization.
func NewGenerator(provider Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		rng:      NewSharedRand(nil),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Provider returns the wrapped provider.
func (g *Generator) Provider() Provider {
	return g.provider
}

// Close releases the wrapped provider.
func (g *Generator) Close() error {
	return g.provider.Close()
}

// Orders produces exactly req.Count synthetic orders. Ordering is the
// provider's insertion order with padded clones appended at the end.
func (g *Generator) Orders(ctx context.Context, req OrderRequest) ([]types.SyntheticOrder, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidCount, req.Count)
	}

	orders, err := g.provider.GenerateOrders(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, types.ErrEmptyGeneration
	}

	if len(orders) > req.Count {
		g.logger.Debug("truncating over-produced orders",
			zap.Int("produced", len(orders)), zap.Int("requested", req.Count))
		orders = orders[:req.Count]
	}

	// Pad shortfalls from the last valid record. A second model call for a
	// small shortfall costs more than a perturbed clone is worth.
	for len(orders) < req.Count {
		orders = append(orders, g.cloneOrder(orders[len(orders)-1]))
	}

	return orders, nil
}

// Adjustments produces exactly req.Count inventory adjustments.
func (g *Generator) Adjustments(ctx context.Context, req AdjustmentRequest) ([]types.InventoryAdjustment, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidCount, req.Count)
	}
	if err := req.Bounds.Validate(); err != nil {
		return nil, err
	}

	adjustments, err := g.provider.GenerateAdjustments(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate adjustments: %w", err)
	}
	if len(adjustments) == 0 {
		return nil, types.ErrEmptyGeneration
	}

	if len(adjustments) > req.Count {
		adjustments = adjustments[:req.Count]
	}

	for len(adjustments) < req.Count {
		adjustments = append(adjustments, g.cloneAdjustment(adjustments[len(adjustments)-1], req.Bounds))
	}

	return adjustments, nil
}

// cloneOrder copies an order, shifting its timestamp by 1-24 hours and
// redrawing line item quantities. Everything else stays identical so the
// clone remains anchored to a record the model considered plausible.
func (g *Generator) cloneOrder(src types.SyntheticOrder) types.SyntheticOrder {
	clone := src
	clone.CreatedAt = src.CreatedAt.Add(time.Duration(g.rng.Intn(24)+1) * time.Hour)
	clone.LineItems = make([]types.LineItem, len(src.LineItems))
	copy(clone.LineItems, src.LineItems)
	for i := range clone.LineItems {
		clone.LineItems[i].Quantity = g.rng.Intn(3) + 1
	}
	clone.Tags = append([]string(nil), src.Tags...)
	return clone
}

// cloneAdjustment copies an adjustment, shifting its timestamp by 1-24 hours
// and redrawing the magnitude within the request bounds.
func (g *Generator) cloneAdjustment(src types.InventoryAdjustment, bounds types.AdjustmentRange) types.InventoryAdjustment {
	clone := src
	clone.Timestamp = src.Timestamp.Add(time.Duration(g.rng.Intn(24)+1) * time.Hour)
	clone.Adjustment = bounds.Min + g.rng.Intn(bounds.Max-bounds.Min+1)
	return clone
}
