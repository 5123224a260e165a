package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Name and city tables for offline customer synthesis.
var (
	localFirstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth"}
	localLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
)

// LocalProvider generates synthetic records offline with no model call.
// It draws directly from the catalog projection, so its output never needs
// reference repair. Used when no API key is configured and in tests.
type LocalProvider struct {
	rng *rand.Rand
}

// NewLocalProvider creates an offline provider.
func NewLocalProvider() (*LocalProvider, error) {
	return &LocalProvider{rng: NewSharedRand(nil)}, nil
}

// NewLocalProviderWithSource creates an offline provider with a fixed random
// source, for deterministic tests.
func NewLocalProviderWithSource(src rand.Source) *LocalProvider {
	return &LocalProvider{rng: NewSharedRand(src)}
}

func (l *LocalProvider) GenerateOrders(ctx context.Context, req OrderRequest) ([]types.SyntheticOrder, error) {
	if req.Projection.VariantCount() == 0 {
		return nil, nil
	}

	days := req.DateRangeDays
	if days < 1 {
		days = 1
	}

	orders := make([]types.SyntheticOrder, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		order := types.SyntheticOrder{
			Customer:  l.customer(),
			CreatedAt: l.pastTimestamp(days),
			Tags:      []string{types.SyntheticTag},
		}

		// 1-3 line items per order, quantities 1-3.
		itemCount := l.rng.Intn(3) + 1
		for j := 0; j < itemCount; j++ {
			_, variant, ok := req.Projection.RandomVariant(l.rng)
			if !ok {
				break
			}
			order.LineItems = append(order.LineItems, types.LineItem{
				VariantID: variant.ID,
				Quantity:  l.rng.Intn(3) + 1,
				Taxable:   true,
			})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (l *LocalProvider) GenerateAdjustments(ctx context.Context, req AdjustmentRequest) ([]types.InventoryAdjustment, error) {
	if req.Projection.VariantCount() == 0 {
		return nil, nil
	}

	adjustments := make([]types.InventoryAdjustment, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		product, variant, ok := req.Projection.RandomVariant(l.rng)
		if !ok {
			break
		}
		adjustments = append(adjustments, types.InventoryAdjustment{
			VariantID:  variant.ID,
			ProductID:  product.ID,
			Adjustment: req.Bounds.Min + l.rng.Intn(req.Bounds.Max-req.Bounds.Min+1),
			Reason:     types.AdjustmentReasons[l.rng.Intn(len(types.AdjustmentReasons))],
			Timestamp:  l.pastTimestamp(30),
		})
	}
	return adjustments, nil
}

func (l *LocalProvider) customer() types.Customer {
	first := localFirstNames[l.rng.Intn(len(localFirstNames))]
	last := localLastNames[l.rng.Intn(len(localLastNames))]
	return types.Customer{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
	}
}

// pastTimestamp draws independent day, hour, and minute offsets so the
// timestamps land in distinct day buckets rather than clustering at now.
func (l *LocalProvider) pastTimestamp(days int) time.Time {
	offset := time.Duration(l.rng.Intn(days))*24*time.Hour +
		time.Duration(l.rng.Intn(24))*time.Hour +
		time.Duration(l.rng.Intn(60))*time.Minute
	return time.Now().Add(-offset)
}

func (l *LocalProvider) Name() string {
	return ProviderLocal
}

func (l *LocalProvider) Close() error {
	return nil
}
