package seeder

import (
	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/catalog"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// reconcileOrders repairs generated orders against the real catalog. Line
// items referencing unknown variants are replaced with a uniformly random
// valid (product, variant) pair and a quantity in [1,3]; an order with no
// line items gets one synthesized the same way. Orders that still end up
// with no valid line items are dropped; the generator's batch-level padding
// already compensated the count upstream. Tags are normalized so the
// synthetic marker appears exactly once.
func (s *Service) reconcileOrders(proj *catalog.Projection, orders []types.SyntheticOrder) []types.SyntheticOrder {
	out := make([]types.SyntheticOrder, 0, len(orders))
	for _, order := range orders {
		items := make([]types.LineItem, 0, len(order.LineItems))
		for _, li := range order.LineItems {
			if !proj.HasVariant(li.VariantID) {
				replaced, ok := s.randomLineItem(proj)
				if !ok {
					continue
				}
				s.logger.Debug("replaced unknown variant reference",
					zap.Int64("variant_id", li.VariantID),
					zap.Int64("replacement", replaced.VariantID))
				li = replaced
			}
			if li.Quantity < 1 {
				li.Quantity = s.rng.Intn(3) + 1
			}
			items = append(items, li)
		}

		if len(items) == 0 {
			if li, ok := s.randomLineItem(proj); ok {
				items = append(items, li)
			}
		}
		if len(items) == 0 {
			s.logger.Warn("dropping order with no resolvable line items",
				zap.String("email", order.Customer.Email))
			continue
		}

		order.LineItems = items
		order.NormalizeTags()
		out = append(out, order)
	}
	return out
}

func (s *Service) randomLineItem(proj *catalog.Projection) (types.LineItem, bool) {
	_, variant, ok := proj.RandomVariant(s.rng)
	if !ok {
		return types.LineItem{}, false
	}
	return types.LineItem{
		VariantID: variant.ID,
		Quantity:  s.rng.Intn(3) + 1,
		Taxable:   true,
	}, true
}
