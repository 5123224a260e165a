package seeder

import (
	"time"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// pastTimestamp draws a timestamp within the trailing window of days. The
// day, hour, and minute offsets are drawn independently instead of one
// uniform draw over the whole interval: downstream consumers group by day,
// and the nested draw keeps day-bucket counts roughly uniform while still
// jittering sub-day offsets. The maximum offset is (days-1)d 23h 59m, so
// every timestamp stays within the window.
func (s *Service) pastTimestamp(days int) time.Time {
	if days < 1 {
		days = 1
	}
	offset := time.Duration(s.rng.Intn(days))*24*time.Hour +
		time.Duration(s.rng.Intn(24))*time.Hour +
		time.Duration(s.rng.Intn(60))*time.Minute
	return s.now().Add(-offset)
}

// distributeOrderTimestamps reassigns every order's CreatedAt across the
// window so batches do not cluster at generation time.
func (s *Service) distributeOrderTimestamps(orders []types.SyntheticOrder, days int) {
	for i := range orders {
		orders[i].CreatedAt = s.pastTimestamp(days)
	}
}

// distributeAdjustmentTimestamps does the same for adjustments.
func (s *Service) distributeAdjustmentTimestamps(adjustments []types.InventoryAdjustment, days int) {
	for i := range adjustments {
		adjustments[i].Timestamp = s.pastTimestamp(days)
	}
}
