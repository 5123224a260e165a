package seeder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/storage"
)

// ClearOrders cancels every order carrying the synthetic marker tag.
// Cancellation is asynchronous on the remote side: each cancel returns a job
// handle that is polled with a bounded attempt count. An order whose job
// never reports done within the attempts is simply not counted; no error is
// raised and the sweep continues.
func (s *Service) ClearOrders(ctx context.Context, api StoreAPI, shop string) (*ClearResult, error) {
	orders, err := api.TaggedOrders(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list tagged orders: %w", err)
	}

	deleted := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}

		jobID, done, err := api.CancelOrder(ctx, order.ID)
		if err != nil {
			s.logger.Warn("order cancel rejected",
				zap.String("order", order.Name),
				zap.Error(err))
			continue
		}
		if done || s.awaitJob(ctx, api, jobID) {
			deleted++
			continue
		}
		s.logger.Warn("cancel job did not finish within poll budget",
			zap.String("order", order.Name),
			zap.String("job_id", jobID),
			zap.Int("attempts", s.poll.Attempts))
	}

	result := &ClearResult{
		Message:      fmt.Sprintf("Successfully deleted %d AI-generated orders", deleted),
		DeletedCount: deleted,
	}
	s.auditOutcome(ctx, storage.RunKindClear, shop, len(orders), deleted, len(orders)-deleted, result)
	return result, nil
}

// awaitJob polls a job handle until done, the attempt budget runs out, or
// the context is cancelled. The wait between attempts is a cancellable timer
// select, never a bare sleep.
func (s *Service) awaitJob(ctx context.Context, api StoreAPI, jobID string) bool {
	for attempt := 0; attempt < s.poll.Attempts; attempt++ {
		done, err := api.JobDone(ctx, jobID)
		if err != nil {
			s.logger.Warn("job poll failed", zap.String("job_id", jobID), zap.Error(err))
			return false
		}
		if done {
			return true
		}
		if attempt == s.poll.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(s.poll.Interval):
		}
	}
	return false
}
