package seeder

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/generator"
	"github.com/storeseed/storeseed-mcp/internal/shopify"
	"github.com/storeseed/storeseed-mcp/internal/storage"
	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Defaults for batch processing.
const (
	// DefaultClearPageSize bounds how many tagged orders one clear sweep
	// touches.
	DefaultClearPageSize = 50
	// DefaultInventoryBaseline is the stock level the reset sweep restores.
	DefaultInventoryBaseline = 10
	// DefaultPollAttempts and DefaultPollInterval bound the cancellation
	// job poll.
	DefaultPollAttempts = 10
	DefaultPollInterval = time.Second
)

// StoreAPI is the remote mutation surface the seeder drives. *shopify.Client
// implements it; tests substitute a recording fake.
type StoreAPI interface {
	FetchProducts(ctx context.Context) ([]types.CatalogProduct, error)

	CreateDraftOrder(ctx context.Context, order *types.SyntheticOrder) (string, error)
	CompleteDraftOrder(ctx context.Context, draftID string) (*shopify.OrderSummary, error)
	DeleteDraftOrder(ctx context.Context, draftID string) error

	TaggedOrders(ctx context.Context, pageSize int) ([]shopify.RemoteOrder, error)
	CancelOrder(ctx context.Context, orderID string) (jobID string, done bool, err error)
	JobDone(ctx context.Context, jobID string) (bool, error)

	InventoryItemID(ctx context.Context, variantID int64) (string, error)
	PrimaryLocationID(ctx context.Context) (string, error)
	AdjustInventory(ctx context.Context, inventoryItemID, locationID string, delta int, reason string) (int, error)
}

var _ StoreAPI = (*shopify.Client)(nil)

// PollConfig bounds the job-completion poll for asynchronous cancellations.
type PollConfig struct {
	Attempts int
	Interval time.Duration
}

// Config configures a Service.
type Config struct {
	Generator     *generator.Generator
	Store         storage.Store // audit log, may be nil
	Logger        *zap.Logger
	Poll          PollConfig
	ClearPageSize int
	Baseline      int              // reset level when a request does not choose one; zero drains stock
	Source        rand.Source      // randomness for reconciliation draws, tests pin it
	Clock         func() time.Time // "now" source, tests pin it
}

// Service runs the generation pipeline and the remote mutation workflows.
// Each batch is processed serially: batches are small and serial execution
// keeps partial-failure bookkeeping trivial. One Service serves concurrent
// requests, so its random source is guarded.
type Service struct {
	gen      *generator.Generator
	store    storage.Store
	logger   *zap.Logger
	poll     PollConfig
	pageSize int
	baseline int
	rng      *rand.Rand
	now      func() time.Time
}

// NewService creates a seeding service.
func NewService(cfg Config) *Service {
	s := &Service{
		gen:      cfg.Generator,
		store:    cfg.Store,
		logger:   cfg.Logger,
		poll:     cfg.Poll,
		pageSize: cfg.ClearPageSize,
		baseline: cfg.Baseline,
		rng:      generator.NewSharedRand(cfg.Source),
		now:      cfg.Clock,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.poll.Attempts <= 0 {
		s.poll.Attempts = DefaultPollAttempts
	}
	if s.poll.Interval <= 0 {
		s.poll.Interval = DefaultPollInterval
	}
	if s.pageSize <= 0 {
		s.pageSize = DefaultClearPageSize
	}
	if s.baseline < 0 {
		s.baseline = DefaultInventoryBaseline
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Baseline returns the configured inventory reset level.
func (s *Service) Baseline() int {
	return s.baseline
}

// recordRun persists an audit row. Audit is best-effort: failures are logged
// and never fail the request.
func (s *Service) recordRun(ctx context.Context, run *storage.Run) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Warn("audit run not saved",
			zap.String("kind", string(run.Kind)),
			zap.String("shop", run.Shop),
			zap.Error(err))
	}
}
