package storage

import (
	"context"
	"time"
)

// RunKind classifies an audit run.
type RunKind string

// Run kinds, one per operation that touches or previews store data.
const (
	RunKindOrders    RunKind = "orders"
	RunKindInventory RunKind = "inventory"
	RunKindPreview   RunKind = "preview"
	RunKindClear     RunKind = "clear"
	RunKindReset     RunKind = "reset"
)

// Valid reports whether the kind is one of the known run kinds.
func (k RunKind) Valid() bool {
	switch k {
	case RunKindOrders, RunKindInventory, RunKindPreview, RunKindClear, RunKindReset:
		return true
	}
	return false
}

// Run is one audit row: a single generation or sweep against one shop.
// Payload holds the JSON-serialized outcome for later inspection.
type Run struct {
	ID        string
	Shop      string
	Kind      RunKind
	Requested int
	Succeeded int
	Failed    int
	Payload   []byte
	CreatedAt time.Time
}

// Store persists audit runs. Persistence is best-effort from the caller's
// perspective: a failed save never fails the request that produced the run.
type Store interface {
	// SaveRun inserts a run, assigning ID and CreatedAt if unset.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun fetches one run by id. Returns ErrNotFound when absent.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRecentRuns returns the most recent runs for a shop, newest
	// first, optionally filtered by kind (empty matches all).
	ListRecentRuns(ctx context.Context, shop string, kind RunKind, limit int) ([]*Run, error)

	// Close releases the underlying database.
	Close() error
}
