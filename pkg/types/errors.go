package types

import "errors"

// Request-fatal errors. Everything else in a batch is recorded per item
// and the batch continues.
var (
	// ErrMissingCredentials indicates the shop URL or access token was not supplied.
	ErrMissingCredentials = errors.New("missing shop credentials")
	// ErrEmptyCatalog indicates the store has no usable products.
	ErrEmptyCatalog = errors.New("no products found in store")
	// ErrEmptyGeneration indicates the model produced zero usable records.
	ErrEmptyGeneration = errors.New("generation produced no records")
	// ErrInvalidCount indicates a record count outside the accepted range.
	ErrInvalidCount = errors.New("invalid record count")
	// ErrInvalidDateRange indicates a date window outside the accepted range.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInvalidAdjustmentRange indicates an adjustment bound with min > max.
	ErrInvalidAdjustmentRange = errors.New("invalid adjustment range")
)
