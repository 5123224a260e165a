package types

import (
	"fmt"
	"time"
)

// AdjustmentReason classifies why an inventory level changed.
type AdjustmentReason string

// Accepted adjustment reasons. These mirror the remote API's reason enum.
const (
	ReasonRecount  AdjustmentReason = "recount"
	ReasonReceived AdjustmentReason = "received"
	ReasonDamaged  AdjustmentReason = "damaged"
	ReasonSold     AdjustmentReason = "sold"
)

// AdjustmentReasons lists every accepted reason in a stable order.
var AdjustmentReasons = []AdjustmentReason{ReasonRecount, ReasonReceived, ReasonDamaged, ReasonSold}

// Valid reports whether the reason is one of the accepted values.
func (r AdjustmentReason) Valid() bool {
	switch r {
	case ReasonRecount, ReasonReceived, ReasonDamaged, ReasonSold:
		return true
	}
	return false
}

// InventoryAdjustment is a generated stock delta for a single variant.
type InventoryAdjustment struct {
	VariantID  int64            `json:"variant_id"`
	ProductID  int64            `json:"product_id"`
	Adjustment int              `json:"adjustment"`
	Reason     AdjustmentReason `json:"reason"`
	Timestamp  time.Time        `json:"timestamp"`
}

// AdjustmentRange bounds the magnitude of generated adjustments. The bound is
// caller-supplied configuration, not a fixed constant: the model path defaults
// to [-5,10] and the offline path to [-10,20].
type AdjustmentRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Validate checks that the range is non-empty.
func (r AdjustmentRange) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidAdjustmentRange, r.Min, r.Max)
	}
	return nil
}

// Clamp forces v into the range.
func (r AdjustmentRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Default adjustment bounds for the two generation paths.
var (
	DefaultModelAdjustmentRange = AdjustmentRange{Min: -5, Max: 10}
	DefaultLocalAdjustmentRange = AdjustmentRange{Min: -10, Max: 20}
)
