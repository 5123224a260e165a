package types

import (
	"fmt"
	"time"
)

// SyntheticTag marks every record this system writes to a store, so bulk
// cleanup can find them again.
const SyntheticTag = "AI_GENERATED"

// Customer holds the synthetic customer identity attached to an order.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LineItem references a catalog variant with a purchase quantity.
type LineItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
	Taxable   bool  `json:"taxable"`
}

// SyntheticOrder is a generated order awaiting submission. LineItems must be
// non-empty and every VariantID must resolve against the catalog snapshot the
// order was generated from; the reconciler enforces both.
type SyntheticOrder struct {
	Customer  Customer   `json:"customer"`
	LineItems []LineItem `json:"line_items"`
	CreatedAt time.Time  `json:"created_at"`
	Tags      []string   `json:"tags"`
}

// Validate checks the structural invariants of an order.
func (o *SyntheticOrder) Validate() error {
	if len(o.LineItems) == 0 {
		return fmt.Errorf("order has no line items")
	}
	for i, li := range o.LineItems {
		if li.VariantID <= 0 {
			return fmt.Errorf("line item %d: variant id must be positive", i)
		}
		if li.Quantity < 1 {
			return fmt.Errorf("line item %d: quantity must be >= 1", i)
		}
	}
	if !o.Tagged() {
		return fmt.Errorf("order is missing the %s tag", SyntheticTag)
	}
	return nil
}

// Tagged reports whether the synthetic marker tag is present.
func (o *SyntheticOrder) Tagged() bool {
	for _, tag := range o.Tags {
		if tag == SyntheticTag {
			return true
		}
	}
	return false
}

// NormalizeTags ensures the synthetic marker tag appears exactly once,
// regardless of how many times the model emitted it.
func (o *SyntheticOrder) NormalizeTags() {
	tags := make([]string, 0, len(o.Tags)+1)
	for _, tag := range o.Tags {
		if tag == SyntheticTag {
			continue
		}
		tags = append(tags, tag)
	}
	o.Tags = append(tags, SyntheticTag)
}
