// Package catalog narrows raw store catalog data into a request-scoped
// projection that is safe to embed in a model prompt and fast to validate
// against.
//
// # Basic Usage
//
//	proj := catalog.NewProjection(products)
//	if proj.Empty() {
//	    return types.ErrEmptyCatalog
//	}
//
//	preview, err := proj.ForPrompt(5)
//	// preview is a compact JSON block of the first products and their
//	// variants, suitable for a generation prompt.
//
// # Validation Helpers
//
// The reconciler uses the projection to repair generated line items:
//
//	if !proj.HasVariant(item.VariantID) {
//	    _, variant, _ := proj.RandomVariant(rng)
//	    item.VariantID = variant.ID
//	}
//
// Projections are immutable after construction and never shared across
// requests.
package catalog
