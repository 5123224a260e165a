package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// DefaultPromptProducts caps how many products are serialized into a model
// prompt. Catalogs can hold hundreds of products; the model only needs a
// representative slice to produce plausible references.
const DefaultPromptProducts = 5

// Projection is a request-scoped view of the store catalog. It keeps the
// fetch order of the products and indexes every variant for O(1) validation.
type Projection struct {
	products []types.CatalogProduct
	variants map[int64]pair
	order    []int64 // variant ids in catalog order, for uniform selection
}

type pair struct {
	product types.CatalogProduct
	variant types.CatalogVariant
}

// NewProjection builds a projection from a catalog snapshot. Products without
// variants are kept (they still count toward available_products) but cannot
// be selected for line items.
func NewProjection(products []types.CatalogProduct) *Projection {
	p := &Projection{
		products: products,
		variants: make(map[int64]pair),
	}
	for _, product := range products {
		for _, variant := range product.Variants {
			if _, ok := p.variants[variant.ID]; ok {
				continue
			}
			p.variants[variant.ID] = pair{product: product, variant: variant}
			p.order = append(p.order, variant.ID)
		}
	}
	return p
}

// Empty reports whether the projection holds no products at all.
func (p *Projection) Empty() bool {
	return len(p.products) == 0
}

// ProductCount returns the number of products in the snapshot.
func (p *Projection) ProductCount() int {
	return len(p.products)
}

// VariantCount returns the number of distinct variants in the snapshot.
func (p *Projection) VariantCount() int {
	return len(p.order)
}

// Products returns the snapshot in fetch order.
func (p *Projection) Products() []types.CatalogProduct {
	return p.products
}

// HasVariant reports whether the variant id resolves in the snapshot.
func (p *Projection) HasVariant(id int64) bool {
	_, ok := p.variants[id]
	return ok
}

// Variant returns the (product, variant) pair for an id.
func (p *Projection) Variant(id int64) (types.CatalogProduct, types.CatalogVariant, bool) {
	pr, ok := p.variants[id]
	return pr.product, pr.variant, ok
}

// RandomVariant selects a uniformly random (product, variant) pair from the
// snapshot. Returns false when the catalog has no variants.
func (p *Projection) RandomVariant(rng *rand.Rand) (types.CatalogProduct, types.CatalogVariant, bool) {
	if len(p.order) == 0 {
		return types.CatalogProduct{}, types.CatalogVariant{}, false
	}
	id := p.order[rng.Intn(len(p.order))]
	pr := p.variants[id]
	return pr.product, pr.variant, true
}

// promptProduct is the narrowed product shape embedded in model prompts.
// Inventory counts and vendor are deliberately omitted: they inflate the
// prompt without improving the generated references.
type promptProduct struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Variants []promptVariant `json:"variants"`
}

type promptVariant struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	SKU   string `json:"sku,omitempty"`
}

// ForPrompt serializes the first maxProducts products as a compact JSON block
// safe to embed in a model prompt. A maxProducts <= 0 uses the default cap.
func (p *Projection) ForPrompt(maxProducts int) (string, error) {
	if maxProducts <= 0 {
		maxProducts = DefaultPromptProducts
	}
	n := len(p.products)
	if n > maxProducts {
		n = maxProducts
	}

	preview := make([]promptProduct, 0, n)
	for _, product := range p.products[:n] {
		pp := promptProduct{ID: product.ID, Title: product.Title}
		for _, variant := range product.Variants {
			pp.Variants = append(pp.Variants, promptVariant{
				ID:    variant.ID,
				Title: variant.Title,
				Price: variant.Price.StringFixed(2),
				SKU:   variant.SKU,
			})
		}
		preview = append(preview, pp)
	}

	out, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal catalog preview: %w", err)
	}
	return string(out), nil
}
