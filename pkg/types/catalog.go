package types

import "github.com/shopspring/decimal"

// CatalogProduct is a read-only snapshot of a store product. Snapshots are
// fetched once per request and never cached across requests.
type CatalogProduct struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Vendor   string           `json:"vendor"`
	Variants []CatalogVariant `json:"variants"`
}

// CatalogVariant is a purchasable configuration of a product carrying its
// own price and inventory count.
type CatalogVariant struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	InventoryQuantity int             `json:"inventory_quantity"`
}
