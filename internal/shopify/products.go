package shopify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// DefaultProductPageSize is the page size for the catalog fetch. One page of
// 250 covers development stores; pagination past it is not attempted.
const DefaultProductPageSize = 250

const productsQuery = `
{
    products(first: %d) {
        edges {
            node {
                id
                title
                vendor
                variants(first: 250) {
                    edges {
                        node {
                            id
                            title
                            price
                            sku
                            inventoryQuantity
                        }
                    }
                }
            }
        }
    }
}`

// FetchProducts returns a request-scoped catalog snapshot. Products whose
// ids or prices fail to parse are skipped rather than failing the fetch.
func (c *Client) FetchProducts(ctx context.Context) ([]types.CatalogProduct, error) {
	var data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Title    string `json:"title"`
					Vendor   string `json:"vendor"`
					Variants struct {
						Edges []struct {
							Node struct {
								ID                string `json:"id"`
								Title             string `json:"title"`
								Price             string `json:"price"`
								SKU               string `json:"sku"`
								InventoryQuantity int    `json:"inventoryQuantity"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}

	query := fmt.Sprintf(productsQuery, DefaultProductPageSize)
	if err := c.Execute(ctx, query, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	products := make([]types.CatalogProduct, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		node := edge.Node
		productID, err := ParseGID(node.ID)
		if err != nil {
			c.logger.Warn("skipping product with malformed id", zap.String("id", node.ID))
			continue
		}

		product := types.CatalogProduct{
			ID:     productID,
			Title:  node.Title,
			Vendor: node.Vendor,
		}
		for _, ve := range node.Variants.Edges {
			vn := ve.Node
			variantID, err := ParseGID(vn.ID)
			if err != nil {
				c.logger.Warn("skipping variant with malformed id",
					zap.String("id", vn.ID), zap.Int64("product_id", productID))
				continue
			}
			price, err := decimal.NewFromString(vn.Price)
			if err != nil {
				c.logger.Warn("skipping variant with malformed price",
					zap.Int64("variant_id", variantID), zap.String("price", vn.Price))
				continue
			}
			product.Variants = append(product.Variants, types.CatalogVariant{
				ID:                variantID,
				Title:             vn.Title,
				Price:             price,
				SKU:               vn.SKU,
				InventoryQuantity: vn.InventoryQuantity,
			})
		}
		products = append(products, product)
	}

	return products, nil
}
