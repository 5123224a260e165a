package shopify

import (
	"context"
	"fmt"
	"strings"
)

const inventoryItemQuery = `
query inventoryItem($id: ID!) {
    productVariant(id: $id) {
        inventoryItem {
            id
        }
    }
}`

// InventoryItemID resolves the remote inventory-item handle for a variant.
func (c *Client) InventoryItemID(ctx context.Context, variantID int64) (string, error) {
	var data struct {
		ProductVariant *struct {
			InventoryItem *struct {
				ID string `json:"id"`
			} `json:"inventoryItem"`
		} `json:"productVariant"`
	}

	variables := map[string]interface{}{"id": VariantGID(variantID)}
	if err := c.Execute(ctx, inventoryItemQuery, variables, &data); err != nil {
		return "", fmt.Errorf("resolve inventory item: %w", err)
	}
	if data.ProductVariant == nil || data.ProductVariant.InventoryItem == nil {
		return "", fmt.Errorf("%w: no inventory item for variant %d", ErrUnexpectedResponse, variantID)
	}
	return data.ProductVariant.InventoryItem.ID, nil
}

const firstLocationQuery = `
{
    locations(first: 1) {
        edges {
            node {
                id
            }
        }
    }
}`

// PrimaryLocationID returns the store's first location. Resolved once per
// batch and reused for every adjustment in it.
func (c *Client) PrimaryLocationID(ctx context.Context) (string, error) {
	var data struct {
		Locations struct {
			Edges []struct {
				Node struct {
					ID string `json:"id"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"locations"`
	}

	if err := c.Execute(ctx, firstLocationQuery, nil, &data); err != nil {
		return "", fmt.Errorf("resolve location: %w", err)
	}
	if len(data.Locations.Edges) == 0 {
		return "", fmt.Errorf("%w: store has no locations", ErrUnexpectedResponse)
	}
	return data.Locations.Edges[0].Node.ID, nil
}

const inventoryAdjustMutation = `
mutation inventoryAdjustQuantity($input: InventoryAdjustQuantityInput!) {
    inventoryAdjustQuantity(input: $input) {
        inventoryLevel {
            id
            available
        }
        userErrors {
            field
            message
        }
    }
}`

// AdjustInventory applies a single stock delta at a location. The reason is
// upper-cased on the wire to match the remote enum.
func (c *Client) AdjustInventory(ctx context.Context, inventoryItemID, locationID string, delta int, reason string) (available int, err error) {
	var data struct {
		InventoryAdjustQuantity struct {
			InventoryLevel *struct {
				ID        string `json:"id"`
				Available int    `json:"available"`
			} `json:"inventoryLevel"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"inventoryAdjustQuantity"`
	}

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"inventoryItemId": inventoryItemID,
			"locationId":      locationID,
			"availableDelta":  delta,
			"reason":          strings.ToUpper(reason),
		},
	}
	if err := c.Execute(ctx, inventoryAdjustMutation, variables, &data); err != nil {
		return 0, fmt.Errorf("adjust inventory: %w", err)
	}
	if len(data.InventoryAdjustQuantity.UserErrors) > 0 {
		return 0, data.InventoryAdjustQuantity.UserErrors
	}
	if data.InventoryAdjustQuantity.InventoryLevel == nil {
		return 0, fmt.Errorf("%w: inventory level missing", ErrUnexpectedResponse)
	}
	return data.InventoryAdjustQuantity.InventoryLevel.Available, nil
}
