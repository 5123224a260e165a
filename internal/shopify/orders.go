package shopify

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// draftOrderNote is attached to every synthetic order for audit trails in
// the store admin.
const draftOrderNote = "Synthetic order created by storeseed"

// OrderSummary is the detail extracted from a completed order.
type OrderSummary struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Total             decimal.Decimal `json:"total"`
	FinancialStatus   string          `json:"financial_status"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	ItemCount         int             `json:"items"`
}

// RemoteOrder identifies an existing order in the store.
type RemoteOrder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const draftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
    draftOrderCreate(input: $input) {
        draftOrder {
            id
        }
        userErrors {
            field
            message
        }
    }
}`

// CreateDraftOrder stages a draft order for the synthetic order and returns
// the draft id. A non-empty userErrors list comes back as a UserErrors value.
func (c *Client) CreateDraftOrder(ctx context.Context, order *types.SyntheticOrder) (string, error) {
	lineItems := make([]map[string]interface{}, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		lineItems = append(lineItems, map[string]interface{}{
			"variantId": VariantGID(li.VariantID),
			"quantity":  li.Quantity,
		})
	}

	input := map[string]interface{}{
		"email":     order.Customer.Email,
		"note":      draftOrderNote,
		"tags":      order.Tags,
		"lineItems": lineItems,
	}

	var data struct {
		DraftOrderCreate struct {
			DraftOrder struct {
				ID string `json:"id"`
			} `json:"draftOrder"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"draftOrderCreate"`
	}

	if err := c.Execute(ctx, draftOrderCreateMutation, map[string]interface{}{"input": input}, &data); err != nil {
		return "", fmt.Errorf("create draft order: %w", err)
	}
	if len(data.DraftOrderCreate.UserErrors) > 0 {
		return "", data.DraftOrderCreate.UserErrors
	}
	if data.DraftOrderCreate.DraftOrder.ID == "" {
		return "", fmt.Errorf("%w: draft order id missing", ErrUnexpectedResponse)
	}
	return data.DraftOrderCreate.DraftOrder.ID, nil
}

const draftOrderCompleteMutation = `
mutation draftOrderComplete($id: ID!) {
    draftOrderComplete(id: $id) {
        draftOrder {
            order {
                id
                name
                displayFinancialStatus
                displayFulfillmentStatus
                totalPriceSet {
                    shopMoney {
                        amount
                    }
                }
                customer {
                    email
                }
            }
        }
        userErrors {
            field
            message
        }
    }
}`

// CompleteDraftOrder turns a staged draft into a real order and extracts the
// order detail. ItemCount is not on the wire; the caller fills it from the
// reconciled order.
func (c *Client) CompleteDraftOrder(ctx context.Context, draftID string) (*OrderSummary, error) {
	var data struct {
		DraftOrderComplete struct {
			DraftOrder struct {
				Order *struct {
					ID                       string `json:"id"`
					Name                     string `json:"name"`
					DisplayFinancialStatus   string `json:"displayFinancialStatus"`
					DisplayFulfillmentStatus string `json:"displayFulfillmentStatus"`
					TotalPriceSet            struct {
						ShopMoney struct {
							Amount string `json:"amount"`
						} `json:"shopMoney"`
					} `json:"totalPriceSet"`
					Customer struct {
						Email string `json:"email"`
					} `json:"customer"`
				} `json:"order"`
			} `json:"draftOrder"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"draftOrderComplete"`
	}

	if err := c.Execute(ctx, draftOrderCompleteMutation, map[string]interface{}{"id": draftID}, &data); err != nil {
		return nil, fmt.Errorf("complete draft order: %w", err)
	}
	if len(data.DraftOrderComplete.UserErrors) > 0 {
		return nil, data.DraftOrderComplete.UserErrors
	}
	order := data.DraftOrderComplete.DraftOrder.Order
	if order == nil {
		return nil, fmt.Errorf("%w: completed order missing", ErrUnexpectedResponse)
	}

	total, err := decimal.NewFromString(order.TotalPriceSet.ShopMoney.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed total %q", ErrUnexpectedResponse, order.TotalPriceSet.ShopMoney.Amount)
	}

	return &OrderSummary{
		ID:                order.ID,
		Name:              order.Name,
		Email:             order.Customer.Email,
		Total:             total,
		FinancialStatus:   order.DisplayFinancialStatus,
		FulfillmentStatus: order.DisplayFulfillmentStatus,
	}, nil
}

const draftOrderDeleteMutation = `
mutation draftOrderDelete($input: DraftOrderDeleteInput!) {
    draftOrderDelete(input: $input) {
        deletedId
        userErrors {
            field
            message
        }
    }
}`

// DeleteDraftOrder removes a staged draft. Used as compensating cleanup when
// completion fails after the draft was created.
func (c *Client) DeleteDraftOrder(ctx context.Context, draftID string) error {
	var data struct {
		DraftOrderDelete struct {
			DeletedID  string     `json:"deletedId"`
			UserErrors UserErrors `json:"userErrors"`
		} `json:"draftOrderDelete"`
	}

	input := map[string]interface{}{"id": draftID}
	if err := c.Execute(ctx, draftOrderDeleteMutation, map[string]interface{}{"input": input}, &data); err != nil {
		return fmt.Errorf("delete draft order: %w", err)
	}
	if len(data.DraftOrderDelete.UserErrors) > 0 {
		return data.DraftOrderDelete.UserErrors
	}
	return nil
}

const taggedOrdersQuery = `
query taggedOrders($query: String!, $first: Int!) {
    orders(first: $first, query: $query) {
        edges {
            node {
                id
                name
            }
        }
    }
}`

// TaggedOrders lists orders carrying the synthetic marker tag, up to
// pageSize.
func (c *Client) TaggedOrders(ctx context.Context, pageSize int) ([]RemoteOrder, error) {
	var data struct {
		Orders struct {
			Edges []struct {
				Node RemoteOrder `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	}

	variables := map[string]interface{}{
		"query": fmt.Sprintf("tag:%s", types.SyntheticTag),
		"first": pageSize,
	}
	if err := c.Execute(ctx, taggedOrdersQuery, variables, &data); err != nil {
		return nil, fmt.Errorf("list tagged orders: %w", err)
	}

	orders := make([]RemoteOrder, 0, len(data.Orders.Edges))
	for _, edge := range data.Orders.Edges {
		orders = append(orders, edge.Node)
	}
	return orders, nil
}

const orderCancelMutation = `
mutation orderCancel($orderId: ID!, $reason: OrderCancelReason!, $refund: Boolean!, $restock: Boolean!, $notifyCustomer: Boolean) {
    orderCancel(orderId: $orderId, reason: $reason, refund: $refund, restock: $restock, notifyCustomer: $notifyCustomer) {
        job {
            id
            done
        }
        orderCancelUserErrors {
            field
            message
        }
    }
}`

// CancelOrder requests an asynchronous cancellation (refund, restock, no
// customer notification) and returns the job handle to poll.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (jobID string, done bool, err error) {
	var data struct {
		OrderCancel struct {
			Job *struct {
				ID   string `json:"id"`
				Done bool   `json:"done"`
			} `json:"job"`
			OrderCancelUserErrors UserErrors `json:"orderCancelUserErrors"`
		} `json:"orderCancel"`
	}

	variables := map[string]interface{}{
		"orderId":        orderID,
		"reason":         "OTHER",
		"refund":         true,
		"restock":        true,
		"notifyCustomer": false,
	}
	if err := c.Execute(ctx, orderCancelMutation, variables, &data); err != nil {
		return "", false, fmt.Errorf("cancel order: %w", err)
	}
	if len(data.OrderCancel.OrderCancelUserErrors) > 0 {
		return "", false, data.OrderCancel.OrderCancelUserErrors
	}
	if data.OrderCancel.Job == nil {
		return "", false, fmt.Errorf("%w: cancel job missing", ErrUnexpectedResponse)
	}
	return data.OrderCancel.Job.ID, data.OrderCancel.Job.Done, nil
}

const jobQuery = `
query job($id: ID!) {
    job(id: $id) {
        id
        done
    }
}`

// JobDone reports whether an asynchronous job has completed.
func (c *Client) JobDone(ctx context.Context, jobID string) (bool, error) {
	var data struct {
		Job *struct {
			ID   string `json:"id"`
			Done bool   `json:"done"`
		} `json:"job"`
	}

	if err := c.Execute(ctx, jobQuery, map[string]interface{}{"id": jobID}, &data); err != nil {
		return false, fmt.Errorf("poll job: %w", err)
	}
	if data.Job == nil {
		return false, fmt.Errorf("%w: job %s not found", ErrUnexpectedResponse, jobID)
	}
	return data.Job.Done, nil
}

// IsUserError reports whether err is (or wraps) a remote validation failure
// rather than a transport problem.
func IsUserError(err error) bool {
	var ue UserErrors
	return errors.As(err, &ue)
}
