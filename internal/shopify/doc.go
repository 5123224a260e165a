// Package shopify is a request-scoped client for the Shopify Admin GraphQL
// API.
//
// Every incoming request constructs its own Client from the shop URL and
// access token it carries; there is no process-wide session.
//
//	client, err := shopify.New(shopify.Config{
//	    ShopURL:     "dev-store.myshopify.com",
//	    AccessToken: token,
//	})
//
// # Response Normalization
//
// The remote API reports failures on three levels and Execute normalizes all
// of them at this boundary:
//
//   - transport failures and non-200 statuses wrap ErrUnexpectedResponse
//   - a top-level errors list becomes a GraphQLErrors value
//   - mutation userErrors become a UserErrors value, returned by the typed
//     mutation helpers — a logical failure on an HTTP-success response
//
// Callers distinguish validation from transport with IsUserError.
//
// # Operations
//
// Catalog: FetchProducts. Orders: CreateDraftOrder, CompleteDraftOrder,
// DeleteDraftOrder, TaggedOrders, CancelOrder, JobDone. Inventory:
// InventoryItemID, PrimaryLocationID, AdjustInventory.
package shopify
