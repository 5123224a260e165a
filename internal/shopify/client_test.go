package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// newFakeShop starts a GraphQL endpoint whose responses come from respond,
// keyed on the incoming query text.
func newFakeShop(t *testing.T, respond func(query string, variables map[string]interface{}) interface{}) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(respond(body.Query, body.Variables))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{
		ShopURL:     "dev-store.myshopify.com",
		AccessToken: "test-token",
		Endpoint:    server.URL,
	})
	require.NoError(t, err)
	return server, client
}

func data(payload interface{}) map[string]interface{} {
	return map[string]interface{}{"data": payload}
}

func TestNewMissingCredentials(t *testing.T) {
	_, err := New(Config{AccessToken: "x"})
	assert.ErrorIs(t, err, types.ErrMissingCredentials)

	_, err = New(Config{ShopURL: "dev-store.myshopify.com"})
	assert.ErrorIs(t, err, types.ErrMissingCredentials)
}

func TestNewDerivesEndpoint(t *testing.T) {
	client, err := New(Config{ShopURL: "dev-store.myshopify.com", AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "https://dev-store.myshopify.com/admin/api/2024-01/graphql.json", client.endpoint)

	client, err = New(Config{ShopURL: "https://dev-store.myshopify.com/", AccessToken: "t", APIVersion: "2024-07"})
	require.NoError(t, err)
	assert.Equal(t, "https://dev-store.myshopify.com/admin/api/2024-07/graphql.json", client.endpoint)
}

func TestExecuteGraphQLErrors(t *testing.T) {
	_, client := newFakeShop(t, func(query string, _ map[string]interface{}) interface{} {
		return map[string]interface{}{
			"errors": []map[string]string{{"message": "Throttled"}, {"message": "Bad field"}},
		}
	})

	var out struct{}
	err := client.Execute(context.Background(), `{ shop { name } }`, nil, &out)

	var gqlErrs GraphQLErrors
	require.ErrorAs(t, err, &gqlErrs)
	assert.Len(t, gqlErrs, 2)
	assert.Contains(t, err.Error(), "Throttled")
}

func TestExecuteTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := New(Config{ShopURL: "s.myshopify.com", AccessToken: "test-token", Endpoint: server.URL})
	require.NoError(t, err)

	err = client.Execute(context.Background(), `{ shop { name } }`, nil, nil)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestVerifyShop(t *testing.T) {
	_, client := newFakeShop(t, func(query string, _ map[string]interface{}) interface{} {
		return data(map[string]interface{}{"shop": map[string]string{"name": "Dev Store"}})
	})

	name, err := client.VerifyShop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dev Store", name)
}

func TestGIDHelpers(t *testing.T) {
	assert.Equal(t, "gid://shopify/ProductVariant/42", VariantGID(42))

	id, err := ParseGID("gid://shopify/Product/8010986094876")
	require.NoError(t, err)
	assert.Equal(t, int64(8010986094876), id)

	_, err = ParseGID("not-a-gid")
	assert.Error(t, err)

	_, err = ParseGID("gid://shopify/Product/")
	assert.Error(t, err)
}

func TestFetchProducts(t *testing.T) {
	_, client := newFakeShop(t, func(query string, _ map[string]interface{}) interface{} {
		return data(map[string]interface{}{
			"products": map[string]interface{}{
				"edges": []map[string]interface{}{
					{
						"node": map[string]interface{}{
							"id":     "gid://shopify/Product/100",
							"title":  "Organic Cotton Tee",
							"vendor": "Acme Apparel",
							"variants": map[string]interface{}{
								"edges": []map[string]interface{}{
									{"node": map[string]interface{}{
										"id": "gid://shopify/ProductVariant/10", "title": "Small",
										"price": "5.00", "sku": "TEE-S", "inventoryQuantity": 12,
									}},
									{"node": map[string]interface{}{
										"id": "gid://shopify/ProductVariant/11", "title": "Medium",
										"price": "7.50", "sku": "TEE-M", "inventoryQuantity": 3,
									}},
									{"node": map[string]interface{}{
										// Malformed price: variant is skipped, fetch succeeds.
										"id": "gid://shopify/ProductVariant/12", "title": "Large",
										"price": "n/a", "sku": "TEE-L", "inventoryQuantity": 0,
									}},
								},
							},
						},
					},
				},
			},
		})
	})

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, int64(100), products[0].ID)
	assert.Equal(t, "Acme Apparel", products[0].Vendor)
	require.Len(t, products[0].Variants, 2)
	assert.Equal(t, "5.00", products[0].Variants[0].Price.StringFixed(2))
	assert.Equal(t, 3, products[0].Variants[1].InventoryQuantity)
}

func TestIsUserError(t *testing.T) {
	ue := UserErrors{{Message: "Email is invalid"}}
	assert.True(t, IsUserError(ue))
	assert.False(t, IsUserError(ErrUnexpectedResponse))
	assert.Equal(t, "Email is invalid", ue.Error())
}
