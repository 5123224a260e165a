package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// DefaultAPIVersion is the Admin API version requested when the caller does
// not pin one.
const DefaultAPIVersion = "2024-01"

// ErrUnexpectedResponse is returned when the remote API answers with a shape
// the client cannot interpret.
var ErrUnexpectedResponse = errors.New("unexpected response from shopify")

// GraphQLError is a top-level error entry in a GraphQL response.
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLErrors is a non-empty top-level errors list. The whole call failed;
// no data is usable.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ge := range e {
		msgs[i] = ge.Message
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// UserError is a mutation-level validation error reported by the remote API.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors is a non-empty userErrors list on an otherwise successful
// mutation. It is a logical failure, not a transport error: the HTTP call
// succeeded but the mutation was rejected.
type UserErrors []UserError

func (e UserErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ue := range e {
		msgs[i] = ue.Message
	}
	return strings.Join(msgs, "; ")
}

// Config configures a per-request client. There is no process-wide session;
// every request carries its own credentials.
type Config struct {
	ShopURL     string
	AccessToken string
	APIVersion  string       // defaults to DefaultAPIVersion
	Endpoint    string       // full GraphQL endpoint override, used by tests
	HTTPClient  *http.Client // defaults to a 30s-timeout client
	Logger      *zap.Logger
}

// Client is a request-scoped Shopify Admin GraphQL client.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// New creates a client for one shop. Missing credentials fail immediately
// with types.ErrMissingCredentials.
func New(cfg Config) (*Client, error) {
	if cfg.ShopURL == "" {
		return nil, fmt.Errorf("%w: shop URL is empty", types.ErrMissingCredentials)
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token is empty", types.ErrMissingCredentials)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		version := cfg.APIVersion
		if version == "" {
			version = DefaultAPIVersion
		}
		shop := strings.TrimSuffix(cfg.ShopURL, "/")
		if !strings.HasPrefix(shop, "http://") && !strings.HasPrefix(shop, "https://") {
			shop = "https://" + shop
		}
		endpoint = fmt.Sprintf("%s/admin/api/%s/graphql.json", shop, version)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// Execute runs one GraphQL request and unmarshals the data payload into out.
// The response is normalized at this boundary: a top-level errors list
// becomes a GraphQLErrors value, anything else unparseable becomes
// ErrUnexpectedResponse. Mutation userErrors are the caller's to check.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	reqBody := map[string]interface{}{"query": query}
	if len(variables) > 0 {
		reqBody["variables"] = variables
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, truncate(string(bodyBytes), 200))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors GraphQLErrors   `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if len(envelope.Errors) > 0 {
		return envelope.Errors
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 {
		return fmt.Errorf("%w: empty data payload", ErrUnexpectedResponse)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// VerifyShop confirms the credentials by fetching the shop name.
func (c *Client) VerifyShop(ctx context.Context) (string, error) {
	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := c.Execute(ctx, `{ shop { name } }`, nil, &data); err != nil {
		return "", fmt.Errorf("verify shop: %w", err)
	}
	if data.Shop.Name == "" {
		return "", fmt.Errorf("%w: shop query returned no name", ErrUnexpectedResponse)
	}
	return data.Shop.Name, nil
}

// GID helpers. The Admin API addresses objects by global ids of the form
// gid://shopify/ProductVariant/123; the domain model keeps numeric ids.

// VariantGID formats a numeric variant id as a global id.
func VariantGID(id int64) string {
	return fmt.Sprintf("gid://shopify/ProductVariant/%d", id)
}

// ParseGID extracts the trailing numeric id from a global id.
func ParseGID(gid string) (int64, error) {
	idx := strings.LastIndex(gid, "/")
	if idx < 0 || idx == len(gid)-1 {
		return 0, fmt.Errorf("%w: malformed gid %q", ErrUnexpectedResponse, gid)
	}
	id, err := strconv.ParseInt(gid[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed gid %q", ErrUnexpectedResponse, gid)
	}
	return id, nil
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
