package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Provider configuration
const (
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	// DefaultOpenAIModel is the chat model used for structured output.
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the OpenAI API root.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// Retry configuration
	MaxRetries        = 3
	InitialBackoffMs  = 100
	MaxBackoffMs      = 5000
	BackoffMultiplier = 2.0
)

// Environment variables
const (
	EnvProvider      = "STORESEED_GENERATOR"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIModel   = "STORESEED_OPENAI_MODEL"
	EnvOpenAIBaseURL = "STORESEED_OPENAI_BASE_URL"
	EnvPromptsPath   = "STORESEED_PROMPTS_PATH"
)

// OpenAIProvider generates synthetic records through one OpenAI
// chat-completions call with a strict JSON schema response format.
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	prompts    *Prompts
	httpClient *http.Client
}

// NewOpenAIProvider creates a model-backed provider. An empty apiKey falls
// back to the OPENAI_API_KEY environment variable.
func NewOpenAIProvider(apiKey string, prompts *Prompts) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvOpenAIAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", types.ErrMissingCredentials, EnvOpenAIAPIKey)
	}

	model := os.Getenv(EnvOpenAIModel)
	if model == "" {
		model = DefaultOpenAIModel
	}
	baseURL := os.Getenv(EnvOpenAIBaseURL)
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	return &OpenAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		prompts: prompts,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// wire shapes for the model's structured output
type wireOrder struct {
	Customer  types.Customer `json:"customer"`
	LineItems []wireLineItem `json:"line_items"`
	CreatedAt string         `json:"created_at"`
	Tags      []string       `json:"tags"`
}

type wireLineItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
	Taxable   bool  `json:"taxable"`
}

type wireAdjustment struct {
	VariantID  int64  `json:"variant_id"`
	ProductID  int64  `json:"product_id"`
	Adjustment int    `json:"adjustment"`
	Reason     string `json:"reason"`
	Timestamp  string `json:"timestamp"`
}

func (o *OpenAIProvider) GenerateOrders(ctx context.Context, req OrderRequest) ([]types.SyntheticOrder, error) {
	productsJSON, err := req.Projection.ForPrompt(0)
	if err != nil {
		return nil, err
	}

	prompt := o.prompts.OrderPrompt(req.Count, req.DateRangeDays, productsJSON)
	content, err := o.callChat(ctx, "synthetic_orders", orderResponseSchema(), prompt)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Orders []wireOrder `json:"orders"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}

	orders := make([]types.SyntheticOrder, 0, len(envelope.Orders))
	for _, wo := range envelope.Orders {
		order := types.SyntheticOrder{
			Customer:  wo.Customer,
			CreatedAt: parseWireTime(wo.CreatedAt),
			Tags:      wo.Tags,
		}
		for _, li := range wo.LineItems {
			order.LineItems = append(order.LineItems, types.LineItem{
				VariantID: li.VariantID,
				Quantity:  li.Quantity,
				Taxable:   li.Taxable,
			})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (o *OpenAIProvider) GenerateAdjustments(ctx context.Context, req AdjustmentRequest) ([]types.InventoryAdjustment, error) {
	productsJSON, err := req.Projection.ForPrompt(0)
	if err != nil {
		return nil, err
	}

	prompt := o.prompts.InventoryPrompt(req.Count, req.Bounds.Min, req.Bounds.Max, productsJSON)
	schema := adjustmentResponseSchema(req.Bounds.Min, req.Bounds.Max)
	content, err := o.callChat(ctx, "inventory_adjustments", schema, prompt)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Adjustments []wireAdjustment `json:"adjustments"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSchema, err)
	}

	adjustments := make([]types.InventoryAdjustment, 0, len(envelope.Adjustments))
	for _, wa := range envelope.Adjustments {
		adjustments = append(adjustments, types.InventoryAdjustment{
			VariantID:  wa.VariantID,
			ProductID:  wa.ProductID,
			Adjustment: req.Bounds.Clamp(wa.Adjustment),
			Reason:     types.AdjustmentReason(wa.Reason),
			Timestamp:  parseWireTime(wa.Timestamp),
		})
	}
	return adjustments, nil
}

// callChat issues one chat-completions request with a strict structured
// output schema and returns the raw message content. Transport failures are
// retried with backoff; schema violations surface from the caller's decode
// and are never retried.
func (o *OpenAIProvider) callChat(ctx context.Context, schemaName string, schema map[string]interface{}, prompt string) ([]byte, error) {
	reqBody := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": o.prompts.BaseInstructions},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   schemaName,
				"strict": true,
				"schema": schema,
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	config := DefaultRetryConfig()
	content, err := retryWithBackoff(ctx, config, func() ([]byte, error) {
		return o.roundTrip(ctx, body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d retries: %v", ErrProviderFailed, config.MaxRetries, err)
	}
	return content, nil
}

func (o *OpenAIProvider) roundTrip(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
				Refusal string `json:"refusal"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	if apiResp.Choices[0].Message.Refusal != "" {
		return nil, fmt.Errorf("model refused: %s", apiResp.Choices[0].Message.Refusal)
	}

	return []byte(apiResp.Choices[0].Message.Content), nil
}

func (o *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

func (o *OpenAIProvider) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}

// parseWireTime parses a model-supplied timestamp, tolerating a missing
// offset. A zero time is fine: the timestamp distributor reassigns all
// timestamps before anything is applied.
func parseWireTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
