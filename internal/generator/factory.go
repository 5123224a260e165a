package generator

import (
	"fmt"
	"os"
	"strings"
)

// Config holds provider configuration
type Config struct {
	Provider    string
	APIKey      string
	PromptsPath string
}

// NewFromEnv creates a provider based on environment variables
// Priority:
// 1. STORESEED_GENERATOR (openai, local)
// 2. Check for OPENAI_API_KEY
// 3. Default to local if no API key found
func NewFromEnv() (Provider, error) {
	provider := os.Getenv(EnvProvider)
	apiKey := os.Getenv(EnvOpenAIAPIKey)

	prompts, err := LoadPrompts(os.Getenv(EnvPromptsPath))
	if err != nil {
		return nil, err
	}

	// Explicit provider selection
	if provider != "" {
		provider = strings.ToLower(provider)
		switch provider {
		case ProviderOpenAI:
			return NewOpenAIProvider(apiKey, prompts)
		case ProviderLocal:
			return NewLocalProvider()
		default:
			return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupported, provider)
		}
	}

	// Auto-detect based on available API key
	if apiKey != "" {
		return NewOpenAIProvider(apiKey, prompts)
	}

	// Fallback to local provider
	return NewLocalProvider()
}

// New creates a provider with explicit configuration. An empty Provider
// auto-detects the same way NewFromEnv does: the model path when an API key
// is set, local otherwise.
func New(cfg Config) (Provider, error) {
	prompts, err := LoadPrompts(cfg.PromptsPath)
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, prompts)
	case ProviderLocal:
		return NewLocalProvider()
	case "":
		if cfg.APIKey != "" {
			return NewOpenAIProvider(cfg.APIKey, prompts)
		}
		return NewLocalProvider()
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupported, cfg.Provider)
	}
}

// DetectProvider returns the provider that would be used based on current environment
func DetectProvider() string {
	provider := os.Getenv(EnvProvider)
	if provider != "" {
		return strings.ToLower(provider)
	}

	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}

	return ProviderLocal
}
