// Package generator produces synthetic e-commerce records, either through a
// structured-output model call or an offline random provider.
//
// # Providers
//
// Two Provider implementations exist:
//   - OpenAIProvider: one chat-completions call with a strict JSON schema
//     response format. Transport failures retry with exponential backoff;
//     schema violations fail the request with no retry.
//   - LocalProvider: offline random generation straight from the catalog
//     projection. Used when no API key is configured and in tests.
//
// Provider selection follows the environment:
//
//	provider, err := generator.NewFromEnv()
//	// STORESEED_GENERATOR=openai|local, else OPENAI_API_KEY implies openai,
//	// else local.
//
// # Count Normalization
//
// The Generator wrapper enforces the exact-count contract regardless of what
// the provider returned:
//
//	gen := generator.NewGenerator(provider)
//	orders, err := gen.Orders(ctx, generator.OrderRequest{
//	    Projection:    proj,
//	    Count:         10,
//	    DateRangeDays: 30,
//	})
//	// len(orders) == 10, or err is types.ErrEmptyGeneration
//
// Over-production truncates. Shortfalls pad by cloning the last valid record
// and perturbing its timestamp and quantities; a clone of a plausible record
// is cheaper than a second model call. Zero records fail: there is nothing
// to clone from.
package generator
