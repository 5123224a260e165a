// Package types provides shared type definitions for the StoreSeed MCP server.
//
// This package defines the domain records that flow through the generation
// pipeline: catalog snapshots, synthetic orders, and inventory adjustments.
//
// # Core Types
//
// CatalogProduct and CatalogVariant are immutable, request-scoped snapshots
// of the store catalog that generation validates against:
//
//	product := types.CatalogProduct{
//	    ID:    8010986094876,
//	    Title: "Organic Cotton Tee",
//	    Variants: []types.CatalogVariant{
//	        {ID: 44231098171676, Title: "Medium", Price: decimal.NewFromFloat(24.99)},
//	    },
//	}
//
// SyntheticOrder is a generated order awaiting submission. Every order the
// system writes carries the AI_GENERATED tag exactly once so bulk cleanup
// can find it later:
//
//	order.NormalizeTags()
//	if err := order.Validate(); err != nil {
//	    return err
//	}
//
// InventoryAdjustment is a generated stock delta bounded by a caller-supplied
// AdjustmentRange.
//
// # Errors
//
// The request-fatal error values (ErrMissingCredentials, ErrEmptyCatalog,
// ErrEmptyGeneration) live here because every layer needs to classify them.
// Per-item remote failures are never represented as package errors; they are
// collected into batch outcomes and the batch continues.
package types
