package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storeseed/storeseed-mcp/pkg/types"
)

// Error codes in the JSON envelope.
const (
	codeInvalidRequest     = "invalid_request"
	codeMissingCredentials = "missing_credentials"
	codeEmptyCatalog       = "empty_catalog"
	codeEmptyGeneration    = "empty_generation"
	codeInternalError      = "internal_error"
	codeRouteNotFound      = "route_not_found"
	codeMethodNotAllowed   = "method_not_allowed"
)

// writeError writes the canonical JSON error envelope.
func writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := map[string]interface{}{
		"error":   code,
		"message": message,
		"status":  status,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSON writes a success payload.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps pipeline sentinels onto HTTP statuses. Credential
// problems are the caller's to fix (401), an empty catalog or bad parameters
// are a bad request (400), and a model that produced nothing usable is a bad
// upstream (502).
func writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrMissingCredentials):
		writeError(ctx, w, codeMissingCredentials, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, types.ErrEmptyCatalog):
		writeError(ctx, w, codeEmptyCatalog, "store has no usable products", http.StatusBadRequest)
	case errors.Is(err, types.ErrEmptyGeneration):
		writeError(ctx, w, codeEmptyGeneration, "generation produced no usable records", http.StatusBadGateway)
	case errors.Is(err, types.ErrInvalidCount),
		errors.Is(err, types.ErrInvalidDateRange),
		errors.Is(err, types.ErrInvalidAdjustmentRange):
		writeError(ctx, w, codeInvalidRequest, err.Error(), http.StatusBadRequest)
	default:
		writeError(ctx, w, codeInternalError, err.Error(), http.StatusInternalServerError)
	}
}
