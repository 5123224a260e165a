// Package httpapi exposes the seeding operations as a JSON HTTP API for
// callers that are not MCP clients. Routes mirror the tool surface:
// generate-orders, generate-inventory, preview, clear-orders,
// reset-inventory, health, and history.
package httpapi
