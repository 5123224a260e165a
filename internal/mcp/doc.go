// Package mcp implements the Model Context Protocol (MCP) server for
// storeseed.
//
// The server exposes six tools to MCP clients:
//   - seed_orders: generate and create synthetic orders in a shop
//   - seed_inventory: generate and apply synthetic inventory adjustments
//   - preview_data: generate sample records without applying them
//   - clear_orders: cancel every order tagged AI_GENERATED
//   - reset_inventory: sweep every variant back to a baseline stock level
//   - get_history: list recent generation runs from the audit log
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport. The server reads
// protocol messages from stdin and writes responses to stdout, which is why
// all logging goes to stderr.
//
// Every tool call carries shop_url and access_token arguments and is served
// by a client built for that call alone. The server holds no store
// credentials and no per-shop state between calls.
package mcp
