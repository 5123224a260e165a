package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/seeder"
	"github.com/storeseed/storeseed-mcp/internal/shopify"
	"github.com/storeseed/storeseed-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "storeseed-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies. Store
// credentials are never held here: every tool call carries shop_url and
// access_token and gets its own short-lived client.
type Server struct {
	mcp    *server.MCPServer
	seeder *seeder.Service
	store  storage.Store
	logger *zap.Logger
}

// Config configures a Server.
type Config struct {
	Seeder *seeder.Service
	Store  storage.Store // audit log, may be nil
	Logger *zap.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		seeder: cfg.Seeder,
		store:  cfg.Store,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(seedOrdersTool(), s.handleSeedOrders)
	s.mcp.AddTool(seedInventoryTool(), s.handleSeedInventory)
	s.mcp.AddTool(previewDataTool(), s.handlePreviewData)
	s.mcp.AddTool(clearOrdersTool(), s.handleClearOrders)
	s.mcp.AddTool(resetInventoryTool(), s.handleResetInventory)
	s.mcp.AddTool(getHistoryTool(), s.handleGetHistory)
}

// storeClient builds the per-request GraphQL client from tool arguments.
func (s *Server) storeClient(shopURL, accessToken string) (*shopify.Client, error) {
	return shopify.New(shopify.Config{
		ShopURL:     shopURL,
		AccessToken: accessToken,
		Logger:      s.logger,
	})
}
