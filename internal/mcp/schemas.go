package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// credentialProperties are the shop_url/access_token arguments every tool
// requires. Credentials travel with each call; the server keeps none.
func credentialProperties() map[string]interface{} {
	return map[string]interface{}{
		"shop_url": map[string]interface{}{
			"type":        "string",
			"description": "Shop domain, e.g. my-dev-store.myshopify.com",
		},
		"access_token": map[string]interface{}{
			"type":        "string",
			"description": "Admin API access token for the shop",
		},
	}
}

// seedOrdersTool returns the tool definition for seed_orders
func seedOrdersTool() mcp.Tool {
	props := credentialProperties()
	props["count"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of orders to create (1-250)",
		"default":     10,
		"minimum":     1,
		"maximum":     250,
	}
	props["date_range_days"] = map[string]interface{}{
		"type":        "integer",
		"description": "Spread order timestamps over this many trailing days (1-365)",
		"default":     30,
		"minimum":     1,
		"maximum":     365,
	}
	return mcp.Tool{
		Name:        "seed_orders",
		Description: "Generate synthetic orders from the shop's catalog and create them via draft orders",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"shop_url", "access_token"},
		},
	}
}

// seedInventoryTool returns the tool definition for seed_inventory
func seedInventoryTool() mcp.Tool {
	props := credentialProperties()
	props["count"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of inventory adjustments to apply (1-250)",
		"default":     10,
		"minimum":     1,
		"maximum":     250,
	}
	props["min_adjustment"] = map[string]interface{}{
		"type":        "integer",
		"description": "Lower bound for adjustment deltas",
		"default":     -5,
	}
	props["max_adjustment"] = map[string]interface{}{
		"type":        "integer",
		"description": "Upper bound for adjustment deltas",
		"default":     10,
	}
	return mcp.Tool{
		Name:        "seed_inventory",
		Description: "Generate synthetic inventory adjustments and apply them to the shop's primary location",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"shop_url", "access_token"},
		},
	}
}

// previewDataTool returns the tool definition for preview_data
func previewDataTool() mcp.Tool {
	props := credentialProperties()
	props["count"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of sample records per kind (1-10)",
		"default":     2,
		"minimum":     1,
		"maximum":     10,
	}
	return mcp.Tool{
		Name:        "preview_data",
		Description: "Generate sample orders and adjustments from the live catalog without applying anything",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"shop_url", "access_token"},
		},
	}
}

// clearOrdersTool returns the tool definition for clear_orders
func clearOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_orders",
		Description: "Cancel every order tagged AI_GENERATED in the shop",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: credentialProperties(),
			Required:   []string{"shop_url", "access_token"},
		},
	}
}

// resetInventoryTool returns the tool definition for reset_inventory
func resetInventoryTool() mcp.Tool {
	props := credentialProperties()
	props["baseline"] = map[string]interface{}{
		"type":        "integer",
		"description": "Stock level to restore every variant to; 0 drains all stock",
		"default":     10,
		"minimum":     0,
	}
	return mcp.Tool{
		Name:        "reset_inventory",
		Description: "Sweep every variant's stock back to a baseline level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"shop_url", "access_token"},
		},
	}
}

// getHistoryTool returns the tool definition for get_history
func getHistoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_history",
		Description: "List recent generation runs recorded in the audit log",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"shop_url": map[string]interface{}{
					"type":        "string",
					"description": "Shop domain the runs were recorded for",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one run kind",
					"enum":        []string{"orders", "inventory", "preview", "clear", "reset"},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"shop_url"},
		},
	}
}
