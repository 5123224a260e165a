package generator

// orderResponseSchema is the strict JSON schema the model's order output must
// satisfy. A response that violates it fails the request; there is no retry
// on schema violations.
func orderResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"orders": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"customer": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"first_name": map[string]interface{}{"type": "string"},
								"last_name":  map[string]interface{}{"type": "string"},
								"email":      map[string]interface{}{"type": "string"},
							},
							"required":             []string{"first_name", "last_name", "email"},
							"additionalProperties": false,
						},
						"line_items": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"variant_id": map[string]interface{}{"type": "integer"},
									"quantity":   map[string]interface{}{"type": "integer", "minimum": 1},
									"taxable":    map[string]interface{}{"type": "boolean"},
								},
								"required":             []string{"variant_id", "quantity", "taxable"},
								"additionalProperties": false,
							},
						},
						"created_at": map[string]interface{}{"type": "string"},
						"tags": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string"},
						},
					},
					"required":             []string{"customer", "line_items", "created_at", "tags"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"orders"},
		"additionalProperties": false,
	}
}

// adjustmentResponseSchema is the strict JSON schema for inventory
// adjustment output. The magnitude bound is injected per request so the
// caller's configured range reaches the model contract.
func adjustmentResponseSchema(min, max int) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"adjustments": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"variant_id": map[string]interface{}{"type": "integer"},
						"product_id": map[string]interface{}{"type": "integer"},
						"adjustment": map[string]interface{}{
							"type":    "integer",
							"minimum": min,
							"maximum": max,
						},
						"reason": map[string]interface{}{
							"type": "string",
							"enum": []string{"recount", "received", "damaged", "sold"},
						},
						"timestamp": map[string]interface{}{"type": "string"},
					},
					"required":             []string{"variant_id", "product_id", "adjustment", "reason", "timestamp"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"adjustments"},
		"additionalProperties": false,
	}
}
