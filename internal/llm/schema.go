package llm

// BuildRecordsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// The completion must be an array of objects carrying at least key and value.
// Extra fields are tolerated; they are dropped by NormalizeRecordsJSON.
func BuildRecordsJSONSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key":      map[string]any{"type": "string"},
				"value":    map[string]any{"type": "string"},
				"comments": map[string]any{"type": "string"},
			},
			"required": []string{"key", "value"},
		},
	}
}
