package webhook

// NormalizeValue flattens an Airtable cell value into a plain answer value.
// Linked records and select options arrive as objects carrying a "name" (or
// "value") attribute; arrays are normalized element-wise with empty elements
// dropped; scalars and nil pass through unchanged.
func NormalizeValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, 0, len(v))

		for _, item := range v {
			normalized := NormalizeValue(item)
			if normalized == nil {
				continue
			}

			out = append(out, normalized)
		}

		return out
	case map[string]any:
		if name, ok := v["name"]; ok {
			return name
		}

		if val, ok := v["value"]; ok {
			return val
		}

		return v
	default:
		return value
	}
}
