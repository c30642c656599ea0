package frequencies

import (
	"encoding/json"
	"strings"
)

// ParseRaw decodes a frequency list attribute defensively. A native list is used as-is,
// a string is decoded as a JSON list, anything else yields an empty list. It never
// fails: malformed payloads and malformed entries are dropped.
func ParseRaw(v any) []RawFrequency {
	var items []any

	switch t := v.(type) {
	case []any:
		items = t
	case []map[string]any:
		items = make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
	case []RawFrequency:
		return t
	case string:
		if err := json.Unmarshal([]byte(t), &items); err != nil {
			return []RawFrequency{}
		}
	default:
		return []RawFrequency{}
	}

	out := make([]RawFrequency, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		out = append(out, RawFrequency{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(ValueString(obj["value"])),
		})
	}
	return out
}
