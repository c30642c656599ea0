package frequencies

import "strings"

// Extract normalises raw airport frequencies into an ordered list with unique names.
// Blank names or values are skipped; on duplicate names the first entry wins even if
// the value differs.
func Extract(raw []RawFrequency) []Frequency {
	seen := make(map[string]struct{}, len(raw))
	out := make([]Frequency, 0, len(raw))

	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		value := strings.TrimSpace(r.Value)
		if name == "" || value == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Frequency{Name: name, Value: FormatMHz(value)})
	}

	return out
}
