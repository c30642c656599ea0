package frequencies

import (
	"strconv"
	"strings"
)

const unitMHz = "MHz"

// FormatMHz normalises a raw value into the display form "<value> MHz".
// Values that already carry the unit are only trimmed.
func FormatMHz(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if strings.HasSuffix(strings.ToUpper(v), strings.ToUpper(unitMHz)) {
		v = strings.TrimSpace(v[:len(v)-len(unitMHz)])
		if v == "" {
			return ""
		}
	}
	return v + " " + unitMHz
}

// ValueString converts a decoded JSON value (string or number) into a raw value
func ValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	default:
		return ""
	}
}
