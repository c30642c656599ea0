package checklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yegors/atcopilot/internal/frequencies"
)

// ErrMissingField is returned by Args accessors when a field was not supplied
var ErrMissingField = errors.New("missing field")

// Field names a value a rule formatter can ask for
type Field string

const (
	FieldCallsign     Field = "cs"
	FieldAircraftType Field = "airplane_type"
	FieldPax          Field = "num_pax"
	FieldDeparture    Field = "dep"
	FieldArrival      Field = "arr"
	FieldPosition     Field = "position"
	FieldGround       Field = "ground"
	FieldInfo         Field = "info"
	FieldFIS          Field = "fis"
	FieldArrInfo      Field = "arr_info"
	FieldArrApron     Field = "arr_apron"
)

// KnownFields lists every field an AircraftContext can supply
var KnownFields = []Field{
	FieldCallsign,
	FieldAircraftType,
	FieldPax,
	FieldDeparture,
	FieldArrival,
	FieldPosition,
	FieldGround,
	FieldInfo,
	FieldFIS,
	FieldArrInfo,
	FieldArrApron,
}

// IsKnown reports whether f is a field an AircraftContext can supply
func (f Field) IsKnown() bool {
	for _, k := range KnownFields {
		if f == k {
			return true
		}
	}
	return false
}

// AircraftContext is the per-request data checklist lines are formatted from
type AircraftContext struct {
	Callsign     string
	AircraftType string
	PaxCount     int
	Departure    string
	Arrival      string
	Position     string
	Roles        frequencies.RoleMap
}

// Fields returns the fields that are available for formatting. Text fields are only
// present when non-blank; the passenger count and all roles are always present.
func (c AircraftContext) Fields() map[Field]any {
	out := map[Field]any{
		FieldPax:      c.PaxCount,
		FieldGround:   c.Roles.Ground,
		FieldInfo:     c.Roles.Info,
		FieldFIS:      append([]frequencies.Frequency{}, c.Roles.FIS...),
		FieldArrInfo:  c.Roles.ArrInfo,
		FieldArrApron: c.Roles.ArrApron,
	}

	text := map[Field]string{
		FieldCallsign:     c.Callsign,
		FieldAircraftType: c.AircraftType,
		FieldDeparture:    c.Departure,
		FieldArrival:      c.Arrival,
		FieldPosition:     c.Position,
	}
	for f, v := range text {
		if v = strings.TrimSpace(v); v != "" {
			out[f] = v
		}
	}
	return out
}

// Args is the subset of context fields handed to one formatter
type Args map[Field]any

// Has reports whether f was supplied
func (a Args) Has(f Field) bool {
	_, ok := a[f]
	return ok
}

// String returns a text field
func (a Args) String(f Field) (string, error) {
	v, ok := a[f]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, f)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Int returns a numeric field
func (a Args) Int(f Field) (int, error) {
	v, ok := a[f]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, f)
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %s is %T, not a number", f, v)
	}
	return n, nil
}

// Station returns a single role. The empty placeholder is a valid result.
func (a Args) Station(f Field) (frequencies.Frequency, error) {
	v, ok := a[f]
	if !ok {
		return frequencies.Frequency{}, fmt.Errorf("%w: %s", ErrMissingField, f)
	}
	switch t := v.(type) {
	case frequencies.Frequency:
		return t, nil
	case []frequencies.Frequency:
		if len(t) == 0 {
			return frequencies.Frequency{}, nil
		}
		return t[0], nil
	default:
		return frequencies.Frequency{}, fmt.Errorf("field %s is %T, not a station", f, v)
	}
}

// Stations returns a list role
func (a Args) Stations(f Field) ([]frequencies.Frequency, error) {
	v, ok := a[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, f)
	}
	switch t := v.(type) {
	case []frequencies.Frequency:
		return t, nil
	case frequencies.Frequency:
		if t.IsZero() {
			return []frequencies.Frequency{}, nil
		}
		return []frequencies.Frequency{t}, nil
	default:
		return nil, fmt.Errorf("field %s is %T, not a station list", f, v)
	}
}

// templateData exposes the args to text/template under their field names
func (a Args) templateData() map[string]any {
	out := make(map[string]any, len(a))
	for f, v := range a {
		out[string(f)] = v
	}
	return out
}
