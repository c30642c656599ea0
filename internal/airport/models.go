package airport

import (
	"context"
	"errors"
	"strings"

	"github.com/paulmach/orb"
	"github.com/yegors/atcopilot/internal/frequencies"
)

// ErrNotFound is returned when no airport matches the requested ICAO code
var ErrNotFound = errors.New("airport not found")

// Record is an airport with its position and raw frequency list.
// It is never modified after construction.
type Record struct {
	ICAOCode    string                     `json:"icao_code"`
	Name        string                     `json:"name,omitempty"`
	Lon         float64                    `json:"lon"`
	Lat         float64                    `json:"lat"`
	Frequencies []frequencies.RawFrequency `json:"frequencies"`
}

// Point returns the airport reference point
func (r *Record) Point() orb.Point {
	return orb.Point{r.Lon, r.Lat}
}

// Resolver looks up an airport by ICAO code. Matching is exact and case-insensitive.
// Implementations return ErrNotFound (possibly wrapped) when nothing matches.
type Resolver interface {
	Resolve(ctx context.Context, icao string) (*Record, error)
}

// NormalizeICAO upper-cases and trims an identifier for comparison
func NormalizeICAO(icao string) string {
	return strings.ToUpper(strings.TrimSpace(icao))
}
