package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/yegors/atcopilot/internal/airport"
	"github.com/yegors/atcopilot/internal/airspace"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/internal/frequencies"
)

// ErrHistoryDisabled is returned by history queries when no store is configured
var ErrHistoryDisabled = errors.New("checklist history is disabled")

// ErrInvalidRequest is returned for requests that cannot describe a flight
var ErrInvalidRequest = errors.New("invalid request")

// Airport roles in a flight
const (
	RoleDeparture = "departure"
	RoleArrival   = "arrival"
)

// Reference holds the datasets loaded once at startup. It is never modified after
// construction and is shared by all requests.
type Reference struct {
	Airports  airport.Resolver
	Airspaces *airspace.Set
}

// Request describes one flight to build a checklist for
type Request struct {
	Callsign      string `json:"callsign"`
	AircraftType  string `json:"aircraft_type"`
	PaxCount      int    `json:"pax_count"`
	DepartureICAO string `json:"departure_icao"`
	ArrivalICAO   string `json:"arrival_icao"`
	StartPosition string `json:"start_position"`
}

// Result is a generated checklist with everything it was derived from
type Result struct {
	ID          string                        `json:"id"`
	Checklist   *checklist.Checklist          `json:"checklist"`
	Frequencies []frequencies.PhasedFrequency `json:"frequencies"`
	Roles       frequencies.RoleMap           `json:"roles"`
	Departure   *airport.Record               `json:"departure"`
	Arrival     *airport.Record               `json:"arrival"`
	Route       []orb.Point                   `json:"route"`
	DistanceNM  float64                       `json:"distance_nm"`
	ImageName   string                        `json:"image_name"`
	GeneratedAt time.Time                     `json:"generated_at"`
}

// RouteResult is the route between two airports and the en-route frequencies on it
type RouteResult struct {
	Departure   *airport.Record               `json:"departure,omitempty"`
	Arrival     *airport.Record               `json:"arrival,omitempty"`
	Points      []orb.Point                   `json:"points"`
	DistanceNM  float64                       `json:"distance_nm"`
	Frequencies []frequencies.PhasedFrequency `json:"frequencies"`
	Airspaces   []string                      `json:"airspaces"`
	ImageName   string                        `json:"image_name,omitempty"`
}

// ResolutionError reports an airport that could not be resolved
type ResolutionError struct {
	Role string
	ICAO string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s airport %q: %v", e.Role, e.ICAO, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
