package frequencies

import (
	"fmt"
	"strings"
)

// Phase is a flight-phase bucket used to group frequencies and checklist lines
type Phase int

const (
	PhaseOther Phase = iota
	PhasePreStartTaxi
	PhaseDepartureTakeoff
	PhaseEnrouteCruise
	PhaseArrivalTrafficCircuit
	PhaseAfterLandingApron
)

// CanonicalPhases is the order phases are walked everywhere. Other is never part of it.
var CanonicalPhases = []Phase{
	PhasePreStartTaxi,
	PhaseDepartureTakeoff,
	PhaseEnrouteCruise,
	PhaseArrivalTrafficCircuit,
	PhaseAfterLandingApron,
}

var phaseLabels = map[Phase]string{
	PhaseOther:                 "Other",
	PhasePreStartTaxi:          "Pre-Start / Taxi",
	PhaseDepartureTakeoff:      "Departure / Takeoff",
	PhaseEnrouteCruise:         "Enroute / Cruise",
	PhaseArrivalTrafficCircuit: "Arrival / Traffic Circuit",
	PhaseAfterLandingApron:     "After Landing / Apron",
}

var phaseIDs = map[Phase]string{
	PhaseOther:                 "other",
	PhasePreStartTaxi:          "pre_start_taxi",
	PhaseDepartureTakeoff:      "departure_takeoff",
	PhaseEnrouteCruise:         "enroute_cruise",
	PhaseArrivalTrafficCircuit: "arrival_traffic_circuit",
	PhaseAfterLandingApron:     "after_landing_apron",
}

// String returns the display label of the phase
func (p Phase) String() string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ID returns the snake_case identifier used in rule files and JSON
func (p Phase) ID() string {
	if id, ok := phaseIDs[p]; ok {
		return id
	}
	return "unknown"
}

// MarshalText encodes the phase by its identifier
func (p Phase) MarshalText() ([]byte, error) {
	if _, ok := phaseIDs[p]; !ok {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(p.ID()), nil
}

// UnmarshalText accepts either the identifier or the display label
func (p *Phase) UnmarshalText(b []byte) error {
	parsed, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase resolves an identifier or display label, case-insensitively
func ParsePhase(s string) (Phase, error) {
	s = strings.TrimSpace(s)
	for p, id := range phaseIDs {
		if strings.EqualFold(s, id) || strings.EqualFold(s, phaseLabels[p]) {
			return p, nil
		}
	}
	return PhaseOther, fmt.Errorf("unknown phase: %q", s)
}

// Context tells the classifier which side of the flight a frequency belongs to
type Context string

const (
	ContextDeparture Context = "departure"
	ContextArrival   Context = "arrival"
)

// RawFrequency is an unvalidated frequency entry as found in a data source
type RawFrequency struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Frequency is a named radio station. The zero value is the empty placeholder.
type Frequency struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Key identifies a frequency by its (name, value) pair
type Key struct {
	Name  string
	Value string
}

// Key returns the uniqueness key of the frequency
func (f Frequency) Key() Key {
	return Key{Name: f.Name, Value: f.Value}
}

// IsZero reports whether f is the empty placeholder
func (f Frequency) IsZero() bool {
	return f.Name == "" && f.Value == ""
}

// String renders "name: value", or "" for the placeholder
func (f Frequency) String() string {
	if f.IsZero() {
		return ""
	}
	return f.Name + ": " + f.Value
}

// PhasedFrequency is a frequency tagged with the phase it is used in
type PhasedFrequency struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Phase Phase  `json:"phase"`
}

// Key returns the uniqueness key of the frequency
func (pf PhasedFrequency) Key() Key {
	return Key{Name: pf.Name, Value: pf.Value}
}

// Frequency drops the phase tag
func (pf PhasedFrequency) Frequency() Frequency {
	return Frequency{Name: pf.Name, Value: pf.Value}
}
