package frequencies

import "strings"

// DefaultFISMarker is the designated en-route FIS station name
const DefaultFISMarker = "LANGEN"

// ClassificationRule maps a name predicate to a phase for each context
type ClassificationRule struct {
	Name      string
	Match     func(upperName string) bool
	Departure Phase
	Arrival   Phase
}

// Classifier assigns phases to frequency names. The rule order is the precedence:
// the first matching rule wins.
type Classifier struct {
	marker string
	rules  []ClassificationRule
}

// NewClassifier builds the classification table for the given FIS station marker
func NewClassifier(fisMarker string) *Classifier {
	marker := strings.ToUpper(strings.TrimSpace(fisMarker))
	if marker == "" {
		marker = DefaultFISMarker
	}

	return &Classifier{
		marker: marker,
		rules: []ClassificationRule{
			{
				Name:      "apron/ground",
				Match:     containsAny("VORFELD", "GROUND"),
				Departure: PhasePreStartTaxi,
				Arrival:   PhaseArrivalTrafficCircuit,
			},
			{
				Name: "aerodrome information",
				Match: func(n string) bool {
					return strings.Contains(n, "INFORMATION") && !strings.Contains(n, marker)
				},
				Departure: PhaseDepartureTakeoff,
				Arrival:   PhaseArrivalTrafficCircuit,
			},
			{
				Name:      "en-route FIS",
				Match:     containsAny("FIS", marker+" INFORMATION"),
				Departure: PhaseEnrouteCruise,
				Arrival:   PhaseEnrouteCruise,
			},
			{
				Name:      "radio/info",
				Match:     containsAny("RADIO", "INFO"),
				Departure: PhaseDepartureTakeoff,
				Arrival:   PhaseArrivalTrafficCircuit,
			},
		},
	}
}

// Marker returns the uppercased FIS station marker
func (c *Classifier) Marker() string {
	return c.marker
}

// Rules returns the classification table in evaluation order
func (c *Classifier) Rules() []ClassificationRule {
	out := make([]ClassificationRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the phase a frequency name belongs to in the given context
func (c *Classifier) Classify(name string, ctx Context) Phase {
	upper := strings.ToUpper(name)
	for _, r := range c.rules {
		if !r.Match(upper) {
			continue
		}
		if ctx == ContextDeparture {
			return r.Departure
		}
		return r.Arrival
	}
	return PhaseOther
}

// IsFIS reports whether name designates an en-route FIS station
func (c *Classifier) IsFIS(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, c.marker) || strings.Contains(upper, "FIS")
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}
