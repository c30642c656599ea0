package checklist

import (
	"strings"
	"testing"

	"github.com/yegors/atcopilot/internal/frequencies"
)

func scenarioMerged() *frequencies.PhasedMap {
	c := frequencies.NewClassifier("LANGEN")
	dep := frequencies.Extract([]frequencies.RawFrequency{
		{Name: "EDFE VORFELD", Value: "123.3"},
		{Name: "EDFE INFORMATION", Value: "120.8"},
	})
	arr := frequencies.Extract([]frequencies.RawFrequency{
		{Name: "EDFN INFO", Value: "123.5"},
	})
	return frequencies.Merge(c, dep, frequencies.NewPhasedMap(), arr)
}

func TestInjectTransitionsScenario(t *testing.T) {
	cl := New()
	cl.Append(frequencies.PhasePreStartTaxi, "taxi call")
	InjectTransitions(cl, scenarioMerged())

	tests := []struct {
		phase frequencies.Phase
		want  []string
	}{
		{frequencies.PhasePreStartTaxi, []string{"contact EDFE VORFELD: 123.3 MHz", "taxi call"}},
		{frequencies.PhaseDepartureTakeoff, []string{"contact EDFE INFORMATION: 120.8 MHz"}},
		{frequencies.PhaseEnrouteCruise, []string{}},
		{frequencies.PhaseArrivalTrafficCircuit, []string{"contact EDFN INFO: 123.5 MHz"}},
		{frequencies.PhaseAfterLandingApron, []string{}},
	}
	for _, tt := range tests {
		got := cl.Lines(tt.phase)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("%s = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestInjectTransitionsPrependsEachEntry(t *testing.T) {
	merged := frequencies.NewPhasedMap()
	merged.Set(frequencies.PhasedFrequency{Name: "A", Value: "1 MHz", Phase: frequencies.PhaseEnrouteCruise})
	merged.Set(frequencies.PhasedFrequency{Name: "B", Value: "2 MHz", Phase: frequencies.PhaseEnrouteCruise})

	cl := New()
	cl.Append(frequencies.PhaseEnrouteCruise, "report")
	InjectTransitions(cl, merged)

	want := []string{"contact B: 2 MHz", "contact A: 1 MHz", "report"}
	if got := cl.Lines(frequencies.PhaseEnrouteCruise); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestInjectTransitionsNeverRepeatsConsecutively(t *testing.T) {
	merged := frequencies.NewPhasedMap()
	for _, pf := range []frequencies.PhasedFrequency{
		{Name: "G", Value: "1 MHz", Phase: frequencies.PhasePreStartTaxi},
		{Name: "I", Value: "2 MHz", Phase: frequencies.PhaseDepartureTakeoff},
		{Name: "F", Value: "3 MHz", Phase: frequencies.PhaseEnrouteCruise},
		{Name: "F", Value: "4 MHz", Phase: frequencies.PhaseEnrouteCruise},
		{Name: "A", Value: "5 MHz", Phase: frequencies.PhaseArrivalTrafficCircuit},
		{Name: "X", Value: "6 MHz", Phase: frequencies.PhaseOther},
	} {
		merged.SetIfAbsent(pf)
	}

	cl := New()
	InjectTransitions(cl, merged)

	var contacts []string
	for _, p := range frequencies.CanonicalPhases {
		for _, line := range cl.Lines(p) {
			if strings.HasPrefix(line, "contact ") {
				contacts = append(contacts, line)
			}
		}
	}
	if len(contacts) != 5 {
		t.Fatalf("contacts = %q, want 5 (Other is never announced)", contacts)
	}
	for i := 1; i < len(contacts); i++ {
		if contacts[i] == contacts[i-1] {
			t.Errorf("consecutive duplicate announcement %q", contacts[i])
		}
	}
}

func TestInjectTransitionsNilMap(t *testing.T) {
	cl := New()
	cl.Append(frequencies.PhasePreStartTaxi, "x")
	InjectTransitions(cl, nil)
	if cl.Len() != 1 {
		t.Errorf("Len() = %d", cl.Len())
	}
}
