package frequencies

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	raw := []RawFrequency{
		{Name: "EDFE VORFELD", Value: "123.3"},
		{Name: "  ", Value: "118.0"},
		{Name: "EDFE INFORMATION", Value: " 120.8 "},
		{Name: "EDFE VORFELD", Value: "121.0"},
		{Name: "EMPTY", Value: ""},
		{Name: "EDFE RADIO", Value: "122.5 MHz"},
	}

	got := Extract(raw)
	want := []Frequency{
		{Name: "EDFE VORFELD", Value: "123.3 MHz"},
		{Name: "EDFE INFORMATION", Value: "120.8 MHz"},
		{Name: "EDFE RADIO", Value: "122.5 MHz"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestFormatMHz(t *testing.T) {
	tests := map[string]string{
		"123.3":     "123.3 MHz",
		" 123.3 ":   "123.3 MHz",
		"123.3 MHz": "123.3 MHz",
		"123.3mhz":  "123.3 MHz",
		"":          "",
		"MHz":       "",
		"118.125 ":  "118.125 MHz",
	}
	for in, want := range tests {
		if got := FormatMHz(in); got != want {
			t.Errorf("FormatMHz(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValueString(t *testing.T) {
	if got := ValueString(123.3); got != "123.3" {
		t.Errorf("float = %q", got)
	}
	if got := ValueString("120.8"); got != "120.8" {
		t.Errorf("string = %q", got)
	}
	if got := ValueString(map[string]any{}); got != "" {
		t.Errorf("object = %q", got)
	}
}

func TestPhasedMapOrderAndRefine(t *testing.T) {
	m := NewPhasedMap()
	m.Set(PhasedFrequency{Name: "B", Value: "1 MHz", Phase: PhaseOther})
	m.Set(PhasedFrequency{Name: "A", Value: "2 MHz", Phase: PhaseEnrouteCruise})
	m.Set(PhasedFrequency{Name: "B", Value: "1 MHz", Phase: PhaseDepartureTakeoff})

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	entries := m.Entries()
	if entries[0].Name != "B" || entries[1].Name != "A" {
		t.Errorf("order changed: %v", entries)
	}
	if entries[0].Phase != PhaseDepartureTakeoff {
		t.Errorf("Set should refine phase, got %s", entries[0].Phase)
	}

	if m.SetIfAbsent(PhasedFrequency{Name: "A", Value: "2 MHz", Phase: PhaseOther}) {
		t.Error("SetIfAbsent overwrote an existing key")
	}
	if pf, _ := m.Get(Key{Name: "A", Value: "2 MHz"}); pf.Phase != PhaseEnrouteCruise {
		t.Errorf("phase = %s, want enroute", pf.Phase)
	}
	// Same name, different value is a different station
	if !m.SetIfAbsent(PhasedFrequency{Name: "A", Value: "3 MHz", Phase: PhaseOther}) {
		t.Error("SetIfAbsent rejected a new (name, value) pair")
	}
}

func TestMerge(t *testing.T) {
	c := NewClassifier("LANGEN")
	dep := []Frequency{
		{Name: "EDFE VORFELD", Value: "123.3 MHz"},
		{Name: "EDFE INFORMATION", Value: "120.8 MHz"},
	}
	enroute := NewPhasedMap()
	enroute.Set(PhasedFrequency{Name: "LANGEN INFORMATION", Value: "119.15 MHz", Phase: PhaseEnrouteCruise})
	// Duplicate of a departure entry: departure classification must win
	enroute.Set(PhasedFrequency{Name: "EDFE INFORMATION", Value: "120.8 MHz", Phase: PhaseEnrouteCruise})
	arr := []Frequency{
		{Name: "EDFN INFO", Value: "123.5 MHz"},
		{Name: "LANGEN INFORMATION", Value: "119.15 MHz"},
	}

	merged := Merge(c, dep, enroute, arr)
	got := merged.Entries()
	want := []PhasedFrequency{
		{Name: "EDFE VORFELD", Value: "123.3 MHz", Phase: PhasePreStartTaxi},
		{Name: "EDFE INFORMATION", Value: "120.8 MHz", Phase: PhaseDepartureTakeoff},
		{Name: "LANGEN INFORMATION", Value: "119.15 MHz", Phase: PhaseEnrouteCruise},
		{Name: "EDFN INFO", Value: "123.5 MHz", Phase: PhaseArrivalTrafficCircuit},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() =\n%v\nwant\n%v", got, want)
	}

	seen := map[Key]bool{}
	for _, pf := range got {
		if seen[pf.Key()] {
			t.Errorf("duplicate key %v", pf.Key())
		}
		seen[pf.Key()] = true
	}
}

func TestMergeNilEnroute(t *testing.T) {
	c := NewClassifier("LANGEN")
	merged := Merge(c, nil, nil, []Frequency{{Name: "EDFN INFO", Value: "123.5 MHz"}})
	if merged.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", merged.Len())
	}
}

func TestExtractRoles(t *testing.T) {
	c := NewClassifier("LANGEN")

	t.Run("full set", func(t *testing.T) {
		dep := []Frequency{
			{Name: "EDFE RADIO", Value: "118.0 MHz"},
			{Name: "EDFE VORFELD", Value: "123.3 MHz"},
			{Name: "EDFE INFORMATION", Value: "120.8 MHz"},
			{Name: "EDFE GROUND", Value: "121.9 MHz"},
		}
		enroute := NewPhasedMap()
		enroute.Set(PhasedFrequency{Name: "LANGEN INFORMATION", Value: "119.15 MHz", Phase: PhaseEnrouteCruise})
		enroute.Set(PhasedFrequency{Name: "EDDF APPROACH", Value: "120.8 MHz", Phase: PhaseEnrouteCruise})
		enroute.Set(PhasedFrequency{Name: "BREMEN FIS", Value: "126.925 MHz", Phase: PhaseEnrouteCruise})
		arr := []Frequency{
			{Name: "EDFN VORFELD", Value: "121.7 MHz"},
			{Name: "EDFN INFO", Value: "123.5 MHz"},
			{Name: "EDFN RADIO", Value: "122.0 MHz"},
		}

		roles := ExtractRoles(c, dep, enroute, arr)

		if roles.Ground != (Frequency{Name: "EDFE VORFELD", Value: "123.3 MHz"}) {
			t.Errorf("ground = %v", roles.Ground)
		}
		// INFORMATION found later in the pass still beats the earlier RADIO entry
		if roles.Info != (Frequency{Name: "EDFE INFORMATION", Value: "120.8 MHz"}) {
			t.Errorf("info = %v", roles.Info)
		}
		wantFIS := []Frequency{
			{Name: "LANGEN INFORMATION", Value: "119.15 MHz"},
			{Name: "BREMEN FIS", Value: "126.925 MHz"},
		}
		if !reflect.DeepEqual(roles.FIS, wantFIS) {
			t.Errorf("fis = %v", roles.FIS)
		}
		if roles.ArrInfo != (Frequency{Name: "EDFN INFO", Value: "123.5 MHz"}) {
			t.Errorf("arr_info = %v", roles.ArrInfo)
		}
		if roles.ArrApron != (Frequency{Name: "EDFN VORFELD", Value: "121.7 MHz"}) {
			t.Errorf("arr_apron = %v", roles.ArrApron)
		}
	})

	t.Run("radio fallback", func(t *testing.T) {
		dep := []Frequency{
			{Name: "EDXY RADIO", Value: "122.6 MHz"},
			{Name: "LANGEN INFORMATION", Value: "119.15 MHz"},
		}
		roles := ExtractRoles(c, dep, nil, nil)
		if roles.Info != (Frequency{Name: "EDXY RADIO", Value: "122.6 MHz"}) {
			t.Errorf("info = %v", roles.Info)
		}
	})

	t.Run("placeholders", func(t *testing.T) {
		roles := ExtractRoles(c, nil, nil, nil)
		if !roles.Ground.IsZero() || !roles.Info.IsZero() || !roles.ArrInfo.IsZero() || !roles.ArrApron.IsZero() {
			t.Errorf("expected empty placeholders, got %+v", roles)
		}
		if roles.FIS == nil {
			t.Error("fis should be an empty list, not nil")
		}
		if roles.FirstFIS().String() != "" {
			t.Errorf("FirstFIS() = %q", roles.FirstFIS().String())
		}
	})
}

func TestPhaseText(t *testing.T) {
	for _, p := range append(CanonicalPhases, PhaseOther) {
		b, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", p, err)
		}
		var back Phase
		if err := back.UnmarshalText(b); err != nil || back != p {
			t.Errorf("round trip %s -> %s -> %s (%v)", p, b, back, err)
		}
	}

	p, err := ParsePhase("Enroute / Cruise")
	if err != nil || p != PhaseEnrouteCruise {
		t.Errorf("ParsePhase(label) = %s, %v", p, err)
	}
	if _, err := ParsePhase("taxiing"); err == nil {
		t.Error("expected error for unknown phase")
	}

	b, _ := json.Marshal(PhasedFrequency{Name: "X", Value: "1 MHz", Phase: PhaseEnrouteCruise})
	if string(b) != `{"name":"X","value":"1 MHz","phase":"enroute_cruise"}` {
		t.Errorf("json = %s", b)
	}
}
