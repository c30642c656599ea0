package checklist

import "github.com/yegors/atcopilot/internal/frequencies"

// ContactLine renders a frequency-change prompt
func ContactLine(f frequencies.Frequency) string {
	return "contact " + f.Name + ": " + f.Value
}

// InjectTransitions walks the canonical phases and prepends a contact line to a phase
// for every merged frequency tagged with it, in merged order. The last announced key is
// tracked across the whole walk, so the same station is never announced twice in a row.
func InjectTransitions(cl *Checklist, merged *frequencies.PhasedMap) {
	if merged == nil {
		return
	}

	var (
		last      frequencies.Key
		announced bool
	)
	entries := merged.Entries()
	for _, phase := range frequencies.CanonicalPhases {
		for _, pf := range entries {
			if pf.Phase != phase {
				continue
			}
			if announced && pf.Key() == last {
				continue
			}
			cl.Prepend(phase, ContactLine(pf.Frequency()))
			last = pf.Key()
			announced = true
		}
	}
}
