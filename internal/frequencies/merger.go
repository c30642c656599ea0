package frequencies

// Merge builds the single phased frequency map for a flight. Departure entries go in
// first, then en-route entries, then arrival entries; a key already present is never
// overwritten, so the first source to mention a (name, value) pair decides its phase.
func Merge(c *Classifier, departure []Frequency, enroute *PhasedMap, arrival []Frequency) *PhasedMap {
	merged := NewPhasedMap()

	for _, f := range departure {
		merged.SetIfAbsent(PhasedFrequency{
			Name:  f.Name,
			Value: f.Value,
			Phase: c.Classify(f.Name, ContextDeparture),
		})
	}

	if enroute != nil {
		for _, pf := range enroute.Entries() {
			merged.SetIfAbsent(pf)
		}
	}

	for _, f := range arrival {
		merged.SetIfAbsent(PhasedFrequency{
			Name:  f.Name,
			Value: f.Value,
			Phase: c.Classify(f.Name, ContextArrival),
		})
	}

	return merged
}
