package frequencies

// PhasedMap is an insertion-ordered map of phased frequencies keyed by (name, value).
// Order is first-seen and never re-sorted.
type PhasedMap struct {
	keys  []Key
	items map[Key]PhasedFrequency
}

// NewPhasedMap creates an empty map
func NewPhasedMap() *PhasedMap {
	return &PhasedMap{items: make(map[Key]PhasedFrequency)}
}

// Set inserts pf, or refines the stored entry in place when the key already exists
func (m *PhasedMap) Set(pf PhasedFrequency) {
	k := pf.Key()
	if _, ok := m.items[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.items[k] = pf
}

// SetIfAbsent inserts pf only when its key is new and reports whether it did
func (m *PhasedMap) SetIfAbsent(pf PhasedFrequency) bool {
	k := pf.Key()
	if _, ok := m.items[k]; ok {
		return false
	}
	m.keys = append(m.keys, k)
	m.items[k] = pf
	return true
}

// Get returns the entry stored under k
func (m *PhasedMap) Get(k Key) (PhasedFrequency, bool) {
	pf, ok := m.items[k]
	return pf, ok
}

// Len returns the number of entries
func (m *PhasedMap) Len() int {
	return len(m.keys)
}

// Entries returns the entries in insertion order
func (m *PhasedMap) Entries() []PhasedFrequency {
	out := make([]PhasedFrequency, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

// InPhase returns the entries tagged with phase p, in insertion order
func (m *PhasedMap) InPhase(p Phase) []PhasedFrequency {
	var out []PhasedFrequency
	for _, k := range m.keys {
		if pf := m.items[k]; pf.Phase == p {
			out = append(out, pf)
		}
	}
	return out
}
