// Package checklist builds phase-ordered radiotelephony checklists from a rule table
// and injects frequency-change prompts into them.
package checklist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/yegors/atcopilot/internal/frequencies"
)

// Checklist maps each canonical phase to its ordered lines
type Checklist struct {
	lines map[frequencies.Phase][]string
}

// New returns an empty checklist
func New() *Checklist {
	return &Checklist{lines: make(map[frequencies.Phase][]string)}
}

// Append adds a line at the end of a phase bucket
func (c *Checklist) Append(p frequencies.Phase, line string) {
	c.lines[p] = append(c.lines[p], line)
}

// Prepend inserts a line at the start of a phase bucket
func (c *Checklist) Prepend(p frequencies.Phase, line string) {
	c.lines[p] = append([]string{line}, c.lines[p]...)
}

// Lines returns a copy of the lines of one phase
func (c *Checklist) Lines(p frequencies.Phase) []string {
	out := make([]string, len(c.lines[p]))
	copy(out, c.lines[p])
	return out
}

// Len returns the total number of lines across all phases
func (c *Checklist) Len() int {
	n := 0
	for _, p := range frequencies.CanonicalPhases {
		n += len(c.lines[p])
	}
	return n
}

// Clone returns an independent copy
func (c *Checklist) Clone() *Checklist {
	out := New()
	for p, lines := range c.lines {
		out.lines[p] = append([]string(nil), lines...)
	}
	return out
}

// MarshalJSON encodes the checklist as an object keyed by phase label in canonical
// order. Every canonical phase is present, empty ones as [].
func (c *Checklist) MarshalJSON() ([]byte, error) {
	om := orderedmap.New()
	for _, p := range frequencies.CanonicalPhases {
		om.Set(p.String(), c.Lines(p))
	}
	return json.Marshal(om)
}

// UnmarshalJSON accepts phase labels or identifiers as keys
func (c *Checklist) UnmarshalJSON(data []byte) error {
	om := orderedmap.New()
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}

	lines := make(map[frequencies.Phase][]string)
	for _, k := range om.Keys() {
		p, err := frequencies.ParsePhase(k)
		if err != nil {
			return err
		}
		raw, _ := om.Get(k)
		items, ok := raw.([]interface{})
		if !ok && raw != nil {
			return fmt.Errorf("phase %q: expected a list of lines", k)
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("phase %q: line is %T, not a string", k, item)
			}
			lines[p] = append(lines[p], s)
		}
	}
	c.lines = lines
	return nil
}

// Markdown renders the checklist as headed task lists
func (c *Checklist) Markdown() string {
	var b strings.Builder
	for _, p := range frequencies.CanonicalPhases {
		fmt.Fprintf(&b, "### %s\n", p)
		for _, line := range c.lines[p] {
			fmt.Fprintf(&b, "- [ ] %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
