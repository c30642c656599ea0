package checklist

import (
	"fmt"

	"github.com/yegors/atcopilot/internal/frequencies"
)

// FormatFunc renders one checklist line from exactly the declared fields
type FormatFunc func(args Args) (string, error)

// Rule is one checklist line template. Params is the explicit list of fields the
// formatter receives; nothing outside it is ever passed.
type Rule struct {
	Key    string
	Params []Field
	Phase  frequencies.Phase
	Format FormatFunc
}

// Table is a validated, read-only, ordered rule table
type Table struct {
	rules []Rule
}

// NewTable validates the rules and fixes their order
func NewTable(rules ...Rule) (*Table, error) {
	seen := make(map[string]bool, len(rules))
	out := make([]Rule, 0, len(rules))

	for i, r := range rules {
		if r.Key == "" {
			return nil, fmt.Errorf("rule %d has no key", i)
		}
		if seen[r.Key] {
			return nil, fmt.Errorf("duplicate rule key %q", r.Key)
		}
		seen[r.Key] = true

		if r.Format == nil {
			return nil, fmt.Errorf("rule %q has no formatter", r.Key)
		}
		for _, p := range r.Params {
			if !p.IsKnown() {
				return nil, fmt.Errorf("rule %q declares unknown field %q", r.Key, p)
			}
		}
		if _, err := r.Phase.MarshalText(); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Key, err)
		}

		r.Params = append([]Field(nil), r.Params...)
		out = append(out, r)
	}

	return &Table{rules: out}, nil
}

// MustTable is NewTable for statically known tables
func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns the rules in table order
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules
func (t *Table) Len() int {
	return len(t.rules)
}

// args intersects the declared params with the available fields
func (r Rule) args(available map[Field]any) Args {
	a := make(Args, len(r.Params))
	for _, p := range r.Params {
		if v, ok := available[p]; ok {
			a[p] = v
		}
	}
	return a
}
