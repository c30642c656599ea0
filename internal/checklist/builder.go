package checklist

import (
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/pkg/logger"
)

// Builder instantiates a rule table for one aircraft context
type Builder struct {
	table  *Table
	logger *logger.Logger
}

// NewBuilder creates a builder over table. A nil table uses DefaultRules.
func NewBuilder(table *Table, log *logger.Logger) *Builder {
	if table == nil {
		table = DefaultRules
	}
	return &Builder{
		table:  table,
		logger: log.Named("checklist"),
	}
}

// Build formats every rule in table order into its phase bucket. A rule whose
// formatter fails is skipped with a warning; the rest still builds.
func (b *Builder) Build(ctx AircraftContext) *Checklist {
	available := ctx.Fields()
	cl := New()

	for _, r := range b.table.rules {
		if r.Phase == frequencies.PhaseOther {
			b.logger.Debug("Rule not assigned to a phase, skipping", logger.String("rule", r.Key))
			continue
		}

		line, err := r.Format(r.args(available))
		if err != nil {
			b.logger.Warn("Could not format checklist line",
				logger.String("rule", r.Key),
				logger.String("phase", r.Phase.ID()),
				logger.Error(err))
			continue
		}
		cl.Append(r.Phase, line)
	}

	return cl
}
