package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yegors/atcopilot/internal/checklist"
	"github.com/yegors/atcopilot/internal/frequencies"
	"github.com/yegors/atcopilot/internal/planner"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")).MarginTop(1)
	contactStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Italic(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// renderResult formats a generated checklist for the terminal
func renderResult(res *planner.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s → %s", res.Departure.ICAOCode, res.Arrival.ICAOCode)))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf("%.1f NM, %d route points, %d frequencies",
		res.DistanceNM, len(res.Route), len(res.Frequencies))))
	b.WriteString("\n")
	b.WriteString(renderChecklist(res.Checklist))

	return b.String()
}

// renderChecklist lists every canonical phase with its lines. Contact lines are
// highlighted.
func renderChecklist(cl *checklist.Checklist) string {
	var sections []string
	for _, p := range frequencies.CanonicalPhases {
		rows := []string{phaseStyle.Render(p.String())}

		lines := cl.Lines(p)
		if len(lines) == 0 {
			rows = append(rows, emptyStyle.Render("  (no calls)"))
		}
		for _, line := range lines {
			style := lineStyle
			if strings.HasPrefix(line, "contact ") {
				style = contactStyle
			}
			rows = append(rows, "  • "+style.Render(line))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
