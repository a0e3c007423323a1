package tui

import (
	"github.com/charmbracelet/lipgloss"

	"jolt/internal/resolve"
	"jolt/internal/shim"
)

var (
	// TitleStyle styles report headings.
	TitleStyle = lipgloss.NewStyle().Bold(true)
	// SourceStyle styles the provenance suffix of a record.
	SourceStyle = lipgloss.NewStyle().Faint(true)

	outcomeStyles = map[resolve.Kind]lipgloss.Style{
		resolve.LocalOverride:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		resolve.ResolvedGlobal:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		resolve.PendingInstall:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		resolve.PassThroughSystem: lipgloss.NewStyle().Faint(true),
		resolve.NotInstalled:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		resolve.Unimplemented:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// OutcomeStyle returns the lipgloss style for an outcome kind.
func OutcomeStyle(kind resolve.Kind) lipgloss.Style {
	if s, ok := outcomeStyles[kind]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// ShimStyler colors verbose shim descriptions by outcome. Warnings are bold.
func ShimStyler(out resolve.Outcome, text string) string {
	style := OutcomeStyle(out.Kind)
	if shim.IsWarning(out) {
		style = style.Bold(true)
	}
	return style.Render(text)
}

var _ shim.Styler = ShimStyler
