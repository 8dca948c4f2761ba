package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/archcritic/internal/review"
	"github.com/dshills/archcritic/internal/schema"
)

type textStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	bands   map[schema.Band]lipgloss.Style
}

func newTextStyles(lr *lipgloss.Renderer) textStyles {
	return textStyles{
		title:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		heading: lr.NewStyle().Bold(true),
		label:   lr.NewStyle().Foreground(lipgloss.Color("240")),
		bands: map[schema.Band]lipgloss.Style{
			schema.BandHigh:   lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			schema.BandMedium: lr.NewStyle().Foreground(lipgloss.Color("3")),
			schema.BandLow:    lr.NewStyle().Foreground(lipgloss.Color("2")),
		},
	}
}

// textRenderer writes a terminal summary. Its styles are bound to the
// destination writer, so colour appears only when that writer is a terminal.
type textRenderer struct {
	styles textStyles
}

func newTextRenderer(w io.Writer) *textRenderer {
	if w == nil {
		w = io.Discard
	}
	return &textRenderer{styles: newTextStyles(lipgloss.NewRenderer(w))}
}

func (r *textRenderer) Render(b *schema.Bundle) ([]byte, error) {
	var sb strings.Builder
	a := b.Analysis
	st := r.styles

	sb.WriteString(st.title.Render("SAP architecture analysis") + "\n\n")

	field := func(label, value string) {
		fmt.Fprintf(&sb, "  %s %s\n", st.label.Render(fmt.Sprintf("%-12s", label)), value)
	}
	field("Modules", strings.Join(a.Modules, ", "))
	field("External", orDash(a.External))
	field("Hosting", string(a.Hosting))
	field("Compliance", orDash(a.Compliance))
	field("Users", fmt.Sprintf("%d", a.Users))

	sb.WriteString("\n" + st.heading.Render("Agents") + "\n")
	for _, f := range b.Agents {
		fmt.Fprintf(&sb, "  %s: %s\n", st.label.Render(f.Agent), f.Finding)
	}

	sb.WriteString("\n" + st.heading.Render("Risk register") + "\n")
	for _, risk := range b.FMEA {
		band := review.Band(risk.RPN)
		fmt.Fprintf(&sb, "  %s %4d  %s (S%d O%d D%d)\n",
			st.bands[band].Render(fmt.Sprintf("%-6s", band)), risk.RPN, risk.FailureMode,
			risk.Severity, risk.Occurrence, risk.Detection)
	}

	sb.WriteString("\n" + st.heading.Render("Mitigation") + "\n")
	for _, line := range strings.Split(b.Mitigation, "\n") {
		sb.WriteString("  " + line + "\n")
	}
	return []byte(sb.String()), nil
}

func orDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
