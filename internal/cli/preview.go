package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/render"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	defaultPreviewWidth = 80
	maxPreviewWidth     = 100
)

// terminalWidth is a test seam for the width of the attached terminal.
var terminalWidth = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultPreviewWidth
	}
	return w
}

var (
	pageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("137")).
			Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("94"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	numberStyle  = lipgloss.NewStyle().Faint(true).Bold(true)
)

// PreviewPages prints each page of plan as a box of at most width columns.
// Body text is rewrapped to the box, so line breaks differ from the
// rendered canvas but page breaks do not.
func PreviewPages(w io.Writer, s models.LogState, plan layout.Plan, width int) error {
	width = min(max(width, 20), maxPreviewWidth)
	// border and padding take two columns on each side
	inner := width - 4

	for _, pg := range plan.Pages {
		box := pageStyle.Width(width - 2).Render(previewPage(s, plan, pg, inner))
		if _, err := fmt.Fprintln(w, box); err != nil {
			return err
		}
	}
	return nil
}

func previewPage(s models.LogState, plan layout.Plan, pg layout.Page, inner int) string {
	var parts []string
	wrap := func(text string) string { return wordwrap.String(text, inner) }

	if pg.ShowTitle {
		parts = append(parts, titleStyle.Render(wrap(s.DisplayTitle())))
	}

	if pg.IsBody {
		if pg.BodyText == "" {
			parts = append(parts, dimStyle.Render(render.PlaceholderBody))
		} else {
			parts = append(parts, wrap(pg.BodyText))
		}
	}

	if pg.ShowPatrolSummary {
		var b strings.Builder
		b.WriteString(headingStyle.Render("Notable Events"))
		for _, ev := range models.EventLines(s.Events) {
			b.WriteString("\n" + wrap(ev))
		}
		parts = append(parts, b.String())
	}

	if len(pg.Dives) > 0 {
		var b strings.Builder
		b.WriteString(headingStyle.Render("Skirmish Dives"))
		for i, d := range pg.Dives {
			b.WriteString("\n" + render.DiveLine(pg.DiveOffset+i+1, d))
			if d.Notes != "" {
				b.WriteString("\n" + dimStyle.Render(wrap("   "+d.Notes)))
			}
		}
		parts = append(parts, b.String())
	}

	if pg.ShowManifest {
		var b strings.Builder
		b.WriteString(headingStyle.Render("Crew Manifest"))
		for _, l := range render.ManifestLines(s.Crew) {
			b.WriteString("\n" + wrap(l))
		}
		parts = append(parts, b.String())
	}

	if pg.ShowPatrolSummary {
		var loot []string
		for _, it := range render.LootItems(s) {
			loot = append(loot, it.Label+": "+it.Value)
		}
		parts = append(parts, wrap(strings.Join(loot, "   ")))
	}

	if pg.ShowSignature {
		if name, sub, ok := s.SignatureLines(); ok {
			sig := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right)
			parts = append(parts, sig.Render(name+"\n"+dimStyle.Render(sub)))
		}
	}

	if plan.ShowPageNumbers() {
		num := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right)
		parts = append(parts, num.Render(numberStyle.Render(fmt.Sprintf("%d", pg.Index+1))))
	}

	return strings.Join(parts, "\n\n")
}
