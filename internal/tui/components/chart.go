package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"srvburn/internal/tui/theme"
)

// BarChart renders vertical bars with per-bar labels underneath. Bars are
// scaled to the peak value; a zero-only series renders a flat baseline.
func BarChart(values []float64, labels []string, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 2 {
		height = 2
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(t.Green)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	// Label width drives column width so labels stay readable.
	colWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > colWidth {
			colWidth = w
		}
	}
	if colWidth < 3 {
		colWidth = 3
	}
	colWidth++ // gap

	var rows []string
	for level := height; level >= 1; level-- {
		threshold := float64(level) / float64(height) * peak
		var row strings.Builder
		for _, v := range values {
			cell := " "
			if v >= threshold {
				cell = "█"
			} else if v >= threshold-peak/float64(height)/2 {
				cell = "▄"
			}
			row.WriteString(center(cell, colWidth))
		}
		rows = append(rows, barStyle.Render(row.String()))
	}

	var labelRow strings.Builder
	for i := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		labelRow.WriteString(center(label, colWidth))
	}
	rows = append(rows, dimStyle.Render(labelRow.String()))

	return strings.Join(rows, "\n")
}

func center(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
