package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette (Flexoki Dark).
var (
	colorBorder = lipgloss.Color("#403E3C")
	colorMuted  = lipgloss.Color("#878580")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	burnStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// RenderTitle renders a bordered title bar.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)
	return box.Render(titleStyle.Render(title))
}

// RenderWarning renders a warning line for stderr.
func RenderWarning(text string) string {
	return warnStyle.Render("  ! " + text)
}

// Table is a plain column-aligned table. A row of exactly ["---"] renders
// as a horizontal rule.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders the table with padded columns and a header rule.
// The first column is left-aligned, all others right-aligned (numeric).
func RenderTable(t Table) string {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if isRule(row) {
			continue
		}
		measure(row)
	}

	total := 0
	for _, w := range widths {
		total += w + 2
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	if len(t.Headers) > 0 {
		b.WriteString("  ")
		for i, h := range t.Headers {
			b.WriteString(mutedStyle.Render(pad(h, widths[i], i == 0)))
			b.WriteString("  ")
		}
		b.WriteString("\n  ")
		b.WriteString(mutedStyle.Render(strings.Repeat("─", total)))
		b.WriteString("\n")
	}

	for _, row := range t.Rows {
		b.WriteString("  ")
		if isRule(row) {
			b.WriteString(mutedStyle.Render(strings.Repeat("─", total)))
			b.WriteString("\n")
			continue
		}
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i], i == 0))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func isRule(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// RenderHorizontalBar renders a filled bar scaled to max, for inline charts.
func RenderHorizontalBar(value, max float64, width int) string {
	if width < 1 || max <= 0 {
		return ""
	}
	filled := int(value / max * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return burnStyle.Render(bar)
}

// Sparkline renders a compact unicode trend line.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	blocks := []rune("▁▂▃▄▅▆▇█")

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		b.WriteRune(blocks[idx])
	}
	return burnStyle.Render(b.String())
}

// StatusLine renders a muted key/value status line.
func StatusLine(key, value string) string {
	return fmt.Sprintf("  %s %s", mutedStyle.Render(key+":"), value)
}

// BadCell marks a table cell as invalid.
func BadCell(s string) string {
	return badStyle.Render(s)
}
