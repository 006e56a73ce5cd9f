package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	ColorBorder = lipgloss.Color("#3A3A36")
	ColorMuted  = lipgloss.Color("#8A8A83")
	ColorText   = lipgloss.Color("#ECEBE4")
	ColorGold   = lipgloss.Color("#C9A227")
	ColorRed    = lipgloss.Color("#C25B4E")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGold).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGold)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	negativeStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Table is a column-aligned text table for CLI output.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a bordered box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(46).
		Align(lipgloss.Center).
		Padding(0, 1)

	return box.Render(titleStyle.Render(title))
}

// RenderTable renders headers, a rule, and rows. The first column is
// left-aligned, the rest right-aligned; cells holding negative amounts
// are tinted red.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	b.WriteString("  ")
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
		if i < numCols-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	rule := 2 * (numCols - 1)
	for _, w := range widths {
		rule += w
	}
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", rule)))
	b.WriteString("\n")

	for _, row := range t.Rows {
		b.WriteString("  ")
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := valueStyle
			if strings.HasPrefix(cell, "-") {
				style = negativeStyle
			}
			b.WriteString(style.Render(pad(cell, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int, leftAlign bool) string {
	if leftAlign {
		return fmt.Sprintf("%-*s", width, s)
	}
	return fmt.Sprintf("%*s", width, s)
}

// RenderSparkline draws a unicode block sparkline of the series. Values
// are normalized over their lo..hi range, so a steady decline slopes
// visibly even when every value is positive.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return strings.Repeat(string(blocks[0]), len(values))
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}
