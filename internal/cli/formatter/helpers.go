package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDays renders a day count rounded to one decimal, dropping ".0".
func FormatDays(d float64) string {
	s := fmt.Sprintf("%.1f", d)
	return strings.TrimSuffix(s, ".0")
}

// DateSpan renders an inclusive date range, collapsing single days.
func DateSpan(start, end string) string {
	switch {
	case start == "" && end == "":
		return Dim("--")
	case start == end:
		return start
	default:
		return start + " → " + end
	}
}

// OrDash returns s, or a dimmed dash when s is empty.
func OrDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}

// Warnings renders warning lines, or "" when there are none.
func Warnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
	return b.String()
}
