package formatter

import (
	"strings"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

type band struct {
	style lipgloss.Style
	label string
}

var riskBands = map[domain.RiskLevel]band{
	domain.RiskCritical: {StyleRed, "● CRITICAL"},
	domain.RiskAtRisk:   {StyleYellow, "● AT RISK"},
	domain.RiskOnTrack:  {StyleGreen, "● ON TRACK"},
}

// Low is the fallback for unknown statuses.
var capacityBands = map[domain.CapacityStatus]band{
	domain.CapacityOver: {StyleRed, "▲ Over"},
	domain.CapacityNear: {StyleYellow, "● Near"},
	domain.CapacityGood: {StyleGreen, "● Good"},
	domain.CapacityLow:  {StyleBlue, "○ Low"},
}

// RiskIndicator returns a colored release confidence label such as "● AT RISK".
func RiskIndicator(risk domain.RiskLevel) string {
	b, ok := riskBands[risk]
	if !ok {
		return StyleDim.Render("● UNKNOWN")
	}
	return b.style.Render(b.label)
}

// CapacityStyle colors a sprint by its utilization band.
func CapacityStyle(status domain.CapacityStatus) lipgloss.Style {
	return capacityBand(status).style
}

// CapacityPill returns the sprint status label in its band color.
func CapacityPill(status domain.CapacityStatus) string {
	b := capacityBand(status)
	return b.style.Render(b.label)
}

func capacityBand(status domain.CapacityStatus) band {
	if b, ok := capacityBands[status]; ok {
		return b
	}
	return capacityBands[domain.CapacityLow]
}

// Header renders an upper-cased section title over a dim rule of equal width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
