package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/relplan/internal/domain"
)

const (
	filledBlock   = "█"
	emptyBlock    = "░"
	overflowBlock = "▶"
)

// RenderUtilization renders a sprint load bar like [███████░░░]  70%. The bar
// is full at 100%; anything beyond is marked with a trailing arrow. The color
// follows the capacity band.
func RenderUtilization(pct float64, status domain.CapacityStatus, width int) string {
	if width < 2 {
		width = 2
	}
	ratio := pct / 100
	if ratio < 0 {
		ratio = 0
	}
	overflow := ratio > 1
	if overflow {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if overflow {
		bar = strings.Repeat(filledBlock, width-1) + overflowBlock
	}
	return fmt.Sprintf("[%s] %4.0f%%", CapacityStyle(status).Render(bar), pct)
}
