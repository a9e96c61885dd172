package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUsage renders slot usage like [████░░░░] 120/240m. The bar turns
// yellow past two thirds and red when full.
func RenderUsage(used, capacity, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if capacity > 0 {
		pct = float64(used) / float64(capacity)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct >= 1 {
		style = StyleRed
	} else if pct > 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%dm", style.Render(bar), used, capacity)
}
