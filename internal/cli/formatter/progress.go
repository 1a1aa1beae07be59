package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45% from a 0-100
// percentage. The bar is green above 66%, yellow from 33% and red below.
func RenderProgress(pct int, width int) string {
	return fmt.Sprintf("[%s] %3d%%", RenderCompactBar(pct, width, false), clampPct(pct))
}

// RenderCompactBar renders only the bar blocks. dim renders it uncolored.
func RenderCompactBar(pct int, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return bar
	}

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return style.Render(bar)
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
