package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lumina/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	bar := renderBar(pct, width)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderExpertise renders the learner's level as a ten-cell bar, e.g.
// [████░░░░░░] 4/10.
func RenderExpertise(level int) string {
	level = domain.ClampExpertise(level)
	pct := float64(level) / float64(domain.MaxExpertise)
	bar := renderBar(pct, domain.MaxExpertise)
	return fmt.Sprintf("[%s] %d/%d", StylePurple.Render(bar), level, domain.MaxExpertise)
}

func renderBar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampUnit(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
