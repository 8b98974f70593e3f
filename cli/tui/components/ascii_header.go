package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"github.com/compozy/products/cli/tui/styles"
)

const bannerFont = "small"

// RenderASCIIHeader renders title as ASCII art when it fits in width,
// otherwise as a bold single line
func RenderASCIIHeader(title string, width int) string {
	art := figure.NewFigure(title, bannerFont, true).String()
	if width <= 0 || widest(art) > width {
		return styles.RenderTitle(title)
	}
	return lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Render(strings.TrimRight(art, "\n"))
}

func widest(block string) int {
	widest := 0
	for line := range strings.SplitSeq(block, "\n") {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
