package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeBranch is a titled group of leaves. Badge is right-aligned next to the title.
type TreeBranch struct {
	Title  string
	Badge  string
	Leaves []string
}

const (
	treeFork   = "├─ "
	treeCorner = "└─ "
)

// RenderTree draws each branch followed by its leaves using box-drawing connectors.
func RenderTree(branches []TreeBranch) string {
	width := 0
	for _, br := range branches {
		if w := lipgloss.Width(br.Title); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, br := range branches {
		b.WriteString(StyleYellowBold.Render(br.Title))
		if br.Badge != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(br.Title)+2))
			b.WriteString(StyleBlue.Render("[ " + br.Badge + " ]"))
		}
		b.WriteString("\n")
		for i, leaf := range br.Leaves {
			connector := treeFork
			if i == len(br.Leaves)-1 {
				connector = treeCorner
			}
			b.WriteString(StyleDim.Render(connector) + leaf + "\n")
		}
	}
	return b.String()
}
