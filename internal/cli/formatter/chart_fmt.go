package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/domain"
)

// FormatChartList renders all charts with their bar counts inside a bordered box.
func FormatChartList(charts []*domain.Chart, barCounts map[string]int) string {
	if len(charts) == 0 {
		return RenderBox("Charts", Dim("No charts yet. Create one with `ganttkit chart add` or `ganttkit import`."))
	}

	headers := []string{"ID", "NAME", "BARS", "UPDATED"}
	rows := make([][]string, 0, len(charts))
	for _, c := range charts {
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			fmt.Sprintf("%d", barCounts[c.ID]),
			Dim(HumanTimestamp(c.UpdatedAt)),
		})
	}
	return RenderBox("Charts", RenderTable(headers, rows))
}

// FormatChartShow renders a chart header, its bars in position order and a
// bundle summary.
func FormatChartShow(c *domain.Chart, bars []*domain.StoredBar, bundles []domain.Bundle) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(c.Name) + "\n")
	if c.Description != "" {
		b.WriteString(StyleFg.Render(c.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), StyleFg.Render(c.ID)))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("BARS   "), len(bars)))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("BUNDLES"), len(bundles)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED"), StyleFg.Render(c.CreatedAt.Format("Jan 2, 2006 15:04"))))

	if len(bars) > 0 {
		b.WriteString("\n" + Header("Bars") + "\n")
		b.WriteString(barTable(bars))
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
