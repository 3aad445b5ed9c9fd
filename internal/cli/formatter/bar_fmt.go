package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/alexanderramin/ganttkit/internal/service"
)

const maxExtraWidth = 60

// FormatBarList renders a chart's bars as a table in position order.
func FormatBarList(chartName string, bars []*domain.StoredBar) string {
	if len(bars) == 0 {
		return RenderBox(chartName, Dim("No bars in this chart."))
	}
	return RenderBox(chartName, strings.TrimRight(barTable(bars), "\n"))
}

func barTable(bars []*domain.StoredBar) string {
	headers := []string{"#", "ID", "LABEL", "BUNDLE", "HANDLES", "IMMOBILE", "PUSH", "DRAG"}
	rows := make([][]string, 0, len(bars))
	for _, sb := range bars {
		cfg := sb.Bar.Config
		label := sb.Bar.LabelName()
		if label == "" {
			label = Dim("--")
		} else {
			label = StyleFg.Render(Truncate(label, 32))
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", sb.Position)),
			Bold(cfg.ID),
			label,
			BundleBadge(cfg.BundleName()),
			FlagIndicator(cfg.HasHandles),
			FlagIndicator(cfg.Immobile),
			FlagIndicator(cfg.PushOnOverlap),
			dragRange(cfg),
		})
	}
	return RenderTable(headers, rows)
}

func dragRange(cfg domain.BarConfig) string {
	if cfg.DragLimitLeft == nil && cfg.DragLimitRight == nil {
		return Dim("--")
	}
	out := FormatLimit(cfg.DragLimitLeft) + " .. " + FormatLimit(cfg.DragLimitRight)
	if cfg.DragLimitsInverted() {
		return StyleYellow.Render(out + " !")
	}
	return out
}

// FormatBarDetail renders every configuration field of a bar plus the keys
// of its application data.
func FormatBarDetail(sb *domain.StoredBar) string {
	cfg := sb.Bar.Config
	var b strings.Builder

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-15s", name)), value))
	}

	b.WriteString(StyleBold.Render(cfg.ID) + "\n\n")
	field("POSITION", fmt.Sprintf("%d", sb.Position))
	if cfg.Label != nil {
		field("LABEL", StyleFg.Render(domain.Text(cfg.Label.Name)))
		if cfg.Label.Color != nil {
			field("LABEL COLOR", StyleFg.Render(*cfg.Label.Color))
		}
	}
	if cfg.HTML != nil {
		field("LOGO", StyleFg.Render(Truncate(domain.Text(cfg.HTML.Logo), maxExtraWidth)))
	}
	field("HANDLES", FlagIndicator(cfg.HasHandles))
	field("IMMOBILE", FlagIndicator(cfg.Immobile))
	field("PUSH ON OVERLAP", FlagIndicator(cfg.PushOnOverlap))
	field("BUNDLE", BundleBadge(cfg.BundleName()))
	field("DRAG LIMITS", dragRange(cfg))
	if cfg.Class != nil {
		field("CLASS", StyleFg.Render(*cfg.Class))
	}
	field("UPDATED", Dim(HumanTimestamp(sb.UpdatedAt)))

	if len(cfg.Style) > 0 {
		b.WriteString("\n" + Header("Style") + "\n")
		for _, k := range cfg.Style.Keys() {
			v := cfg.Style[k]
			value := v.String()
			if !v.IsNumber() {
				value = fmt.Sprintf("%q", value)
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", StyleBlue.Render(k), value))
		}
	}

	if len(sb.Bar.Extra) > 0 {
		b.WriteString("\n" + Header("Data") + "\n")
		keys := make([]string, 0, len(sb.Bar.Extra))
		for k := range sb.Bar.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("%s: %s\n", StylePurple.Render(k), Truncate(compactJSON(sb.Bar.Extra[k]), maxExtraWidth)))
		}
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// FormatBundleTree renders bundles as a tree, one branch per member bar.
func FormatBundleTree(bundles []domain.Bundle) string {
	if len(bundles) == 0 {
		return RenderBox("Bundles", Dim("No bundles in this chart."))
	}
	branches := make([]TreeBranch, 0, len(bundles))
	for _, bundle := range bundles {
		branches = append(branches, TreeBranch{
			Title:  bundle.Name,
			Badge:  fmt.Sprintf("%d bars", len(bundle.BarIDs)),
			Leaves: bundle.BarIDs,
		})
	}
	return RenderBox("Bundles", strings.TrimRight(RenderTree(branches), "\n"))
}

// FormatValidationReport summarizes a bar file check. Errors make the file
// unusable; warnings are informational.
func FormatValidationReport(path string, barCount int, errs []error, warnings []string) string {
	var b strings.Builder
	if len(errs) == 0 {
		b.WriteString(StyleGreen.Render("✔ ") + fmt.Sprintf("%s is valid (%d bars)\n", path, barCount))
	} else {
		b.WriteString(StyleRed.Render("✖ ") + fmt.Sprintf("%s has %d errors\n", path, len(errs)))
		for _, e := range errs {
			b.WriteString("  " + StyleRed.Render("-") + " " + e.Error() + "\n")
		}
	}
	writeWarnings(&b, warnings)
	return b.String()
}

// FormatImportResult summarizes a completed import.
func FormatImportResult(res *service.ImportResult) string {
	var b strings.Builder
	verb := "Imported"
	if res.Replaced {
		verb = "Replaced"
	}
	b.WriteString(StyleGreen.Render("✔ ") + fmt.Sprintf("%s chart %s (%s) with %d bars\n",
		verb, Bold(res.Chart.Name), TruncID(res.Chart.ID), res.BarCount))
	writeWarnings(&b, res.Warnings)
	return b.String()
}

func writeWarnings(b *strings.Builder, warnings []string) {
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("! ") + w + "\n")
	}
}
