package importer

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/ganttkit/internal/domain"
)

// Convert decodes the raw bar elements into domain bars, in document order.
// Call ValidateDocument first; Convert assumes the document is valid.
func Convert(doc *Document) ([]*domain.Bar, error) {
	bars := make([]*domain.Bar, 0, len(doc.Bars))
	for i, raw := range doc.Bars {
		var b domain.Bar
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("bars[%d]: %w", i, err)
		}
		bars = append(bars, &b)
	}
	return bars, nil
}

// Lint reports legal but suspicious configurations. Warnings never block an import.
func Lint(bars []*domain.Bar) []string {
	var warnings []string
	for _, b := range bars {
		if b.Config.DragLimitsInverted() {
			warnings = append(warnings, fmt.Sprintf("bar %q: dragLimitLeft (%g) is greater than dragLimitRight (%g)",
				b.Config.ID, *b.Config.DragLimitLeft, *b.Config.DragLimitRight))
		}
	}
	for _, bundle := range domain.GroupByBundle(bars) {
		if len(bundle.BarIDs) == 1 {
			warnings = append(warnings, fmt.Sprintf("bundle %q has a single bar (%s)", bundle.Name, bundle.BarIDs[0]))
		}
	}
	return warnings
}
