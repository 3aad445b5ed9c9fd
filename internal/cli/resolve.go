package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveChartID resolves a chart reference which can be:
//   - A chart name (case-insensitive)
//   - A full UUID
//   - A unique UUID prefix
func resolveChartID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("chart is required")
	}

	charts, err := app.Charts.List(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range charts {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}

	for _, c := range charts {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range charts {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("chart not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("chart ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
