package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/spf13/cobra"
)

func newBarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bar",
		Short: "Manage the bars of a chart",
	}

	cmd.AddCommand(
		newBarAddCmd(app),
		newBarListCmd(app),
		newBarShowCmd(app),
		newBarRemoveCmd(app),
	)

	return cmd
}

// barFlags holds the raw `bar add` flag values. Optional fields are only
// applied when their flag was given, so an explicit false survives.
type barFlags struct {
	id, label, labelColor, logo, bundle, class string
	handles, immobile, pushOnOverlap           bool
	dragLeft, dragRight                        float64
	style, data                                []string
}

func (f *barFlags) toBar(cmd *cobra.Command) (*domain.Bar, error) {
	changed := cmd.Flags().Changed

	b := domain.NewBar(f.id)
	cfg := &b.Config
	if changed("label") || changed("label-color") {
		cfg.Label = &domain.BarLabel{}
		if changed("label") {
			cfg.Label.Name = domain.Ptr(f.label)
		}
		if changed("label-color") {
			cfg.Label.Color = domain.Ptr(f.labelColor)
		}
	}
	if changed("logo") {
		cfg.HTML = &domain.BarHTML{Logo: domain.Ptr(f.logo)}
	}
	if changed("handles") {
		cfg.HasHandles = domain.Ptr(f.handles)
	}
	if changed("immobile") {
		cfg.Immobile = domain.Ptr(f.immobile)
	}
	if changed("push-on-overlap") {
		cfg.PushOnOverlap = domain.Ptr(f.pushOnOverlap)
	}
	if changed("drag-left") {
		cfg.DragLimitLeft = domain.Ptr(f.dragLeft)
	}
	if changed("drag-right") {
		cfg.DragLimitRight = domain.Ptr(f.dragRight)
	}
	if changed("bundle") {
		cfg.Bundle = domain.Ptr(f.bundle)
	}
	if changed("class") {
		cfg.Class = domain.Ptr(f.class)
	}

	style, err := parseStyleFlags(f.style)
	if err != nil {
		return nil, err
	}
	cfg.Style = style

	if err := applyDataFlags(b, f.data); err != nil {
		return nil, err
	}
	return b, nil
}

// parseStyleFlags turns key=value pairs into a Style. Values that parse as a
// finite number are stored as numbers, everything else as strings.
func parseStyleFlags(pairs []string) (domain.Style, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	style := make(domain.Style, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --style format %q, expected property=value", p)
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
			style[k] = domain.StyleNumber(n)
			continue
		}
		style[k] = domain.StyleString(v)
	}
	return style, nil
}

// applyDataFlags stores key=value pairs as application data. A value that is
// valid JSON is kept as is; anything else is stored as a JSON string.
func applyDataFlags(b *domain.Bar, pairs []string) error {
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid --data format %q, expected key=json", p)
		}
		var value any = v
		if json.Valid([]byte(v)) {
			value = json.RawMessage(v)
		}
		if err := b.SetExtra(k, value); err != nil {
			return fmt.Errorf("--data %s: %w", k, err)
		}
	}
	return nil
}

func newBarAddCmd(app *App) *cobra.Command {
	var f barFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add CHART",
		Short: "Add a bar to a chart, replacing any bar with the same id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var bar *domain.Bar
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				values := barFormValues{ID: f.id, Bundle: f.bundle}
				if err := barForm(&values).Run(); err != nil {
					return err
				}
				if bar, err = values.toBar(); err != nil {
					return err
				}
			} else {
				if strings.TrimSpace(f.id) == "" {
					return fmt.Errorf("--id is required (or use --interactive)")
				}
				if bar, err = f.toBar(cmd); err != nil {
					return err
				}
			}

			stored, err := app.Bars.Put(ctx, chartID, bar)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored bar %s at position %d\n", stored.Bar.Config.ID, stored.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.id, "id", "", "Bar id, unique within the chart")
	cmd.Flags().StringVar(&f.label, "label", "", "Label text")
	cmd.Flags().StringVar(&f.labelColor, "label-color", "", "Label color")
	cmd.Flags().StringVar(&f.logo, "logo", "", "HTML logo content")
	cmd.Flags().BoolVar(&f.handles, "handles", false, "Show resize handles")
	cmd.Flags().BoolVar(&f.immobile, "immobile", false, "Disallow dragging")
	cmd.Flags().StringVar(&f.bundle, "bundle", "", "Bundle name; bars in a bundle move together")
	cmd.Flags().BoolVar(&f.pushOnOverlap, "push-on-overlap", false, "Push overlapping bars")
	cmd.Flags().Float64Var(&f.dragLeft, "drag-left", 0, "Leftmost drag position")
	cmd.Flags().Float64Var(&f.dragRight, "drag-right", 0, "Rightmost drag position")
	cmd.Flags().StringArrayVar(&f.style, "style", nil, "Style property (property=value, repeatable)")
	cmd.Flags().StringVar(&f.class, "class", "", "CSS class")
	cmd.Flags().StringArrayVar(&f.data, "data", nil, "Application data (key=json, repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the bar with a form")

	return cmd
}

func newBarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list CHART",
		Short: "List the bars of a chart in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Charts.GetByID(ctx, chartID)
			if err != nil {
				return err
			}
			bars, err := app.Bars.List(ctx, chartID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBarList(c.Name, bars))
			return nil
		},
	}
}

func newBarShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show CHART ID",
		Short: "Show one bar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sb, err := app.Bars.Get(ctx, chartID, args[1])
			if err != nil {
				return err
			}

			if asJSON {
				data, err := domain.EncodeJSON(sb.Bar, "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBarDetail(sb))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the bar document as JSON")

	return cmd
}

func newBarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CHART ID",
		Aliases: []string{"remove"},
		Short:   "Remove a bar from a chart",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Bars.Delete(ctx, chartID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed bar %s\n", args[1])
			return nil
		},
	}
}
