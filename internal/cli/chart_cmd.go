package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/spf13/cobra"
)

func newChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Manage charts",
	}

	cmd.AddCommand(
		newChartAddCmd(app),
		newChartListCmd(app),
		newChartShowCmd(app),
		newChartRenameCmd(app),
		newChartRemoveCmd(app),
	)

	return cmd
}

func newChartAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Chart{Name: name, Description: description}
			if err := app.Charts.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created chart %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Chart name")
	cmd.Flags().StringVar(&description, "description", "", "Chart description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newChartListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			charts, err := app.Charts.List(ctx)
			if err != nil {
				return err
			}

			counts := make(map[string]int, len(charts))
			for _, c := range charts {
				n, err := app.Bars.Count(ctx, c.ID)
				if err != nil {
					return err
				}
				counts[c.ID] = n
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChartList(charts, counts))
			return nil
		},
	}
}

func newChartShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CHART",
		Short: "Show a chart and its bars",
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
			bundles, err := app.Bars.Bundles(ctx, chartID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChartShow(c, bars, bundles))
			return nil
		},
	}
}

func newChartRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CHART NEW_NAME",
		Short: "Rename a chart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Charts.Rename(ctx, chartID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed chart %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newChartRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CHART",
		Aliases: []string{"remove"},
		Short:   "Remove a chart and all of its bars",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Charts.Delete(ctx, chartID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed chart %s\n", args[0])
			return nil
		},
	}
}
