package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBundleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Inspect bar bundles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list CHART",
			Short: "List the bundles of a chart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				chartID, err := resolveChartID(ctx, app, args[0])
				if err != nil {
					return err
				}
				bundles, err := app.Bars.Bundles(ctx, chartID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBundleTree(bundles))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show CHART NAME",
			Short: "Show the bars that move together in one bundle",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				chartID, err := resolveChartID(ctx, app, args[0])
				if err != nil {
					return err
				}
				members, err := app.Bars.BundleMembers(ctx, chartID, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBarList("Bundle "+args[1], members))
				return nil
			},
		},
	)

	return cmd
}
