package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration after file and environment overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{
				{"db_path", app.Config.DBPath},
				{"log_use_cases", strconv.FormatBool(app.Config.LogUseCases)},
				{"export_format", string(app.Config.ExportFormat)},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"KEY", "VALUE"}, rows))
			return nil
		},
	})

	return cmd
}
