package cli

import (
	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Charts service.ChartService
	Bars   service.BarService
	Import service.ImportService
	Export service.ExportService

	// Config is the effective configuration; its ExportFormat is the default
	// for `export` when --format is not given.
	Config config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "ganttkit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ganttkit",
		Short:         "Store, validate and export Gantt chart bar configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newChartCmd(app),
		newBarCmd(app),
		newBundleCmd(app),
		newValidateCmd(),
		newImportCmd(app),
		newExportCmd(app),
		newConfigCmd(app),
	)

	return root
}
