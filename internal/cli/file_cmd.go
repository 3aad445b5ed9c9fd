package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/ganttkit/internal/cli/formatter"
	"github.com/alexanderramin/ganttkit/internal/config"
	"github.com/alexanderramin/ganttkit/internal/importer"
	"github.com/alexanderramin/ganttkit/internal/service"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a JSON or YAML bar file without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := importer.LoadDocument(path)
			if err != nil {
				return err
			}

			errs := importer.ValidateDocument(doc)
			var warnings []string
			if len(errs) == 0 {
				bars, err := importer.Convert(doc)
				if err != nil {
					return err
				}
				for i, b := range bars {
					for _, e := range b.Validate() {
						errs = append(errs, fmt.Errorf("bars[%d]: %w", i, e))
					}
				}
				warnings = importer.Lint(bars)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationReport(path, len(doc.Bars), errs, warnings))
			if len(errs) > 0 {
				return fmt.Errorf("%s is not a valid bar file", path)
			}
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var name string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON or YAML bar file as a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmd.Context(), args[0], service.ImportOptions{
				ChartName: name,
				Replace:   replace,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Chart name (defaults to the file's chart header)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing chart with the same name")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var formatStr, out string

	cmd := &cobra.Command{
		Use:   "export CHART",
		Short: "Write a chart's bars as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			format := app.Config.ExportFormat
			if format == "" {
				format = config.FormatJSON
			}
			if cmd.Flags().Changed("format") {
				f, err := config.ParseExportFormat(formatStr)
				if err != nil {
					return err
				}
				format = f
			}

			chartID, err := resolveChartID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var n int
			if out == "" {
				n, err = app.Export.Export(ctx, chartID, format, cmd.OutOrStdout())
			} else {
				n, err = exportToFile(ctx, app, chartID, format, out)
			}
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bars to %s\n", n, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "Output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to FILE instead of stdout")

	return cmd
}

// exportToFile writes the export to path. A failed export leaves no file behind.
func exportToFile(ctx context.Context, app *App, chartID string, format config.ExportFormat, path string) (n int, err error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return app.Export.Export(ctx, chartID, format, file)
}
