package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/focusboard/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks and diary entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q (want json or csv)", format)
			}
			path := out
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}
				path = filepath.Join(home, export.Filename(format, app.now()))
			}

			b := app.Dash.ExportBundle(app.now())
			var err error
			if format == "json" {
				err = export.ToJSON(b, path)
			} else {
				err = export.ToCSV(b, path)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			if format == "csv" {
				fmt.Fprintf(cmd.OutOrStdout(), "Diary exported to %s\n", export.DiaryPath(path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to a timestamped file in the home directory)")

	return cmd
}
