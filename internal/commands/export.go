package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/db"
)

func newExportCmd(app *appContext) *cobra.Command {
	var from, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a database to CSV",
		Long: `Write every session of a database to a CSV file, oldest first. The file is
overwritten if it exists.

Examples:
  clockbuster export
  clockbuster export --from ~/Drive/clockbuster_desktop.db -o desktop.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := from
			if source == "" {
				path, err := app.storePath()
				if err != nil {
					return err
				}
				source = path
			}
			if output == "" {
				output = timestampedName("clockbuster_export", ".csv", time.Now())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Exporting data to CSV...")
			count, err := db.ExportCSV(source, output)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Completed! Exported %d records to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "database to export (default: the active one)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file to write (default: clockbuster_export_<timestamp>.csv)")

	return cmd
}

// timestampedName builds prefix_yyyyMMdd_HHmmss<ext>
func timestampedName(prefix, ext string, t time.Time) string {
	return prefix + "_" + t.Format("20060102_150405") + ext
}
