package commands

import (
	"fmt"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/db"
)

func newBackupCmd(app *appContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the active database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.activeStore(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				output = timestampedName("clockbuster_backup", ".db", time.Now())
			}

			n, err := db.Backup(path, output)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Backup created successfully! %s (%s)\n", output, units.HumanSize(float64(n)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file (default: clockbuster_backup_<timestamp>.db)")

	return cmd
}
