package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/config"
	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/parser"
)

func newDeviceCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Show or rename this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device: %s\n", app.cfg.DeviceName)
			return nil
		},
	}

	cmd.AddCommand(newDeviceRenameCmd(app))
	return cmd
}

func newDeviceRenameCmd(app *appContext) *cobra.Command {
	var renameDB bool

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename this device",
		Long: `Rename this device. With --rename-db the database file is renamed to
clockbuster_<name>.db in the same folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			name, err := parser.NormalizeDeviceName(args[0])
			if err != nil {
				return err
			}
			if name == app.saved.DeviceName {
				fmt.Fprintln(out, "Device name unchanged.")
				return nil
			}

			err = app.update(func(cfg *config.Config) {
				cfg.DeviceName = name
			})
			if err != nil {
				return err
			}

			if !renameDB {
				fmt.Fprintf(out, "✅ Device name updated to: %s\n", name)
				return nil
			}

			// the configured store, not a CLOCKBUSTER_DB override
			current := app.saved.DatabasePath
			next := filepath.Join(filepath.Dir(current), parser.StoreFileName(name))
			if err := db.RenameStore(current, next); err != nil {
				return fmt.Errorf("device renamed but file rename failed: %w", err)
			}

			err = app.update(func(cfg *config.Config) {
				cfg.DatabasePath = next
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "✅ Device and database renamed to: %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&renameDB, "rename-db", false, "also rename the database file to match")

	return cmd
}
