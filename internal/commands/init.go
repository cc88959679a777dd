package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/config"
	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/parser"
)

func newInitCmd(app *appContext) *cobra.Command {
	var (
		device string
		dir    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up this device",
		Long: `Name this device and choose where its database lives.

The database is created as clockbuster_<device>.db inside --dir. Without --dir a
Google Drive "Documents" folder is used when one exists, so the file syncs to your
other devices; otherwise ~/Documents or your home directory.

Examples:
  clockbuster init
  clockbuster init --device laptop --dir ~/Dropbox/timesheets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if app.saved.Configured() && !force {
				return fmt.Errorf("already set up as %q using %s (use --force to redo setup)", app.saved.DeviceName, app.saved.DatabasePath)
			}

			if device == "" {
				device = config.SuggestDeviceName()
			}
			name, err := parser.NormalizeDeviceName(device)
			if err != nil {
				return err
			}

			var path string
			if app.dbPath != "" {
				if path, err = app.storePath(); err != nil {
					return err
				}
			} else {
				if dir == "" {
					dir = config.SuggestStoreDir()
				}
				abs, err := filepath.Abs(config.ExpandTilde(dir))
				if err != nil {
					return err
				}
				path = config.StorePath(abs, name)
			}

			if err := db.EnsureSchema(path); err != nil {
				return err
			}

			err = app.update(func(cfg *config.Config) {
				cfg.DeviceName = name
				cfg.DatabasePath = path
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "✅ Setup complete! Ready to track time.")
			fmt.Fprintf(out, "Device:   %s\n", name)
			fmt.Fprintf(out, "Database: %s\n", path)
			fmt.Fprintf(out, "Config:   %s\n", app.manager.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "device name (default: user-host)")
	cmd.Flags().StringVar(&dir, "dir", "", "folder for the database file")
	cmd.Flags().BoolVar(&force, "force", false, "redo setup even if already configured")

	return cmd
}
