package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/config"
	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/parser"
)

func newRelocateCmd(app *appContext) *cobra.Command {
	var keep, replace bool

	cmd := &cobra.Command{
		Use:   "relocate <path>",
		Short: "Change where this device's database lives",
		Long: `Move the active database to a new location and use it from now on. A directory
gets clockbuster_<device>.db inside it. The old file is left where it was.

If the new file already exists (say from an earlier session on this device):
  --keep     keep it and merge the current database into it
  --replace  overwrite it with the current database`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}
			current, err := app.storePath()
			if err != nil {
				return err
			}

			target, err := filepath.Abs(config.ExpandTilde(args[0]))
			if err != nil {
				return err
			}
			if info, err := os.Stat(target); err == nil && info.IsDir() {
				target = filepath.Join(target, parser.StoreFileName(app.cfg.DeviceName))
			}

			mode := db.RelocateAbort
			switch {
			case keep:
				mode = db.RelocateKeep
			case replace:
				mode = db.RelocateReplace
			}

			result, err := db.Relocate(current, target, mode)
			if errors.Is(err, db.ErrDestinationExists) {
				return fmt.Errorf("the file %s already exists, rerun with --keep to merge into it or --replace to overwrite it", filepath.Base(target))
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case mode == db.RelocateKeep && !result.Copied:
				fmt.Fprintf(out, "✅ Merged %d records!\n", result.Merged)
			case result.Copied:
				fmt.Fprintln(out, "✅ Database copied to new location!")
			}

			err = app.update(func(cfg *config.Config) {
				cfg.DatabasePath = result.Path
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Now using: %s\n", result.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep an existing file and merge into it")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace an existing file")
	cmd.MarkFlagsMutuallyExclusive("keep", "replace")

	return cmd
}
