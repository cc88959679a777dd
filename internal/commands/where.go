package commands

import (
	"fmt"
	"os"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func newWhereCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show where the active database is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.storePath()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)

			info, err := os.Stat(path)
			if err != nil {
				fmt.Fprintln(out, "⚠️  Database file not found. It will be created on next use.")
				return nil
			}
			fmt.Fprintf(out, "%s · last modified %s\n", units.HumanSize(float64(info.Size())), info.ModTime().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
