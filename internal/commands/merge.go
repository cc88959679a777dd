package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/db"
)

func newMergeCmd(app *appContext) *cobra.Command {
	var into string

	cmd := &cobra.Command{
		Use:   "merge <database>...",
		Short: "Merge other databases into this one",
		Long: `Copy every session from the given databases that the target does not already
have. Sessions match when activity, start and end time are equal. Each database
is merged in a single transaction: it is applied completely or not at all.

The target is the active database unless --into is given, so merging the other
way round is just a matter of swapping the two.

Examples:
  clockbuster merge ~/Drive/clockbuster_desktop.db
  clockbuster merge --into ~/Drive/clockbuster_desktop.db ~/clockbuster_laptop.db`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			target := into
			if target == "" {
				path, err := app.activeStore(cmd)
				if err != nil {
					return err
				}
				target = path
			}

			fmt.Fprintln(out, "Merging data...")
			report := db.MergeAll(args, target)

			if len(report.Errors) == 0 {
				fmt.Fprintf(out, "✅ Successfully merged %d records!\n", report.Merged)
				return nil
			}

			fmt.Fprintf(out, "⚠️  Merged %d records with %d error(s):\n", report.Merged, len(report.Errors))
			for _, err := range report.Errors {
				fmt.Fprintf(out, "  • %s\n", describeMergeError(err))
			}
			return fmt.Errorf("%d database(s) could not be merged", len(report.Errors))
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "merge into this database instead of the active one")

	return cmd
}

// describeMergeError renders one per-source failure for the summary
func describeMergeError(err error) string {
	var mergeErr *db.MergeError
	if !errors.As(err, &mergeErr) {
		return err.Error()
	}

	name := filepath.Base(mergeErr.Source)
	switch {
	case errors.Is(err, db.ErrSelfMerge):
		return fmt.Sprintf("Skipped: %s (cannot merge with itself)", name)
	case errors.Is(err, db.ErrMissingSchema):
		return fmt.Sprintf("Error merging %s: not a Clockbuster database", name)
	default:
		return fmt.Sprintf("Error merging %s: %v", name, mergeErr.Err)
	}
}
