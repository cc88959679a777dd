package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/tui"
)

func newListCmd(app *appContext) *cobra.Command {
	var (
		ascending bool
		noUI      bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "view"},
		Short:   "List recorded sessions",
		Long:    "List the sessions of the active database, newest first unless --asc is given.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.activeStore(cmd)
			if err != nil {
				return err
			}

			order := db.Descending
			if ascending {
				order = db.Ascending
			}

			sessions, err := db.ListSessions(path, order)
			if err != nil {
				return fmt.Errorf("error loading data: %w", err)
			}

			if !noUI {
				return tui.RunListTUI(path, order, sessions)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found. Use 'clockbuster in <activity>' to clock in.")
				return nil
			}

			fmt.Fprintf(out, "%-6s %-30s %-19s  %-19s  %s\n", "ID", "ACTIVITY", "START", "END", "MINUTES")
			fmt.Fprintln(out, strings.Repeat("-", 90))
			for _, s := range sessions {
				activity := s.ActivityName
				if runes := []rune(activity); len(runes) > 30 {
					activity = string(runes[:27]) + "..."
				}
				fmt.Fprintf(out, "%-6d %-30s %-19s  %-19s  %.2f\n", s.ID, activity, s.StartTime, s.EndTime, s.DurationMinutes)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ascending, "asc", false, "oldest first")
	cmd.Flags().BoolVar(&noUI, "no-ui", false, "plain text output")

	return cmd
}
