package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/db"
	"github.com/JRDK92/Clockbuster/internal/parser"
)

func newLogCmd(app *appContext) *cobra.Command {
	var startFlag, endFlag string

	cmd := &cobra.Command{
		Use:   "log <activity>",
		Short: "Record a completed session",
		Long: `Record a session you forgot to clock. Times accept YYYY-MM-DD HH:MM[:SS],
HH:MM[:SS] (today), "now", or "X minutes ago" / "X hours ago".

Examples:
  clockbuster log writing --start "2024-01-01 09:00" --end "2024-01-01 10:30"
  clockbuster log standup --start "30 min ago"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := parser.NormalizeActivity(strings.Join(args, " "))
			if err != nil {
				return err
			}

			now := time.Now()
			start, err := parser.ParseTimestamp(startFlag, now)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			end, err := parser.ParseTimestamp(endFlag, now)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if end.Before(start) {
				return fmt.Errorf("end time %s is before start time %s", end.Format("15:04:05"), start.Format("15:04:05"))
			}

			path, err := app.activeStore(cmd)
			if err != nil {
				return err
			}

			session, err := db.InsertSession(path, activity, start, end, end.Sub(start).Minutes())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged session #%d: %s %s → %s (%s)\n",
				session.ID, session.ActivityName, session.StartTime, session.EndTime, formatSessionDuration(session.Duration()))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "when the session started (required)")
	cmd.Flags().StringVar(&endFlag, "end", "now", "when the session ended")
	cmd.MarkFlagRequired("start")

	return cmd
}
