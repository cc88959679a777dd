package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/models"
	"github.com/JRDK92/Clockbuster/internal/parser"
	"github.com/JRDK92/Clockbuster/internal/tui"
)

func newInCmd(app *appContext) *cobra.Command {
	var noUI bool

	cmd := &cobra.Command{
		Use:     "in <activity>",
		Aliases: []string{"start", "clock-in"},
		Short:   "Clock in on an activity",
		Long: `Clock in on an activity. Opens the interactive timer by default; clocking out
saves the session. Activity names are upper-cased.

Examples:
  clockbuster in writing
  clockbuster in "code review" --no-ui   # Enter clocks out, Ctrl+C discards`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := parser.NormalizeActivity(strings.Join(args, " "))
			if err != nil {
				return err
			}

			path, err := app.activeStore(cmd)
			if err != nil {
				return fmt.Errorf("cannot start session due to database error: %w", err)
			}

			var session *models.Session
			if noUI {
				session, err = clockInPlain(cmd, path, activity)
			} else {
				session, err = tui.RunClockIn(path, app.cfg.DeviceName, activity)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if session == nil {
				fmt.Fprintf(out, "❌ Session for %s discarded, nothing was saved.\n", activity)
				return nil
			}
			fmt.Fprintf(out, "⏹️  Session saved! %s · Duration: %s\n", session.ActivityName, formatSessionDuration(session.Duration()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noUI, "no-ui", false, "clock in without the interactive timer")

	return cmd
}

// clockInPlain waits for Enter (clock out and save) or an interrupt (discard)
func clockInPlain(cmd *cobra.Command, path, activity string) (*models.Session, error) {
	out := cmd.OutOrStdout()
	start := time.Now()

	fmt.Fprintf(out, "⏱️  Clocked in on %s at %s\n", activity, start.Format("15:04:05"))
	fmt.Fprintln(out, "Press Enter to clock out, Ctrl+C to discard.")

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt)
	defer stop()

	// The reader stays blocked in ReadString after an interrupt until stdin yields a
	// line or EOF. The buffered channel lets it finish without a receiver
	entered := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		entered <- err
	}()

	select {
	case <-ctx.Done():
		return nil, nil
	case err := <-entered:
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	return tui.SaveSession(path, activity, start, time.Now())
}

// formatSessionDuration formats a duration as "12m 5s", hours included past the first hour
func formatSessionDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm %ds", minutes/60, minutes%60, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// contextOrBackground keeps commands usable when executed without a context
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
