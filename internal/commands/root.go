package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JRDK92/Clockbuster/internal/config"
	"github.com/JRDK92/Clockbuster/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// appContext is the state shared by all commands of one invocation. The store layer
// never sees it; commands hand it the path they resolved here
type appContext struct {
	configPath string
	dbPath     string
	verbose    bool

	manager *config.Manager
	saved   *config.Config // as read from the config file
	cfg     *config.Config // saved plus environment overrides
}

// load reads .env, the config file and the environment, and sets up logging
func (a *appContext) load(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	// .env is optional
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	manager, err := config.NewManager(a.configPath)
	if err != nil {
		return err
	}
	saved, err := manager.Load()
	if err != nil {
		return err
	}

	a.manager = manager
	a.saved = saved
	a.cfg = saved.WithEnv()
	return nil
}

// update applies fn to the saved config and to the effective view, then writes the
// config file. Environment overrides never reach the file
func (a *appContext) update(fn func(cfg *config.Config)) error {
	fn(a.saved)
	fn(a.cfg)
	return a.manager.Save(a.saved)
}

// storePath is the active store: --db, then CLOCKBUSTER_DB, then the config file
func (a *appContext) storePath() (string, error) {
	if a.dbPath != "" {
		return filepath.Abs(config.ExpandTilde(a.dbPath))
	}
	if a.cfg == nil || a.cfg.DatabasePath == "" {
		return "", config.ErrNotConfigured
	}
	return a.cfg.DatabasePath, nil
}

// activeStore resolves the active store and repairs it, telling the user when the file
// or table had to be recreated
func (a *appContext) activeStore(cmd *cobra.Command) (string, error) {
	path, err := a.storePath()
	if err != nil {
		return "", err
	}

	repair, err := db.RepairSchema(path)
	if err != nil {
		return "", err
	}
	switch repair {
	case db.RepairCreatedFile:
		fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  Database file was deleted or moved. Created a new database.")
		slog.Debug("store created", "path", path)
	case db.RepairCreatedTable:
		fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  Database table was missing. Recreated database structure.")
		slog.Debug("store table recreated", "path", path)
	}

	return path, nil
}

// NewRootCommand builds the clockbuster command tree
func NewRootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:   "clockbuster",
		Short: "A personal time clock",
		Long: `clockbuster tracks time spent on named activities.

Clock in on an activity, clock out, and the session is saved to a local SQLite
database. Each device can keep its own database (for example inside a synced
folder) and databases can be merged into each other without creating duplicates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default: user config dir/clockbuster/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&app.dbPath, "db", "", "use this database instead of the configured one")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newInitCmd(app))
	rootCmd.AddCommand(newInCmd(app))
	rootCmd.AddCommand(newLogCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newMergeCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newBackupCmd(app))
	rootCmd.AddCommand(newRelocateCmd(app))
	rootCmd.AddCommand(newDeviceCmd(app))
	rootCmd.AddCommand(newWhereCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clockbuster %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
