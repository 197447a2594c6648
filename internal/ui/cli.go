// Package ui implements the huddle command line.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/db"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   event.Repository
	owned  bool // repo was opened by the app and must be closed by it
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	now    func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithNow replaces the clock used to resolve relative dates.
func WithNow(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured database path.
func NewApp(repo event.Repository, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{repo: repo, config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "huddle",
		Short: "A calendar for meetup groups and their recurring events",
		Long: `Huddle keeps track of community events: one-off talks, weekly
meetups and "last Friday of the month" socials.

Run without arguments to open the calendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.PersistentFlags().Bool("no-color", false, "Disable color output")
	a.root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			DisableColor()
		}
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.eventCmd())
	a.root.AddCommand(a.occurrencesCmd())
	a.root.AddCommand(a.calendarCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "huddle %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path, err := resolvePath(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.owned = true
	return nil
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.repo == nil || !a.owned {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
