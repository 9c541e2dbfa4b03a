package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/config"
	"github.com/palisadeengineering/timeaudit/internal/db"
	"github.com/palisadeengineering/timeaudit/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   block.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging

	// Injectable clock for tests.
	now func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo block.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, now: time.Now}

	a.root = &cobra.Command{
		Use:   "timeaudit",
		Short: "A weekly time-audit grid for your terminal",
		Long: `Timeaudit is a mouse-driven weekly grid for auditing where your time goes.

Drag on empty slots to log activity blocks, drag blocks to reschedule them,
and pull a block's bottom edge to resize it. External calendar events can be
imported from an ICS feed and rendered alongside your own blocks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to timeaudit-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.syncCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.tagCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("timeaudit %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use. Commands that
// never touch storage (version, config) skip this.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
