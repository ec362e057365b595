package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/notify"
	"github.com/javiermolinar/daybox/internal/planner"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       slot.Repository
	config     *config.Config
	configPath string
	state      *planner.State
	root       *cobra.Command
	debug      bool // Enable debug logging
	now        func() time.Time
	runTUI     func(*planner.State, notify.Notifier) error
}

// Option configures an App.
type Option func(*App)

// WithConfigPath sets the file the config commands read and write.
func WithConfigPath(path string) Option {
	return func(a *App) { a.configPath = path }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened from the storage config on first use.
func NewApp(repo slot.Repository, cfg *config.Config, opts ...Option) *App {
	a := &App{
		repo:       repo,
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		now:        time.Now,
		runTUI:     tui.Run,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "daybox",
		Short: "A time-boxed day planner",
		Long: `Daybox keeps an ordered list of time-boxed slots for each day and
recalibrates start times and durations after every edit.

Run without arguments to open the day editor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initLogger(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runEditor()
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.splitCmd())
	a.root.AddCommand(a.calibrateCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.todoCmd())
	a.root.AddCommand(a.templateCmd())

	return a
}

// initLogger starts file logging. Only the editor keeps stderr clean.
func (a *App) initLogger(cmd *cobra.Command) error {
	err := logger.Init(logger.Config{
		Debug:  a.debug,
		Dir:    a.config.Log.Dir,
		Stderr: cmd != a.root,
	})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debug("starting", "command", cmd.Name(), "version", Version)
	return nil
}

func (a *App) runEditor() error {
	if _, err := initConfigFile(a.configPath, a.config); err != nil {
		return err
	}
	state, err := a.planState()
	if err != nil {
		return err
	}
	return a.runTUI(state, notify.FromConfig(a.config.Notify))
}

// ensureRepo opens the configured repository if none was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := planner.OpenRepository(a.config.Storage)
	if err != nil {
		return err
	}
	a.repo = repo
	return nil
}

// planState returns the application state, creating it on first use.
func (a *App) planState() (*planner.State, error) {
	if a.state != nil {
		return a.state, nil
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	a.state = planner.New(a.config, a.repo, planner.WithClock(a.now))
	return a.state, nil
}

// dayFlags selects the day a command works on.
type dayFlags struct {
	date   string
	offset int
}

func (f *dayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Day (YYYY-MM-DD, today, tomorrow, monday, last-friday...)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Days from today (negative for the past)")
	cmd.MarkFlagsMutuallyExclusive("date", "offset")
}

// day fetches the selected day, calibrated.
func (a *App) day(ctx context.Context, f dayFlags) (*slot.Day, error) {
	state, err := a.planState()
	if err != nil {
		return nil, err
	}
	if f.date == "" {
		return state.Fetch(ctx, f.offset)
	}
	t, err := dateutil.ParseRelativeDate(f.date, a.now())
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", f.date, err)
	}
	return state.FetchDate(ctx, dateutil.Key(t))
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daybox %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
