// Package planner holds the running application state: the loaded days,
// which day is in view, and the todo list offered to the editor.
package planner

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/db"
	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/store"
	"github.com/javiermolinar/daybox/internal/todo"
)

// Navigation steps.
const (
	Day  = 1
	Week = 7
)

// State is the application state shared by the editor and the CLI.
type State struct {
	cfg    *config.Config
	repo   slot.Repository
	days   map[string]*slot.Day
	offset int
	todos  []todo.Todo
	todoAt int
	now    func() time.Time
}

// Option configures a State.
type Option func(*State)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithTodos sets the todo list instead of loading it from the configured sources.
func WithTodos(todos []todo.Todo) Option {
	return func(s *State) { s.todos = todos }
}

// New creates a State over repo.
func New(cfg *config.Config, repo slot.Repository, opts ...Option) *State {
	s := &State{
		cfg:    cfg,
		repo:   repo,
		days:   make(map[string]*slot.Day),
		now:    time.Now,
		todoAt: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.todos == nil {
		s.todos = todo.Load(todo.Sources{
			CursePath:   cfg.Todo.CursePath,
			ProjectPath: cfg.Todo.ProjectPath,
		})
	}
	return s
}

// Config returns the configuration the state was built with.
func (s *State) Config() *config.Config { return s.cfg }

// Repository returns the backing repository.
func (s *State) Repository() slot.Repository { return s.repo }

// Now returns the current time of the state's clock.
func (s *State) Now() time.Time { return s.now() }

// NowMinutes returns the current minute of the day.
func (s *State) NowMinutes() int { return slot.NowMinutes(s.now()) }

// Offset returns how many days from today the day in view is.
func (s *State) Offset() int { return s.offset }

// Today returns today's date key.
func (s *State) Today() string { return dateutil.OffsetKey(s.now(), 0) }

// Date returns the date key of the day in view.
func (s *State) Date() string { return dateutil.OffsetKey(s.now(), s.offset) }

// IsToday reports whether the day in view is today.
func (s *State) IsToday() bool { return s.Date() == s.Today() }

// Fetch returns the day offset days from today. Days already loaded are
// reused; otherwise the repository is consulted and, failing that, a new day
// is built from the configured defaults. The day is calibrated before it is
// returned.
func (s *State) Fetch(ctx context.Context, offset int) (*slot.Day, error) {
	return s.FetchDate(ctx, dateutil.OffsetKey(s.now(), offset))
}

// FetchDate is Fetch for an explicit date key.
func (s *State) FetchDate(ctx context.Context, date string) (*slot.Day, error) {
	if d, ok := s.days[date]; ok {
		return d, nil
	}

	d, err := s.repo.GetDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading day %s: %w", date, err)
	}
	if d == nil {
		d, err = s.newDay(date)
		if err != nil {
			return nil, err
		}
		logger.Debug("created day", "date", date)
	}
	if d.Len() == 0 {
		// A stored day can be empty after a hand edit or an import.
		placeholder, err := slot.NewSlot(slot.DefaultDescription, s.cfg.Day.DefaultMinutes)
		if err != nil {
			return nil, fmt.Errorf("repairing day %s: %w", date, err)
		}
		d.Slots = append(d.Slots, placeholder)
		logger.Warn("stored day had no slots", "date", date)
	}

	if _, err := calibrate.Day(d); err != nil {
		return nil, fmt.Errorf("calibrating day %s: %w", date, err)
	}
	s.days[date] = d
	return d, nil
}

func (s *State) newDay(date string) (*slot.Day, error) {
	d, err := slot.NewDay(date, s.cfg.DayStartMinutes(), s.cfg.Day.TotalMinutes)
	if err != nil {
		return nil, fmt.Errorf("creating day %s: %w", date, err)
	}
	d.Slots[0].ReqTime = s.cfg.Day.DefaultMinutes
	return d, nil
}

// Current returns the day in view.
func (s *State) Current(ctx context.Context) (*slot.Day, error) {
	return s.Fetch(ctx, s.offset)
}

// Shift moves the view delta days and returns the new day in view.
func (s *State) Shift(ctx context.Context, delta int) (*slot.Day, error) {
	d, err := s.Fetch(ctx, s.offset+delta)
	if err != nil {
		return nil, err
	}
	s.offset += delta
	return d, nil
}

// Jump moves the view to date.
func (s *State) Jump(ctx context.Context, date string) (*slot.Day, error) {
	offset, err := dateutil.OffsetOf(s.now(), date)
	if err != nil {
		return nil, err
	}
	return s.Shift(ctx, offset-s.offset)
}

// Replace swaps the loaded copy of a day, e.g. after a template was applied
// through the repository.
func (s *State) Replace(d *slot.Day) {
	s.days[d.Date] = d
}

// Save persists d.
func (s *State) Save(ctx context.Context, d *slot.Day) error {
	if err := s.repo.SaveDay(ctx, d); err != nil {
		return fmt.Errorf("saving day %s: %w", d.Date, err)
	}
	logger.Debug("saved day", "date", d.Date, "slots", d.Len())
	return nil
}

// Autosave persists d when autosave is enabled.
func (s *State) Autosave(ctx context.Context, d *slot.Day) error {
	if !s.cfg.UI.Autosave {
		return nil
	}
	return s.Save(ctx, d)
}

// SaveAll persists every loaded day.
func (s *State) SaveAll(ctx context.Context) error {
	for _, date := range slices.Sorted(maps.Keys(s.days)) {
		if err := s.Save(ctx, s.days[date]); err != nil {
			return err
		}
	}
	return nil
}

// Todos returns the loaded todo list.
func (s *State) Todos() []todo.Todo { return s.todos }

// CycleTodo moves the todo cursor delta steps, wrapping around, and returns
// the todo under it. It reports false when there are no todos.
func (s *State) CycleTodo(delta int) (todo.Todo, bool) {
	s.todoAt = todo.Cycle(len(s.todos), s.todoAt, delta)
	if s.todoAt < 0 {
		return todo.Todo{}, false
	}
	return s.todos[s.todoAt], true
}

// NextTodo returns the todo after the cursor, the one the insert-todo key uses.
func (s *State) NextTodo() (todo.Todo, bool) {
	return s.CycleTodo(1)
}

// OpenRepository opens the repository selected by cfg.Backend.
func OpenRepository(cfg config.StorageConfig) (slot.Repository, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		s, err := store.New(cfg.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("initializing store: %w", err)
		}
		return s, nil
	case config.BackendSQLite, "":
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("db path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		repo, err := db.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
