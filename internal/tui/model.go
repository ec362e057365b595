package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/notify"
	"github.com/javiermolinar/daybox/internal/planner"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/tui/commands"
	"github.com/javiermolinar/daybox/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal     Mode = iota
	ModeEditDesc        // Typing a description
	ModeEditNumber      // Typing a duration or a clock time
	ModeSplit           // Waiting for the split count
	ModeHelp
)

// Column identifies a column of the slot table.
type Column int

const (
	ColDescription Column = iota
	ColStart
	ColReqTime
	ColAssigned
)

const numColumns = 4

// Model is the main TUI model.
type Model struct {
	// Dependencies
	state    *planner.State
	notifier notify.Notifier
	tracker  *notify.Tracker

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Day in view and the result of its last calibration
	day    *slot.Day
	report calibrate.Report

	// Cursor
	row  int
	col  Column
	mode Mode

	// Editing
	descInput textinput.Model
	digits    string
	editCol   Column

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNotifier sets the notifier used when a new slot starts.
func WithNotifier(n notify.Notifier) ModelOption {
	return func(m *Model) { m.notifier = n }
}

// New creates a new TUI model showing the state's current day.
func New(state *planner.State, opts ...ModelOption) (*Model, error) {
	cfg := state.Config()

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 256
	desc.Width = cfg.UI.DescLimit
	desc.TextStyle = styles.InputTextStyle
	desc.PromptStyle = styles.InputTextStyle
	desc.PlaceholderStyle = styles.PlaceholderStyle
	desc.Cursor.Style = styles.InputCursorStyle

	m := &Model{
		state:     state,
		notifier:  notify.Nop{},
		tracker:   &notify.Tracker{},
		theme:     t,
		styles:    styles,
		mode:      ModeNormal,
		descInput: desc,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(context.Background(), 0); err != nil {
		return nil, err
	}
	m.row = max(0, m.day.CurrentIndex(state.NowMinutes()))
	if !state.IsToday() {
		m.row = 0
	}
	m.trackCurrent()
	return m, nil
}

// load shows the day delta days away from the one in view.
func (m *Model) load(ctx context.Context, delta int) error {
	d, err := m.state.Shift(ctx, delta)
	if err != nil {
		return err
	}
	report, err := calibrate.Day(d)
	if err != nil {
		return err
	}
	m.day = d
	m.report = report
	m.row = 0
	m.scrollOffset = 0
	return nil
}

// trackCurrent feeds today's plan to the tracker and reports the slot that
// just started, if any.
func (m *Model) trackCurrent() (slot.Slot, bool) {
	today, err := m.state.Fetch(context.Background(), 0)
	if err != nil {
		logger.Warn("loading today for notifications", "err", err)
		return slot.Slot{}, false
	}
	return m.tracker.Update(today, m.state.NowMinutes())
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.Tick(commands.TickInterval)
}

// Day returns the day in view.
func (m Model) Day() *slot.Day { return m.day }

// Run starts the TUI.
func Run(state *planner.State, n notify.Notifier) error {
	model, err := New(state, WithNotifier(n))
	if err != nil {
		return err
	}
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
