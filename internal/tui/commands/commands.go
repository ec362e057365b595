// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybox/internal/notify"
	"github.com/javiermolinar/daybox/internal/slot"
)

// TickInterval is how often the editor refreshes the clock marker.
const TickInterval = 15 * time.Second

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// TickMsg is sent on every clock tick.
type TickMsg struct {
	Time time.Time
}

// DaySavedMsg is sent when a day was written to the repository.
type DaySavedMsg struct {
	Date   string
	Slots  int
	Manual bool // Requested by the user rather than autosave
}

// Saver persists a day.
type Saver interface {
	Save(ctx context.Context, d *slot.Day) error
}

// Tick schedules the next clock tick.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// SaveDay persists a snapshot of d. The snapshot is taken before the
// command runs so later edits don't race with the write.
func SaveDay(s Saver, d *slot.Day, manual bool) tea.Cmd {
	snapshot := d.Clone()
	return func() tea.Msg {
		if err := s.Save(context.Background(), snapshot); err != nil {
			return ErrMsg{Err: err}
		}
		return DaySavedMsg{Date: snapshot.Date, Slots: snapshot.Len(), Manual: manual}
	}
}

// Notify sends a desktop notification announcing that s has started.
// Failures are reported but never block the editor.
func Notify(n notify.Notifier, s slot.Slot) tea.Cmd {
	if n == nil {
		return nil
	}
	desc := s.Description
	return func() tea.Msg {
		if err := n.Notify(context.Background(), notify.Title, desc); err != nil {
			return ErrMsg{Err: fmt.Errorf("notifying: %w", err)}
		}
		return nil
	}
}
