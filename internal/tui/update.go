package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case commands.TickMsg:
		return m, tea.Batch(commands.Tick(commands.TickInterval), m.notifyStarted())

	case commands.DaySavedMsg:
		if !msg.Manual {
			return m, nil
		}
		return m.setStatus(fmt.Sprintf("Saved %s (%d slots)", msg.Date, msg.Slots))

	case commands.ErrMsg:
		return m.setError(msg.Err)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.err = nil
		}
		return m, nil
	}

	if m.mode == ModeEditDesc {
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// notifyStarted returns a notification command when a new slot of today's
// plan has started since the last check.
func (m *Model) notifyStarted() tea.Cmd {
	started, ok := m.trackCurrent()
	if !ok {
		return nil
	}
	logger.Info("slot started", "description", started.Description, "start", started.Start)
	return commands.Notify(m.notifier, started)
}

func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.err = nil
	m.statusTime = time.Now().Add(statusDuration)
	return m, clearStatusAfter(statusDuration)
}

func (m Model) setError(err error) (tea.Model, tea.Cmd) {
	logger.Error("editor", "err", err)
	m.err = err
	m.statusMsg = fmt.Sprintf("Error: %v", err)
	m.statusTime = time.Now().Add(errorDuration)
	return m, clearStatusAfter(errorDuration)
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
