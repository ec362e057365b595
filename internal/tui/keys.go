package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/editor"
	"github.com/javiermolinar/daybox/internal/planner"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/tui/commands"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case ModeEditDesc:
		return m.handleDescKeys(msg)
	case ModeEditNumber:
		return m.handleNumberKeys(msg)
	case ModeSplit:
		return m.handleSplitKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.day
	cfg := m.state.Config()

	switch key := msg.String(); key {
	case "q":
		return m.quit()
	case "?":
		m.mode = ModeHelp
		return m, nil

	// Navigation
	case "j", "down":
		m.row = min(m.row+1, d.Len()-1)
		m.ensureCursorVisible()
	case "k", "up":
		m.row = max(m.row-1, 0)
		m.ensureCursorVisible()
	case "h", "left":
		m.col = max(m.col-1, 0)
	case "l", "right":
		m.col = min(m.col+1, numColumns-1)
	case "home", "pgup":
		m.row = 0
		m.ensureCursorVisible()
	case "end", "pgdown":
		m.row = d.Len() - 1
		m.ensureCursorVisible()
	case "e":
		if !m.state.IsToday() {
			return m.setStatus("Not viewing today")
		}
		if idx := d.CurrentIndex(m.state.NowMinutes()); idx >= 0 {
			m.row = idx
			m.ensureCursorVisible()
		}

	// Days
	case "m":
		return m.shift(planner.Day)
	case "n":
		return m.shift(-planner.Day)
	case "M":
		return m.shift(planner.Week)
	case "N":
		return m.shift(-planner.Week)

	// Structure
	case "i":
		m.row++
		return m.apply(editor.Insert(d, m.row-1, cfg.Day.DefaultMinutes))
	case "I":
		t, ok := m.state.NextTodo()
		if !ok {
			return m.setStatus("No todos loaded")
		}
		m.row++
		return m.apply(editor.InsertTodo(d, m.row-1, cfg.Day.DefaultMinutes, t.Description))
	case "d":
		m.row++
		return m.apply(editor.Duplicate(d, m.row-1))
	case "D":
		m.row++
		return m.apply(editor.Halve(d, m.row-1))
	case "x":
		m.mode = ModeSplit
		return m, nil
	case "delete":
		return m.apply(editor.Delete(d, m.row, cfg.Day.DefaultMinutes))
	case "r":
		if m.row == 0 {
			return m, nil
		}
		report, err := editor.MoveUp(d, m.row)
		if err == nil {
			m.row--
		}
		return m.apply(report, err)
	case "f":
		if m.row == d.Len()-1 {
			return m, nil
		}
		report, err := editor.MoveDown(d, m.row)
		if err == nil {
			m.row++
		}
		return m.apply(report, err)

	// Times
	case "b":
		return m.apply(editor.StartNow(d, m.row, m.state.NowMinutes()))
	case "z":
		return m.apply(editor.AdoptAssigned(d, m.row))
	case "enter":
		return m.handleEnter()

	// Descriptions
	case "o", "O":
		delta := 1
		if key == "O" {
			delta = -1
		}
		t, ok := m.state.CycleTodo(delta)
		if !ok {
			return m.setStatus("No todos loaded")
		}
		return m.apply(editor.SetDescription(d, m.row, t.Description))

	// Persistence
	case "s":
		return m, commands.SaveDay(m.state, d, true)
	case "y":
		return m.handleYank()

	default:
		if isDigit(key) && m.col != ColDescription {
			m.mode = ModeEditNumber
			m.editCol = m.col
			m.digits = key
			return m.maybeCommitClock()
		}
	}

	return m, nil
}

// handleEnter toggles the flag owned by the selected column, or starts
// editing the description.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.col {
	case ColDescription:
		m.mode = ModeEditDesc
		m.descInput.SetValue("")
		if desc := m.day.Slots[m.row].Description; !isPlaceholder(desc) {
			m.descInput.SetValue(desc)
		}
		m.descInput.CursorEnd()
		return m, m.descInput.Focus()
	case ColStart:
		return m.apply(editor.ToggleFixedTime(m.day, m.row))
	default:
		return m.apply(editor.ToggleFixedLength(m.day, m.row))
	}
}

func (m Model) handleDescKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.descInput.Blur()
		return m.apply(editor.SetDescription(m.day, m.row, m.descInput.Value()))
	case "esc":
		m.mode = ModeNormal
		m.descInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

// handleNumberKeys collects digits for the requested time or the start.
// Durations commit on enter; clock times commit on the fourth digit, or on
// enter after three.
func (m Model) handleNumberKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter":
		return m.commitNumber()
	case "esc":
		m.mode = ModeNormal
		m.digits = ""
		return m, nil
	case "backspace":
		if len(m.digits) > 0 {
			m.digits = m.digits[:len(m.digits)-1]
		}
		return m, nil
	default:
		if isDigit(key) {
			m.digits += key
			return m.maybeCommitClock()
		}
	}
	return m, nil
}

func (m Model) maybeCommitClock() (tea.Model, tea.Cmd) {
	if m.editCol == ColStart && len(m.digits) == 4 {
		return m.commitNumber()
	}
	return m, nil
}

func (m Model) commitNumber() (tea.Model, tea.Cmd) {
	digits := m.digits
	m.mode = ModeNormal
	m.digits = ""
	if digits == "" {
		return m, nil
	}

	if m.editCol == ColStart {
		if len(digits) != 3 && len(digits) != 4 {
			return m, nil
		}
		minute, err := slot.ParseClock(digits)
		if err != nil {
			return m.setError(err)
		}
		return m.apply(editor.SetStart(m.day, m.row, minute))
	}

	minutes, err := strconv.Atoi(digits)
	if err != nil {
		return m.setError(err)
	}
	return m.apply(editor.SetReqTime(m.day, m.row, minutes, m.editCol == ColAssigned))
}

func (m Model) handleSplitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	key := msg.String()
	if !isDigit(key) {
		return m, nil
	}
	n, _ := strconv.Atoi(key)
	if n == 0 {
		return m, nil
	}
	return m.apply(editor.Split(m.day, m.row, n))
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	default:
		m.mode = ModeNormal
	}
	return m, nil
}

// apply finishes an edit: it records the calibration report, keeps the
// cursor on a slot, and autosaves when enabled.
func (m Model) apply(report calibrate.Report, err error) (tea.Model, tea.Cmd) {
	m.row = min(max(m.row, 0), m.day.Len()-1)
	if err != nil {
		var status string
		switch {
		case errors.Is(err, editor.ErrBothAnchors):
			status = "Both slots have fixed start times"
		case errors.Is(err, editor.ErrLastAnchorLength):
			status = "The last anchored slot must stay flexible"
		}
		if status != "" {
			return m.setStatus(status)
		}
		return m.setError(err)
	}

	m.report = report
	m.ensureCursorVisible()
	if !m.state.Config().UI.Autosave {
		return m, nil
	}
	return m, commands.SaveDay(m.state, m.day, false)
}

func (m Model) shift(delta int) (tea.Model, tea.Cmd) {
	if err := m.load(context.Background(), delta); err != nil {
		return m.setError(err)
	}
	return m, nil
}

func (m Model) handleYank() (tea.Model, tea.Cmd) {
	if err := writeClipboard(dayText(m.day)); err != nil {
		return m.setError(fmt.Errorf("copy failed: %w", err))
	}
	return m.setStatus("Copied " + m.day.Date)
}

// quit writes the day in view before leaving when autosave is on; pending
// background saves are not waited for.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.state.Autosave(context.Background(), m.day); err != nil {
		return m.setError(err)
	}
	return m, tea.Quit
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

func isPlaceholder(desc string) bool {
	return desc == slot.DefaultDescription || desc == editor.InsertPlaceholder
}
