package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/tui/view"
)

// ClockMarker is appended to the slot running now.
const ClockMarker = "🕑"

const subSlotPrefix = " ↳ "

var tableHeaders = []string{"Description", "Start", "Req", "Assigned", ""}

var helpBindings = []view.Binding{
	{Keys: "j/k h/l", Help: "move between slots and columns"},
	{Keys: "home/end", Help: "first / last slot"},
	{Keys: "e", Help: "jump to the running slot"},
	{Keys: "i / I", Help: "insert a slot / insert the next todo"},
	{Keys: "d / D", Help: "duplicate / halve"},
	{Keys: "x 1-9", Help: "split into sub-slots"},
	{Keys: "r / f", Help: "move up / down"},
	{Keys: "delete", Help: "remove the slot"},
	{Keys: "b", Help: "begin the slot now"},
	{Keys: "z", Help: "adopt the assigned time"},
	{Keys: "o / O", Help: "next / previous todo as description"},
	{Keys: "enter", Help: "toggle fixed start or length, edit description"},
	{Keys: "0-9", Help: "type minutes, or HHMM on the start column"},
	{Keys: "m / n", Help: "next / previous day"},
	{Keys: "M / N", Help: "next / previous week"},
	{Keys: "s / y", Help: "save / copy the day"},
	{Keys: "q", Help: "quit"},
}

const helpLine = "? help  enter toggle/edit  i insert  x split  s save  q quit"

// tableRow is one line of the slot table: a slot, or one of its sub-slots.
type tableRow struct {
	slot int
	sub  int // -1 for the slot itself
}

func buildRows(d *slot.Day) []tableRow {
	rows := make([]tableRow, 0, d.Len())
	for i, s := range d.Slots {
		rows = append(rows, tableRow{slot: i, sub: -1})
		for j := range s.SubSlots {
			rows = append(rows, tableRow{slot: i, sub: j})
		}
	}
	return rows
}

// lineOf returns the table line of slot i.
func lineOf(d *slot.Day, i int) int {
	line := 0
	for _, s := range d.Slots[:i] {
		line += 1 + len(s.SubSlots)
	}
	return line
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return view.Render(view.Screen{})
	}

	modal := ""
	if m.mode == ModeHelp {
		modal = view.RenderHelp(helpBindings, view.HelpStyles{
			Box:   m.styles.ModalStyle,
			Title: m.styles.ModalTitleStyle,
			Key:   m.styles.ModalKeyStyle,
			Text:  m.styles.ModalTextStyle,
		})
	}

	return view.Render(view.Screen{
		Width:  m.width,
		Height: m.height,
		Title: view.RenderTitle(view.TitleState{
			Width:     m.width,
			Date:      m.day.Date,
			Offset:    m.state.Offset(),
			Assigned:  m.day.AssignedTotal(),
			TotalTime: m.day.TotalTime,
			AppStyle:  m.styles.TitleStyle,
			DateStyle: m.styles.DateStyle,
		}),
		Table:   view.RenderTable(m.tableState()),
		Footer:  view.RenderFooter(m.footerState()),
		Modal:   modal,
		ModalBg: m.styles.ModalBgColor,
		Bg:      m.styles.colorBg,
	})
}

func (m Model) gridHeight() int {
	return max(m.height-1-view.FooterHeight, 0)
}

func (m Model) visibleLines() int {
	return max(m.gridHeight()-view.TableChrome, 1)
}

// ensureCursorVisible scrolls so the selected slot's line is on screen.
func (m *Model) ensureCursorVisible() {
	if m.day == nil || m.day.Len() == 0 {
		return
	}
	line := lineOf(m.day, m.row)
	visible := m.visibleLines()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+visible {
		m.scrollOffset = line - visible + 1
	}
	m.scrollOffset = max(m.scrollOffset, 0)
}

func (m Model) tableState() view.TableState {
	rows := buildRows(m.day)
	start := min(m.scrollOffset, len(rows))
	end := min(start+m.visibleLines(), len(rows))

	now := m.state.NowMinutes()
	current := -1
	if m.state.IsToday() {
		current = m.day.CurrentIndex(now)
	}
	over := m.report.FlaggedSlots()

	cells := make([][]string, 0, end-start)
	styles := make([][]lipgloss.Style, 0, end-start)
	for _, r := range rows[start:end] {
		s := m.day.Slots[r.slot]
		if r.sub >= 0 {
			cells = append(cells, m.subSlotCells(s.SubSlots[r.sub]))
			styles = append(styles, m.subSlotStyles())
			continue
		}
		marker := ""
		if r.slot == current {
			marker = ClockMarker
		}
		cells = append(cells, m.slotCells(r.slot, s, marker))
		styles = append(styles, m.slotStyles(r.slot, s, current, now, over[r.slot]))
	}

	return view.TableState{
		Width:       m.width,
		Height:      m.gridHeight(),
		Headers:     tableHeaders,
		HeaderStyle: m.styles.HeaderStyle,
		Rows:        cells,
		CellStyles:  styles,
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	}
}

// descLimit is the width of the description column.
func (m Model) descLimit() int {
	return m.state.Config().UI.DescLimit
}

func (m Model) slotCells(i int, s slot.Slot, marker string) []string {
	desc := ansi.Truncate(s.Description, m.descLimit(), "...")
	if m.mode == ModeEditDesc && i == m.row {
		desc = m.descInput.View()
	}
	return []string{
		desc,
		slot.MinutesToTime(s.Start),
		strconv.Itoa(s.ReqTime),
		strconv.Itoa(s.Assigned),
		marker,
	}
}

func (m Model) subSlotCells(s slot.SubSlot) []string {
	desc := ansi.Truncate(subSlotPrefix+s.Description, m.descLimit(), "...")
	return []string{
		desc,
		slot.MinutesToTime(s.Start),
		strconv.Itoa(s.ReqTime),
		strconv.Itoa(s.Assigned),
		"",
	}
}

func (m Model) slotStyles(i int, s slot.Slot, current, now int, over bool) []lipgloss.Style {
	base := m.styles.CellStyle
	switch {
	case i == current:
		base = m.styles.CurrentStyle
	case current >= 0 && s.End() <= now:
		base = m.styles.PastCellStyle
	}
	if over {
		base = base.Foreground(m.styles.OverStyle.GetForeground())
	}

	styles := make([]lipgloss.Style, len(tableHeaders))
	for c := range styles {
		styles[c] = base
	}
	if s.FixedTime {
		styles[ColStart] = base.Bold(true).Foreground(m.styles.AnchorStyle.GetForeground())
	}
	if s.FixedLength {
		styles[ColReqTime] = base.Bold(true).Foreground(m.styles.LockedStyle.GetForeground())
	}
	styles[len(styles)-1] = m.styles.MarkerStyle
	if i == m.row {
		styles[m.col] = styles[m.col].
			Background(m.styles.SelectedStyle.GetBackground()).
			Foreground(m.styles.SelectedStyle.GetForeground())
	}
	return styles
}

func (m Model) subSlotStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(tableHeaders))
	for c := range styles {
		styles[c] = m.styles.SubSlotStyle
	}
	return styles
}

func (m Model) footerState() view.FooterState {
	summary := m.report.Summary()
	summaryStyle := m.styles.SummaryStyle
	if summary != "" {
		summaryStyle = m.styles.ErrorStyle
	}
	switch m.mode {
	case ModeEditNumber:
		label := "minutes"
		if m.editCol == ColStart {
			label = "start (HHMM)"
		}
		summary = label + ": " + m.digits + "_"
		summaryStyle = m.styles.InputStyle
	case ModeSplit:
		summary = "split into how many sub-slots? (1-9)"
		summaryStyle = m.styles.InputStyle
	case ModeEditDesc:
		summary = "description: enter to save, esc to cancel"
		summaryStyle = m.styles.InputStyle
	}

	statusStyle := m.styles.StatusStyle
	if m.err != nil {
		statusStyle = m.styles.ErrorStyle
	}

	return view.FooterState{
		Width:        m.width,
		SummaryText:  summary,
		StatusText:   m.statusMsg,
		HelpText:     helpLine,
		SummaryStyle: summaryStyle,
		StatusStyle:  statusStyle,
		HelpStyle:    m.styles.HelpStyle,
		Bg:           m.styles.colorBg,
	}
}

// dayText renders d as plain aligned text for the clipboard.
func dayText(d *slot.Day) string {
	width := 0
	for _, s := range d.Slots {
		width = max(width, runewidth.StringWidth(s.Description))
		for _, sub := range s.SubSlots {
			width = max(width, runewidth.StringWidth(subSlotPrefix+sub.Description))
		}
	}

	var b strings.Builder
	b.WriteString(d.Date + "\n")
	line := func(desc string, start, assigned int) {
		b.WriteString(slot.MinutesToTime(start))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(desc, width))
		b.WriteString("  ")
		b.WriteString(slot.FormatDuration(assigned))
		b.WriteString("\n")
	}
	for _, s := range d.Slots {
		line(s.Description, s.Start, s.Assigned)
		for _, sub := range s.SubSlots {
			line(subSlotPrefix+sub.Description, sub.Start, sub.Assigned)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
