// Package tui provides the terminal day editor for daybox.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daybox/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg lipgloss.Color

	// Title line
	TitleStyle lipgloss.Style
	DateStyle  lipgloss.Style

	// Table
	HeaderStyle lipgloss.Style
	BorderStyle lipgloss.Style

	// Cells
	CellStyle     lipgloss.Style
	PastCellStyle lipgloss.Style
	SubSlotStyle  lipgloss.Style
	CurrentStyle  lipgloss.Style // Row of the running slot
	AnchorStyle   lipgloss.Style // Start cell of a fixed-time slot
	LockedStyle   lipgloss.Style // Requested cell of a fixed-length slot
	SelectedStyle lipgloss.Style
	OverStyle     lipgloss.Style // Cells of an over-committed block
	MarkerStyle   lipgloss.Style

	// Footer
	SummaryStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
	InputStyle   lipgloss.Style

	// Help modal
	ModalStyle      lipgloss.Style
	ModalBgColor    lipgloss.Color
	ModalTitleStyle lipgloss.Style
	ModalKeyStyle   lipgloss.Style
	ModalTextStyle  lipgloss.Style

	// Text input
	InputTextStyle   lipgloss.Style
	InputCursorStyle lipgloss.Style
	PlaceholderStyle lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)
	s.DateStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg).
		Padding(0, 1)
	s.BorderStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg).
		Padding(0, 1)
	s.PastCellStyle = s.CellStyle.
		Foreground(palette.PastFg)
	s.SubSlotStyle = s.CellStyle.
		Foreground(palette.SubSlot).
		Italic(true)
	s.CurrentStyle = s.CellStyle.
		Foreground(palette.TextOnCurrent).
		Background(palette.CurrentBg)

	// Bold marks fixed starts and fixed lengths.
	s.AnchorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Anchor)
	s.LockedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Locked)

	s.SelectedStyle = lipgloss.NewStyle().
		Background(palette.BgSelection).
		Foreground(palette.TextOnSelection).
		Bold(true)
	s.OverStyle = lipgloss.NewStyle().
		Foreground(palette.Warning)
	s.MarkerStyle = lipgloss.NewStyle().
		Foreground(palette.Current).
		Background(palette.Bg)

	s.SummaryStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg)
	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Warning).
		Background(palette.Bg)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)
	s.InputStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgHighlight)

	s.ModalBgColor = palette.BgHighlight
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Accent).
		BorderBackground(palette.BgHighlight).
		Background(palette.BgHighlight).
		Padding(1, 2)
	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.BgHighlight)
	s.ModalKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Anchor).
		Background(palette.BgHighlight)
	s.ModalTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgHighlight)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgHighlight)
	s.InputCursorStyle = lipgloss.NewStyle().
		Foreground(palette.Accent)
	s.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.BgHighlight)

	s.AppStyle = lipgloss.NewStyle().
		Background(palette.Bg)

	return s
}
