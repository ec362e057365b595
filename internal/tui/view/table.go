package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableChrome is the number of lines the table borders and header take.
const TableChrome = 4

// TableState holds the visible rows of the slot table and their styles.
type TableState struct {
	Width       int
	Height      int
	Headers     []string
	HeaderStyle lipgloss.Style
	Rows        [][]string
	CellStyles  [][]lipgloss.Style
	BorderStyle lipgloss.Style
	Bg          lipgloss.Color
}

// RenderTable renders the slot table inside a Width×Height box.
func RenderTable(s TableState) string {
	if s.Height <= 0 || s.Width <= 0 {
		return ""
	}

	t := table.New().
		Headers(s.Headers...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(false).
		BorderRow(false).
		BorderStyle(s.BorderStyle).
		Rows(s.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.HeaderStyle
			}
			if row < 0 || row >= len(s.CellStyles) || col < 0 || col >= len(s.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return s.CellStyles[row][col]
		})

	return PlaceBox(s.Width, s.Height, lipgloss.Top, t.Render(), s.Bg)
}
