// Package view renders the parts of the day editor screen.
package view

import "github.com/charmbracelet/lipgloss"

// Screen contains the pre-rendered sections of one frame.
type Screen struct {
	Width  int
	Height int
	Title  string
	Table  string
	Footer string
	// Modal is drawn centered over the rest when not empty.
	Modal   string
	ModalBg lipgloss.Color
	Bg      lipgloss.Color
}

// Render composes the final view output.
func Render(s Screen) string {
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}
	base := lipgloss.JoinVertical(lipgloss.Left, s.Title, s.Table, s.Footer)
	base = PadLines(base, s.Width, s.Height, s.Bg)
	if s.Modal != "" {
		return Overlay(base, s.Modal, s.Width, s.Height, s.ModalBg)
	}
	return base
}
