package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a w×h box filled with bg.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content,
		lipgloss.WithWhitespaceBackground(bg))
	return PadLines(placed, w, h, bg)
}

// PadLines pads or cuts content to exactly height lines, each at least
// width cells wide, filling with bg.
func PadLines(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += fill.Render(strings.Repeat(" ", gap))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// Overlay centers box over base, a width×height screen.
func Overlay(base, box string, width, height int, boxBg lipgloss.Color) string {
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, lipgloss.Width(line))
	}
	if boxW == 0 {
		return base
	}
	boxW = min(boxW, width)
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)

	bgSeq := backgroundSeq(boxBg)
	baseLines := strings.Split(PadLines(base, width, height, ""), "\n")
	for i, line := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		line = ansi.Truncate(line, boxW, "")
		if gap := boxW - lipgloss.Width(line); gap > 0 {
			line += lipgloss.NewStyle().Background(boxBg).Render(strings.Repeat(" ", gap))
		}
		if bgSeq != "" {
			// Resets inside the box would otherwise leak the base background.
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
		}
		under := baseLines[row]
		baseLines[row] = ansi.Cut(under, 0, left) + line + ansi.ResetStyle + ansi.Cut(under, left+boxW, width)
	}
	return strings.Join(baseLines, "\n")
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
