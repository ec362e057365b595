package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 3

// FooterState holds the strings and styles of the footer.
type FooterState struct {
	Width       int
	SummaryText string // calibration summary or input prompt
	StatusText  string
	HelpText    string

	SummaryStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	HelpStyle    lipgloss.Style
	Bg           lipgloss.Color
}

// RenderFooter renders the summary, status and help lines.
func RenderFooter(s FooterState) string {
	lines := []string{
		footerLine(s.Width, s.SummaryStyle, s.SummaryText),
		footerLine(s.Width, s.StatusStyle, s.StatusText),
		footerLine(s.Width, s.HelpStyle, s.HelpText),
	}
	return PlaceBox(s.Width, FooterHeight, lipgloss.Top, strings.Join(lines, "\n"), s.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
		style = style.Width(contentWidth)
	}
	return style.Render(content)
}
