package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Binding is one line of the help modal.
type Binding struct {
	Keys string
	Help string
}

// HelpStyles groups the styles of the help modal.
type HelpStyles struct {
	Box   lipgloss.Style
	Title lipgloss.Style
	Key   lipgloss.Style
	Text  lipgloss.Style
}

// RenderHelp renders the key reference shown over the editor.
func RenderHelp(bindings []Binding, styles HelpStyles) string {
	keyW := 0
	for _, b := range bindings {
		keyW = max(keyW, lipgloss.Width(b.Keys))
	}

	lines := make([]string, 0, len(bindings)+2)
	lines = append(lines, styles.Title.Render("Keys"), "")
	for _, b := range bindings {
		keys := styles.Key.Width(keyW + 2).Render(b.Keys)
		lines = append(lines, keys+styles.Text.Render(b.Help))
	}
	return styles.Box.Render(strings.Join(lines, "\n"))
}
