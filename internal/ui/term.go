package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Fixed starts: bold cyan
	colorAnchor = color.New(color.FgCyan, color.Bold)

	// Fixed lengths: bold magenta
	colorLocked = color.New(color.FgMagenta, color.Bold)

	// The slot running now
	colorCurrent = color.New(color.FgGreen, color.Bold)

	// Over-committed blocks and other warnings
	colorWarn = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: sub-slots, past slots and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// setupColor turns colors off when asked to, or when w can't show them
// (not a terminal, NO_COLOR, TERM=dumb).
func setupColor(w io.Writer, noColor bool) {
	if noColor || termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		DisableColor()
		return
	}
	EnableColor()
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatAnchor(s string) string {
	return colorAnchor.Sprint(s)
}

func formatLocked(s string) string {
	return colorLocked.Sprint(s)
}

func formatCurrent(s string) string {
	return colorCurrent.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
