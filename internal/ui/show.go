package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) showCmd() *cobra.Command {
	var (
		days    dayFlags
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's slots",
		Long: `Display a day's slots with their start, requested and assigned times.

Fixed starts are printed in cyan, fixed lengths in magenta.

Example:
  daybox show
  daybox show --offset 1
  daybox show --date last-friday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			setupColor(out, noColor)

			d, err := a.day(context.Background(), days)
			if err != nil {
				return err
			}
			report, err := calibrate.Day(d)
			if err != nil {
				return fmt.Errorf("calibrating day %s: %w", d.Date, err)
			}

			PrintDay(out, d, report, PrintOpts{Now: a.nowFor(d), Verbose: verbose})
			return nil
		},
	}

	days.register(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// nowFor returns the current minute when d is today, or -1.
func (a *App) nowFor(d *slot.Day) int {
	if a.state == nil || d.Date != a.state.Today() {
		return -1
	}
	return a.state.NowMinutes()
}
