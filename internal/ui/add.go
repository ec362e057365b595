package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/editor"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) addCmd() *cobra.Command {
	var (
		days        dayFlags
		after       int
		req         int
		fixedLength bool
		at          string
	)

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add a slot to a day",
		Long: `Add a slot to a day and recalibrate it.

The slot goes after the last one unless --after is given (0 puts it first).
--at pins its start time, which makes it an anchor.

Example:
  daybox add "Write documentation" --req 90
  daybox add "Standup" --after 2 --req 15 --fixed-length --at 0930`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.TrimSpace(args[0])
			if desc == "" {
				return fmt.Errorf("description cannot be empty")
			}
			if !cmd.Flags().Changed("req") {
				req = a.config.Day.DefaultMinutes
			}
			start := -1
			if at != "" {
				minute, err := parseClockArg(at)
				if err != nil {
					return err
				}
				start = minute
			}

			d, report, err := a.editDay(days, func(d *slot.Day) (calibrate.Report, error) {
				pos := d.Len() - 1
				if cmd.Flags().Changed("after") {
					pos = after - 1
				}
				report, err := editor.InsertTodo(d, pos, req, desc)
				if err != nil {
					return report, err
				}
				i := pos + 1
				if start >= 0 {
					if report, err = editor.SetStart(d, i, start); err != nil {
						return report, err
					}
				}
				if fixedLength {
					return editor.ToggleFixedLength(d, i)
				}
				return report, nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", desc, d.Date)
			a.printEdited(cmd, d, report)
			return nil
		},
	}

	days.register(cmd)
	cmd.Flags().IntVar(&after, "after", 0, "Insert after slot N (0 = first)")
	cmd.Flags().IntVar(&req, "req", 0, "Requested minutes (default from config)")
	cmd.Flags().BoolVar(&fixedLength, "fixed-length", false, "Keep the requested time exactly")
	cmd.Flags().StringVar(&at, "at", "", "Fixed start time (HHMM or HH:MM)")
	return cmd
}

// editDay loads the selected day, applies edit and saves the result.
func (a *App) editDay(days dayFlags, edit func(*slot.Day) (calibrate.Report, error)) (*slot.Day, calibrate.Report, error) {
	ctx := context.Background()
	d, err := a.day(ctx, days)
	if err != nil {
		return nil, calibrate.Report{}, err
	}
	report, err := edit(d)
	if err != nil {
		return nil, calibrate.Report{}, err
	}
	if err := a.state.Save(ctx, d); err != nil {
		return nil, calibrate.Report{}, err
	}
	return d, report, nil
}

// printEdited shows the day after an edit.
func (a *App) printEdited(cmd *cobra.Command, d *slot.Day, report calibrate.Report) {
	out := cmd.OutOrStdout()
	setupColor(out, false)
	fmt.Fprintln(out)
	PrintDay(out, d, report, PrintOpts{Now: a.nowFor(d)})
}

// parseClockArg accepts "0930", "930" or "09:30".
func parseClockArg(s string) (int, error) {
	return slot.ParseClock(strings.ReplaceAll(strings.TrimSpace(s), ":", ""))
}

// parseIndex converts a 1-based slot number from the command line.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid slot number %q", s)
	}
	return n - 1, nil
}
