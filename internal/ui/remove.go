package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/editor"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) removeCmd() *cobra.Command {
	var days dayFlags

	cmd := &cobra.Command{
		Use:     "rm [slot]",
		Aliases: []string{"remove"},
		Short:   "Remove a slot from a day",
		Long: `Remove a slot by its number as printed by 'daybox show'.

A day always keeps at least one slot.

Example:
  daybox rm 3
  daybox rm 1 --date tomorrow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			var removed string
			d, report, err := a.editDay(days, func(d *slot.Day) (calibrate.Report, error) {
				if i < d.Len() {
					removed = d.Slots[i].Description
				}
				return editor.Delete(d, i, a.config.Day.DefaultMinutes)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", removed, d.Date)
			a.printEdited(cmd, d, report)
			return nil
		},
	}

	days.register(cmd)
	return cmd
}
