package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/editor"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) splitCmd() *cobra.Command {
	var days dayFlags

	cmd := &cobra.Command{
		Use:   "split [slot] [parts]",
		Short: "Split a slot into sub-slots",
		Long: fmt.Sprintf(`Append 1 to %d sub-slots to a slot, each requesting an equal share
of the slot's requested time.

Example:
  daybox split 2 3`, editor.MaxSplit),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid number of parts %q", args[1])
			}

			d, report, err := a.editDay(days, func(d *slot.Day) (calibrate.Report, error) {
				return editor.Split(d, i, n)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Split slot %d into %d parts\n", i+1, n)
			a.printEdited(cmd, d, report)
			return nil
		},
	}

	days.register(cmd)
	return cmd
}
