package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/slot"
)

func (a *App) calibrateCmd() *cobra.Command {
	var (
		days    dayFlags
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Recalibrate a day and print the report",
		Long: `Recompute start and assigned times for a day, save it and print how
its time was split into blocks.

A block runs from one fixed start to the next. Flexible slots in a block
share what the fixed-length slots leave, in proportion to their request.

Example:
  daybox calibrate
  daybox calibrate --date 2025-01-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			setupColor(out, noColor)

			d, report, err := a.editDay(days, calibrate.Day)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Calibrated %s\n\n", d.Date)
			PrintReport(out, d, report)
			return nil
		},
	}

	days.register(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// PrintReport prints one line per calibration block.
func PrintReport(w io.Writer, d *slot.Day, report calibrate.Report) {
	fmt.Fprintln(w, formatHeader("Blocks:"))
	for _, b := range report.Blocks {
		start := d.Slots[b.StartIndex].Start
		line := fmt.Sprintf("  slots %d-%d  %s-%s  fixed %s  flexible %s  ratio %.2f",
			b.StartIndex+1, b.EndIndex,
			slot.MinutesToTime(start), slot.MinutesToTime(start+b.BlockLength),
			slot.FormatDuration(b.FixedTime), slot.FormatDuration(b.ReqTime),
			b.Ratio,
		)
		switch {
		case b.OverCommitted():
			line = formatWarn(line + "  over-committed")
		case b.Degenerate():
			line = formatMuted(line + "  no flexible time")
		}
		fmt.Fprintln(w, line)
	}
	if summary := report.Summary(); summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, formatWarn(summary))
	}
}
