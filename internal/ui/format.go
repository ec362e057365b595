package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/slot"
)

const (
	defaultDescWidth = 30
	// " #  HH:MM  " before the description, req/assigned/marker after it.
	rowOverhead   = 37
	subSlotPrefix = " ↳ "
	currentMarker = "  ◀ now"
)

// PrintOpts configures day printing.
type PrintOpts struct {
	Now          int  // Minute of day, or -1 when the day is not today
	Verbose      bool // Show full descriptions
	MaxDescWidth int  // Maximum description width (0 = auto)
}

// CalcDescWidth returns the description column width for d.
func (o PrintOpts) CalcDescWidth(d *slot.Day) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	limit := defaultDescWidth
	if o.Verbose {
		limit = max(termWidth()-rowOverhead, defaultDescWidth)
	}

	longest := runewidth.StringWidth("Description")
	for _, s := range d.Slots {
		longest = max(longest, runewidth.StringWidth(s.Description))
		for _, sub := range s.SubSlots {
			longest = max(longest, runewidth.StringWidth(subSlotPrefix+sub.Description))
		}
	}
	return min(longest, limit)
}

// fitDesc truncates or pads desc to exactly width cells.
func fitDesc(desc string, width int) string {
	if runewidth.StringWidth(desc) > width {
		desc = runewidth.Truncate(desc, width, "...")
	}
	return runewidth.FillRight(desc, width)
}

// dayTitle formats a day key for headings.
func dayTitle(date string) string {
	t, err := dateutil.ParseKey(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// PrintDay prints the day's slots followed by the budget and any
// calibration warnings.
func PrintDay(w io.Writer, d *slot.Day, report calibrate.Report, opts PrintOpts) {
	width := opts.CalcDescWidth(d)
	flagged := report.FlaggedSlots()
	current := -1
	if opts.Now >= 0 {
		current = d.CurrentIndex(opts.Now)
	}

	fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(dayTitle(d.Date)))
	fmt.Fprintln(w, formatMuted(fmt.Sprintf(" #  Start  %s  %6s  %8s",
		runewidth.FillRight("Description", width), "Req", "Assigned")))

	for i, s := range d.Slots {
		PrintSlotRow(w, i, s, SlotRowOpts{
			Width:   width,
			Current: i == current,
			Past:    current >= 0 && i != current && s.End() <= opts.Now,
			Flagged: flagged[i],
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Planned: %s of %s (%s-%s)\n",
		slot.FormatDuration(d.AssignedTotal()),
		slot.FormatDuration(d.TotalTime),
		slot.MinutesToTime(d.Start),
		slot.MinutesToTime(d.End()),
	)
	if summary := report.Summary(); summary != "" {
		fmt.Fprintln(w, formatWarn(summary))
	}
}

// SlotRowOpts configures how one slot row is highlighted.
type SlotRowOpts struct {
	Width   int
	Current bool
	Past    bool
	Flagged bool
}

// PrintSlotRow prints slot i and its sub-slots.
func PrintSlotRow(w io.Writer, i int, s slot.Slot, opts SlotRowOpts) {
	start := slot.MinutesToTime(s.Start)
	if s.FixedTime {
		start = formatAnchor(start)
	}
	req := fmt.Sprintf("%6s", slot.FormatDuration(s.ReqTime))
	if s.FixedLength {
		req = formatLocked(req)
	}
	assigned := fmt.Sprintf("%8s", slot.FormatDuration(s.Assigned))
	if opts.Flagged {
		assigned = formatWarn(assigned)
	}

	desc := fitDesc(s.Description, opts.Width)
	marker := ""
	switch {
	case opts.Current:
		desc = formatCurrent(desc)
		marker = currentMarker
	case opts.Past:
		desc = formatMuted(desc)
	}
	fmt.Fprintf(w, "%2d  %s  %s  %s  %s%s\n", i+1, start, desc, req, assigned, marker)

	for _, sub := range s.SubSlots {
		fmt.Fprintln(w, formatMuted(fmt.Sprintf("    %s  %s  %6s  %8s",
			slot.MinutesToTime(sub.Start),
			fitDesc(subSlotPrefix+sub.Description, opts.Width),
			slot.FormatDuration(sub.ReqTime),
			slot.FormatDuration(sub.Assigned),
		)))
	}
}
