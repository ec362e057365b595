package calibrate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/slot"
)

// Precondition errors. Any other input shape calibrates without error.
var (
	ErrNilDay            = errors.New("day is nil")
	ErrNegativeTotalTime = errors.New("total time cannot be negative")
)

// Report describes what a calibration pass found.
type Report struct {
	Blocks []Block

	// Degenerate holds indexes into Blocks of blocks without flexible time.
	Degenerate []int
	// OverCommitted holds indexes into Blocks whose fixed-length slots
	// exceed the block length. Their flexible slots were given 0 minutes.
	OverCommitted []int
	// OverCommittedSlots holds indexes of slots whose fixed-length
	// sub-slots exceed the slot's own span.
	OverCommittedSlots []int
}

// HasOverCommit reports whether any block or slot was over-committed.
func (r Report) HasOverCommit() bool {
	return len(r.OverCommitted) > 0 || len(r.OverCommittedSlots) > 0
}

// FlaggedSlots returns the indexes of slots inside an over-committed block,
// plus the slots whose sub-slots are over-committed.
func (r Report) FlaggedSlots() map[int]bool {
	flagged := make(map[int]bool)
	for _, idx := range r.OverCommitted {
		b := r.Blocks[idx]
		for i := b.StartIndex; i < b.EndIndex; i++ {
			flagged[i] = true
		}
	}
	for _, i := range r.OverCommittedSlots {
		flagged[i] = true
	}
	return flagged
}

// Summary returns a one-line description of the inconsistencies found,
// or an empty string when there are none worth showing.
func (r Report) Summary() string {
	if !r.HasOverCommit() {
		return ""
	}
	var parts []string
	for _, idx := range r.OverCommitted {
		b := r.Blocks[idx]
		parts = append(parts, fmt.Sprintf("block %d-%d over by %s",
			b.StartIndex+1, b.EndIndex, slot.FormatDuration(b.FixedTime-b.BlockLength)))
	}
	for _, idx := range r.OverCommittedSlots {
		parts = append(parts, fmt.Sprintf("slot %d subslots over-committed", idx+1))
	}
	return "over-committed: " + strings.Join(parts, ", ")
}

// Day recalibrates d in place. It is the single entry point to call after
// any edit of a day's slots, flags, requested times or anchor starts.
func Day(d *slot.Day) (Report, error) {
	report, err := Blocks(d)
	if err != nil {
		return Report{}, err
	}

	for _, idx := range report.OverCommitted {
		b := report.Blocks[idx]
		logger.Warn("over-committed block",
			"date", d.Date,
			"first", b.StartIndex,
			"end", b.EndIndex,
			"length", b.BlockLength,
			"fixed", b.FixedTime)
	}
	for _, idx := range report.OverCommittedSlots {
		logger.Warn("over-committed subslots", "date", d.Date, "slot", idx)
	}
	logger.Debug("calibrated day",
		"date", d.Date,
		"slots", d.Len(),
		"blocks", len(report.Blocks))

	return report, nil
}

// Blocks assigns start and assigned values to every slot of d, block by
// block, then recurses one level into slots that carry sub-slots.
// The first slot is always anchored at the day's start.
func Blocks(d *slot.Day) (Report, error) {
	if d == nil {
		return Report{}, ErrNilDay
	}
	if d.TotalTime < 0 {
		return Report{}, fmt.Errorf("%w: %d", ErrNegativeTotalTime, d.TotalTime)
	}
	if len(d.Slots) == 0 {
		return Report{}, nil
	}

	slots := d.Slots
	slots[0].Start = d.Start

	report := Report{Blocks: Partition(slots, d.End())}
	for bi, b := range report.Blocks {
		if b.Degenerate() {
			report.Degenerate = append(report.Degenerate, bi)
		}
		if b.OverCommitted() {
			report.OverCommitted = append(report.OverCommitted, bi)
		}

		clock := slots[b.StartIndex].Start
		for i := b.StartIndex; i < b.EndIndex; i++ {
			s := &slots[i]
			s.Start = clock
			if s.FixedLength {
				s.Assigned = s.ReqTime
			} else {
				s.Assigned = scale(s.ReqTime, b.Ratio)
			}
			clock += s.Assigned
		}
	}

	for i := range slots {
		s := &slots[i]
		if len(s.SubSlots) == 0 {
			continue
		}
		if SubSlots(s.SubSlots, s.Start, s.End()).OverCommitted() {
			report.OverCommittedSlots = append(report.OverCommittedSlots, i)
		}
	}

	return report, nil
}

// SubSlots calibrates subs as a single block spanning [start, end).
// Sub-slots have no anchors; only FixedLength is honoured.
func SubSlots(subs []slot.SubSlot, start, end int) Block {
	b := Block{EndIndex: len(subs), BlockLength: end - start}
	for _, s := range subs {
		if s.FixedLength {
			b.FixedTime += s.ReqTime
		} else {
			b.ReqTime += s.ReqTime
		}
	}
	b.Ratio = ratio(b.BlockLength, b.FixedTime, b.ReqTime)

	clock := start
	for i := range subs {
		s := &subs[i]
		s.Start = clock
		if s.FixedLength {
			s.Assigned = s.ReqTime
		} else {
			s.Assigned = scale(s.ReqTime, b.Ratio)
		}
		clock += s.Assigned
	}
	return b
}
