// Package editor implements the edits a user can make to a day plan.
//
// Every operation mutates the day and then recalibrates it, so callers
// never see a day whose starts and assigned times are stale.
package editor

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/daybox/internal/calibrate"
	"github.com/javiermolinar/daybox/internal/slot"
)

// Edit errors.
var (
	ErrIndexOutOfRange   = errors.New("slot index out of range")
	ErrInvalidSplit      = errors.New("split count must be between 1 and 9")
	ErrBothAnchors       = errors.New("cannot swap two slots with fixed start times")
	ErrLastAnchorLength  = errors.New("the last slot cannot have both a fixed start and a fixed length")
	ErrInvalidClockStart = errors.New("start must be within the day")
)

// InsertPlaceholder describes slots inserted by the user until they are named.
// It differs from slot.DefaultDescription so a blank inserted slot stands
// out from the day's initial one.
const InsertPlaceholder = "___"

// MaxSplit is the largest number of sub-slots a slot can be split into.
const MaxSplit = 9

func checkIndex(d *slot.Day, i int) error {
	if i < 0 || i >= len(d.Slots) {
		return fmt.Errorf("%w: %d (day has %d slots)", ErrIndexOutOfRange, i, len(d.Slots))
	}
	return nil
}

// Insert adds a flexible placeholder slot after index after.
// An after of -1 inserts at the top of the day.
func Insert(d *slot.Day, after, reqtime int) (calibrate.Report, error) {
	return InsertTodo(d, after, reqtime, InsertPlaceholder)
}

// InsertTodo adds a flexible slot described by desc after index after.
func InsertTodo(d *slot.Day, after, reqtime int, desc string) (calibrate.Report, error) {
	if after < -1 || after >= len(d.Slots) {
		return calibrate.Report{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, after)
	}
	s, err := slot.NewSlot(desc, reqtime)
	if err != nil {
		return calibrate.Report{}, err
	}
	insertAt(d, after+1, s)
	return calibrate.Day(d)
}

func insertAt(d *slot.Day, i int, s slot.Slot) {
	d.Slots = append(d.Slots, slot.Slot{})
	copy(d.Slots[i+1:], d.Slots[i:])
	d.Slots[i] = s
}

// Delete removes slot i. A day is never left empty: deleting the only slot
// leaves a placeholder. When the last slot goes, the new last slot is made
// flexible so it can stretch to the end of the day.
func Delete(d *slot.Day, i, reqtime int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	d.Slots = append(d.Slots[:i], d.Slots[i+1:]...)

	switch {
	case len(d.Slots) == 0:
		placeholder, err := slot.NewSlot(InsertPlaceholder, reqtime)
		if err != nil {
			return calibrate.Report{}, err
		}
		d.Slots = append(d.Slots, placeholder)
	case i == len(d.Slots):
		d.Slots[i-1].FixedLength = false
	}
	return calibrate.Day(d)
}

// Duplicate inserts a copy of slot i right after it.
func Duplicate(d *slot.Day, i int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	c := d.Slots[i].Clone()
	c.FixedTime = false
	insertAt(d, i+1, c)
	return calibrate.Day(d)
}

// Halve splits slot i into two slots with half the requested time each.
// The first half keeps the original's anchor.
func Halve(d *slot.Day, i int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	half := d.Slots[i].ReqTime / 2
	d.Slots[i].ReqTime = half

	second := d.Slots[i].Clone()
	second.FixedTime = false
	insertAt(d, i+1, second)
	return calibrate.Day(d)
}

// Split appends n sub-slots to slot i, each requesting an equal share of
// its requested time.
func Split(d *slot.Day, i, n int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	if n < 1 || n > MaxSplit {
		return calibrate.Report{}, fmt.Errorf("%w: %d", ErrInvalidSplit, n)
	}
	s := &d.Slots[i]
	share := s.ReqTime / n
	for range n {
		s.SubSlots = append(s.SubSlots, slot.SubSlot{
			ReqTime:     share,
			Description: slot.DefaultDescription,
		})
	}
	return calibrate.Day(d)
}

// MoveUp swaps slot i with the one above it.
func MoveUp(d *slot.Day, i int) (calibrate.Report, error) {
	return swap(d, i, i-1)
}

// MoveDown swaps slot i with the one below it.
func MoveDown(d *slot.Day, i int) (calibrate.Report, error) {
	return swap(d, i, i+1)
}

func swap(d *slot.Day, i, j int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	if err := checkIndex(d, j); err != nil {
		return calibrate.Report{}, err
	}
	if d.Slots[i].FixedTime && d.Slots[j].FixedTime {
		return calibrate.Report{}, ErrBothAnchors
	}
	d.Slots[i], d.Slots[j] = d.Slots[j], d.Slots[i]
	return calibrate.Day(d)
}

// ToggleFixedTime flips whether slot i is an anchor. The slot before it
// becomes flexible so it can absorb the gap up to the anchor.
func ToggleFixedTime(d *slot.Day, i int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	d.Slots[i].FixedTime = !d.Slots[i].FixedTime
	releasePrevious(d, i)
	return calibrate.Day(d)
}

// ToggleFixedLength flips whether slot i keeps its requested time exactly.
func ToggleFixedLength(d *slot.Day, i int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	s := &d.Slots[i]
	if i == len(d.Slots)-1 && s.FixedTime && !s.FixedLength {
		return calibrate.Report{}, ErrLastAnchorLength
	}
	s.FixedLength = !s.FixedLength
	return calibrate.Day(d)
}

// SetReqTime changes the requested time of slot i. With lock set the slot
// also becomes fixed-length, as when the user types into the assigned column.
func SetReqTime(d *slot.Day, i, minutes int, lock bool) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	if minutes < 0 {
		return calibrate.Report{}, slot.ErrNegativeReqTime
	}
	d.Slots[i].ReqTime = minutes
	if lock {
		d.Slots[i].FixedLength = true
	}
	return calibrate.Day(d)
}

// SetStart pins slot i to minute. For the first slot this moves the day's
// start; any other slot becomes an anchor.
func SetStart(d *slot.Day, i, minute int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	if minute < 0 || minute >= slot.MinutesPerDay {
		return calibrate.Report{}, fmt.Errorf("%w: %d", ErrInvalidClockStart, minute)
	}
	d.Slots[i].Start = minute
	if i == 0 {
		d.Start = minute
	} else {
		d.Slots[i].FixedTime = true
		releasePrevious(d, i)
	}
	return calibrate.Day(d)
}

// StartNow anchors slot i at the current minute, the "I'm starting this now" action.
func StartNow(d *slot.Day, i, now int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	if i == 0 {
		return SetStart(d, i, now)
	}
	d.Slots[i].Start = now
	d.Slots[i].FixedTime = true
	releasePrevious(d, i)
	return calibrate.Day(d)
}

// AdoptAssigned makes the assigned time of slot i its new requested time.
func AdoptAssigned(d *slot.Day, i int) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	d.Slots[i].ReqTime = d.Slots[i].Assigned
	return calibrate.Day(d)
}

// SetDescription renames slot i.
func SetDescription(d *slot.Day, i int, desc string) (calibrate.Report, error) {
	if err := checkIndex(d, i); err != nil {
		return calibrate.Report{}, err
	}
	d.Slots[i].Description = desc
	return calibrate.Day(d)
}

// ApplyTemplate replaces the day's plan with a template.
func ApplyTemplate(d *slot.Day, t slot.Template) (calibrate.Report, error) {
	d.ApplyTemplate(t)
	return calibrate.Day(d)
}

func releasePrevious(d *slot.Day, i int) {
	if i > 0 {
		d.Slots[i-1].FixedLength = false
	}
}
