// Package slot defines the day plan domain types for daybox.
package slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/daybox/internal/dateutil"
)

// Validation errors.
var (
	ErrNegativeReqTime  = errors.New("requested time cannot be negative")
	ErrInvalidTotalTime = errors.New("total time must be positive")
	ErrInvalidStart     = errors.New("day start must be within the day")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock     = errors.New("clock must be entered as HMM or HHMM")
)

// DefaultDescription names the slots and sub-slots the model creates on its
// own: the single slot of a new day or an empty template, and split parts.
// Slots inserted from the editor use editor.InsertPlaceholder instead.
const DefaultDescription = "..."

// SubSlot is a part of a slot. Sub-slots do not nest further and
// FixedTime is kept only for document compatibility; calibration ignores it.
type SubSlot struct {
	Start       int    `json:"start"`
	ReqTime     int    `json:"reqtime"`
	Assigned    int    `json:"assigned"`
	FixedTime   bool   `json:"fixed_time"`
	FixedLength bool   `json:"fixed_length"`
	Description string `json:"description"`
}

// Slot is a task occupying a contiguous span of a day.
// Start and Assigned are owned by calibration, except for an anchor's Start.
type Slot struct {
	Start       int       `json:"start"`
	ReqTime     int       `json:"reqtime"`
	Assigned    int       `json:"assigned"`
	FixedTime   bool      `json:"fixed_time"`
	FixedLength bool      `json:"fixed_length"`
	Description string    `json:"description"`
	SubSlots    []SubSlot `json:"subslots"`
}

// NewSlot creates a flexible slot requesting reqtime minutes.
func NewSlot(description string, reqtime int) (Slot, error) {
	if reqtime < 0 {
		return Slot{}, ErrNegativeReqTime
	}
	return Slot{
		ReqTime:     reqtime,
		Description: description,
		SubSlots:    []SubSlot{},
	}, nil
}

// Clone returns a copy of the slot that shares no memory with s.
func (s Slot) Clone() Slot {
	c := s
	c.SubSlots = make([]SubSlot, len(s.SubSlots))
	copy(c.SubSlots, s.SubSlots)
	return c
}

// End returns the minute at which the slot's assigned span ends.
func (s Slot) End() int {
	return s.Start + s.Assigned
}

// IsAnchor reports whether the slot's start is authoritative.
func (s Slot) IsAnchor() bool {
	return s.FixedTime
}

// Validate checks the slot and its sub-slots.
func (s Slot) Validate() error {
	if s.ReqTime < 0 {
		return fmt.Errorf("slot %q: %w", s.Description, ErrNegativeReqTime)
	}
	for i, sub := range s.SubSlots {
		if sub.ReqTime < 0 {
			return fmt.Errorf("slot %q subslot %d: %w", s.Description, i, ErrNegativeReqTime)
		}
	}
	return nil
}

// Day is one calendar day's plan.
type Day struct {
	Date      string `json:"date"`
	TotalTime int    `json:"total_time"`
	Start     int    `json:"start"`
	Slots     []Slot `json:"slots"`
}

// NewDay creates a Day for date with a single flexible placeholder slot.
func NewDay(date string, start, totalTime int) (*Day, error) {
	d := &Day{
		Date:      date,
		TotalTime: totalTime,
		Start:     start,
	}
	placeholder, _ := NewSlot(DefaultDescription, 1)
	d.Slots = []Slot{placeholder}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the day header and every slot.
func (d *Day) Validate() error {
	if _, err := time.Parse(dateutil.KeyLayout, d.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}
	if d.TotalTime <= 0 {
		return ErrInvalidTotalTime
	}
	if d.Start < 0 || d.Start >= MinutesPerDay {
		return ErrInvalidStart
	}
	for _, s := range d.Slots {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// End returns the minute at which the day's budget runs out.
func (d *Day) End() int {
	return d.Start + d.TotalTime
}

// Len returns the number of slots in the day.
func (d *Day) Len() int {
	return len(d.Slots)
}

// Clone returns a deep copy of the day.
func (d *Day) Clone() *Day {
	c := *d
	c.Slots = make([]Slot, len(d.Slots))
	for i, s := range d.Slots {
		c.Slots[i] = s.Clone()
	}
	return &c
}

// CurrentIndex returns the index of the slot running at minute now,
// or -1 if now is before the first slot.
func (d *Day) CurrentIndex(now int) int {
	current := -1
	for i, s := range d.Slots {
		if s.Start > now {
			break
		}
		current = i
	}
	return current
}

// AssignedTotal returns the sum of assigned minutes over all slots.
func (d *Day) AssignedTotal() int {
	total := 0
	for _, s := range d.Slots {
		total += s.Assigned
	}
	return total
}
