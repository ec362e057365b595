// Package dateutil converts between calendar dates, day keys and offsets from today.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// KeyLayout is the layout of day keys ("2025-01-15").
const KeyLayout = time.DateOnly

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated, inclusive range of day keys.
type DateRange struct {
	From string
	To   string
}

// NewDateRange creates a DateRange. Empty from means today, empty to means from.
func NewDateRange(from, to string, now time.Time) (DateRange, error) {
	start, err := ParseRelativeDate(from, now)
	if err != nil {
		return DateRange{}, err
	}
	end := start
	if to != "" {
		end, err = ParseRelativeDate(to, now)
		if err != nil {
			return DateRange{}, err
		}
	}
	if end.Before(start) {
		return DateRange{}, ErrEndDateBeforeStart
	}
	return DateRange{From: Key(start), To: Key(end)}, nil
}

// Key returns the day key for t.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a day key.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OffsetKey returns the key of the day offset days away from now.
func OffsetKey(now time.Time, offset int) string {
	return Key(TruncateToDay(now).AddDate(0, 0, offset))
}

// OffsetOf returns how many days the day key lies from now.
func OffsetOf(now time.Time, key string) (int, error) {
	t, err := time.ParseInLocation(KeyLayout, key, now.Location())
	if err != nil {
		return 0, ErrInvalidDateFormat
	}
	today := TruncateToDay(now)
	// Go through UTC so DST transitions do not skew the count.
	a := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24), nil
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - "yesterday" or "tomorrow"
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Last prefixed: "last-monday" through "last-sunday" (previous occurrence)
//
// All inputs are case-insensitive. Past dates are allowed since old days can be reviewed.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if name, ok := strings.CutPrefix(input, "last-"); ok {
		if target, ok := weekdayMap[name]; ok {
			return previousWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	result, err := time.ParseInLocation(KeyLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}

func previousWeekday(today time.Time, target time.Weekday) time.Time {
	daysSince := int(today.Weekday()) - int(target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return today.AddDate(0, 0, -daysSince)
}
