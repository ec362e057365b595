package slot

import (
	"fmt"
	"strconv"
	"time"
)

// MinutesPerDay is the length of a calendar day in minutes.
const MinutesPerDay = 24 * 60

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) != 5 || t[2] != ':' {
		return 0
	}
	hours, err1 := strconv.Atoi(t[:2])
	mins, err2 := strconv.Atoi(t[3:])
	if err1 != nil || err2 != nil || hours > 23 || mins > 59 {
		return 0
	}
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values past midnight wrap around so that a plan running late still renders.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	m %= MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses the compact clock entry used by the editor.
// Three digits are H + MM ("730" is 07:30), four digits are HH + MM ("1415").
func ParseClock(digits string) (int, error) {
	if len(digits) != 3 && len(digits) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, digits)
	}
	split := len(digits) - 2
	hours, err1 := strconv.Atoi(digits[:split])
	mins, err2 := strconv.Atoi(digits[split:])
	if err1 != nil || err2 != nil || hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, digits)
	}
	return hours*60 + mins, nil
}

// NowMinutes returns the minute of day for t.
func NowMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
