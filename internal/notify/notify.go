// Package notify sends desktop notifications when the running slot changes.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/slot"
)

// Notifier delivers a message to the user.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Title of the notification sent when a new slot begins.
const Title = "Start new task!: "

// Nop discards notifications.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, string, string) error { return nil }

var (
	execCommand = exec.CommandContext
	showDesktop = func(title, body string) error { return beeep.Notify(title, body, "") }
)

// Desktop shows a notification through the desktop's notification service.
// When a command is configured, such as "notify-send -u low", it runs that
// instead with the title and body as its last two arguments.
type Desktop struct {
	command string
	args    []string
	timeout time.Duration
}

// NewDesktop creates a Desktop notifier. An empty command uses the system
// notification service.
func NewDesktop(command string, timeout time.Duration) *Desktop {
	d := &Desktop{timeout: timeout}
	if fields := strings.Fields(command); len(fields) > 0 {
		d.command, d.args = fields[0], fields[1:]
	}
	return d
}

// Notify delivers the notification and waits for it, bounded by the timeout.
func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if d.command == "" {
		return d.notifySystem(ctx, title, body)
	}

	args := append(append([]string{}, d.args...), title, body)
	out, err := execCommand(ctx, d.command, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("running %s: %w: %s", d.command, err, msg)
		}
		return fmt.Errorf("running %s: %w", d.command, err)
	}
	return nil
}

func (d *Desktop) notifySystem(ctx context.Context, title, body string) error {
	done := make(chan error, 1)
	go func() { done <- showDesktop(title, body) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("showing notification: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("showing notification: %w", ctx.Err())
	}
}

// FromConfig returns the notifier described by cfg, or Nop when disabled.
func FromConfig(cfg config.NotifyConfig) Notifier {
	if !cfg.Enabled {
		return Nop{}
	}
	return NewDesktop(cfg.Command, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// Tracker remembers which slot was running the last time it was asked and
// reports when that changes.
type Tracker struct {
	date    string
	current int
	primed  bool
}

// Update returns the newly running slot when the current slot of d at minute
// now differs from the previous call. The first call for a day only records
// the position, so opening the editor does not notify.
func (t *Tracker) Update(d *slot.Day, now int) (slot.Slot, bool) {
	idx := d.CurrentIndex(now)
	if !t.primed || t.date != d.Date {
		t.date, t.current, t.primed = d.Date, idx, true
		return slot.Slot{}, false
	}
	if idx == t.current {
		return slot.Slot{}, false
	}
	t.current = idx
	if idx < 0 {
		return slot.Slot{}, false
	}
	return d.Slots[idx], true
}
