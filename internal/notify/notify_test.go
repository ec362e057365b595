package notify

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/slot"
)

func TestNewDesktop(t *testing.T) {
	d := NewDesktop("notify-send -u low", time.Second)
	if d.command != "notify-send" || len(d.args) != 2 || d.args[1] != "low" {
		t.Errorf("unexpected command %q %v", d.command, d.args)
	}

	if d := NewDesktop("   ", time.Second); d.command != "" {
		t.Errorf("expected the system service for a blank command, got %q", d.command)
	}
}

func TestDesktop_NotifySystem(t *testing.T) {
	restore := showDesktop
	t.Cleanup(func() {
		showDesktop = restore
		execCommand = exec.CommandContext
	})

	var gotTitle, gotBody string
	showDesktop = func(title, body string) error {
		gotTitle, gotBody = title, body
		return nil
	}
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		t.Errorf("unexpected command %s %v", name, args)
		return exec.CommandContext(ctx, "true")
	}

	d := NewDesktop("", time.Second)
	if err := d.Notify(context.Background(), Title+"write", "09:30"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if gotTitle != "Start new task!: write" || gotBody != "09:30" {
		t.Errorf("unexpected notification %q %q", gotTitle, gotBody)
	}
}

func TestDesktop_NotifySystemFailures(t *testing.T) {
	restore := showDesktop
	t.Cleanup(func() { showDesktop = restore })

	showDesktop = func(string, string) error { return errors.New("no notification service") }
	if err := NewDesktop("", time.Second).Notify(context.Background(), "t", "b"); err == nil {
		t.Error("expected the service error")
	}

	block := make(chan struct{})
	defer close(block)
	showDesktop = func(string, string) error {
		<-block
		return nil
	}
	err := NewDesktop("", 10*time.Millisecond).Notify(context.Background(), "t", "b")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the timeout to win, got %v", err)
	}
}

func TestDesktop_NotifyPassesTitleAndBody(t *testing.T) {
	var gotName string
	var gotArgs []string
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { execCommand = exec.CommandContext })

	d := NewDesktop("notify-send -u low", time.Second)
	if err := d.Notify(context.Background(), Title+"write", ""); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if gotName != "notify-send" {
		t.Errorf("expected notify-send, got %s", gotName)
	}
	want := []string{"-u", "low", "Start new task!: write", ""}
	if len(gotArgs) != len(want) {
		t.Fatalf("expected args %v, got %v", want, gotArgs)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("arg %d: got %q, want %q", i, gotArgs[i], want[i])
		}
	}
}

func TestDesktop_NotifyReportsFailure(t *testing.T) {
	execCommand = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { execCommand = exec.CommandContext })

	d := NewDesktop("notify-send", time.Second)
	if err := d.Notify(context.Background(), "t", "b"); err == nil {
		t.Error("expected error from failing command")
	}
}

func TestFromConfig(t *testing.T) {
	n := FromConfig(config.NotifyConfig{Enabled: false})
	if _, ok := n.(Nop); !ok {
		t.Errorf("expected Nop, got %T", n)
	}
	if err := n.Notify(context.Background(), "a", "b"); err != nil {
		t.Errorf("Nop should never fail: %v", err)
	}

	n = FromConfig(config.NotifyConfig{Enabled: true, Command: "notify-send", TimeoutSeconds: 3})
	d, ok := n.(*Desktop)
	if !ok {
		t.Fatalf("expected *Desktop, got %T", n)
	}
	if d.command != "notify-send" || d.timeout != 3*time.Second {
		t.Errorf("unexpected notifier %+v", d)
	}

	n = FromConfig(config.NotifyConfig{Enabled: true})
	if d, ok := n.(*Desktop); !ok || d.command != "" {
		t.Errorf("expected the system service notifier, got %#v", n)
	}
}

func TestTracker(t *testing.T) {
	d := &slot.Day{Date: "2025-01-09", Slots: []slot.Slot{
		{Start: 480, Assigned: 60, Description: "mail"},
		{Start: 540, Assigned: 60, Description: "write"},
	}}

	var tr Tracker
	if _, changed := tr.Update(d, 500); changed {
		t.Error("first update must only prime the tracker")
	}
	if _, changed := tr.Update(d, 530); changed {
		t.Error("same slot must not report a change")
	}
	s, changed := tr.Update(d, 545)
	if !changed || s.Description != "write" {
		t.Errorf("expected change to write, got %v %q", changed, s.Description)
	}
	if _, changed := tr.Update(d, 550); changed {
		t.Error("no change expected while write runs")
	}

	// Moving back before the first slot records the position without notifying.
	if _, changed := tr.Update(d, 100); changed {
		t.Error("no notification before the first slot")
	}
	if s, changed := tr.Update(d, 480); !changed || s.Description != "mail" {
		t.Errorf("expected change to mail, got %v %q", changed, s.Description)
	}

	other := &slot.Day{Date: "2025-01-10", Slots: d.Slots}
	if _, changed := tr.Update(other, 545); changed {
		t.Error("switching days must prime again")
	}
}
