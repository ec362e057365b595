package ui

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/daybox/internal/config"
)

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config", "init")
	if !strings.Contains(out, "Created "+env.configPath) {
		t.Errorf("unexpected output %q", out)
	}
	loaded, err := config.LoadFrom(env.configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Day.TotalMinutes != 600 || loaded.Storage.DBPath != env.cfg.Storage.DBPath {
		t.Errorf("expected the running config written, got %+v", loaded)
	}

	out = env.mustRun(t, "config", "init")
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected an existing file left alone, got %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "config", "show")

	for _, want := range []string{
		"Config file: " + env.configPath,
		"start            = 08:00",
		"total_minutes    = 600",
		"backend          = sqlite",
		"enabled          = false",
		"command          = (system notifications)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[todo]") {
		t.Errorf("expected the todo section hidden when unset:\n%s", out)
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	answers := strings.Join([]string{
		"y",     // edit
		"09:00", // day start
		"abc",   // total minutes, rejected
		"480",   // total minutes
		"",      // default minutes
		"nope",  // theme, rejected
		"latte", // theme
		"",      // desc limit
		"false", // autosave
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := runConfigInteractive(path, strings.NewReader(answers), &out); err != nil {
		t.Fatalf("runConfigInteractive failed: %v\n%s", err, out.String())
	}

	if !strings.Contains(out.String(), "Created one with default values") {
		t.Errorf("expected a new file announced:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `Invalid number "abc"`) {
		t.Errorf("expected the bad number rejected:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `Invalid theme "nope"`) {
		t.Errorf("expected the bad theme rejected:\n%s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Day.Start != "09:00" || cfg.Day.TotalMinutes != 480 {
		t.Errorf("expected the new day budget saved, got %+v", cfg.Day)
	}
	if cfg.Day.DefaultMinutes != config.Default().Day.DefaultMinutes {
		t.Errorf("expected an empty answer to keep the value, got %d", cfg.Day.DefaultMinutes)
	}
	if cfg.UI.Theme != "latte" || cfg.UI.Autosave {
		t.Errorf("expected ui changes saved, got %+v", cfg.UI)
	}
}

func TestRunConfigInteractive_Declined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	if err := runConfigInteractive(path, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written even when not editing: %v", err)
	}
	if strings.Contains(out.String(), "Configuration saved!") {
		t.Errorf("expected no edit:\n%s", out.String())
	}
}

func TestRunConfigInteractive_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// A day start that is not HH:MM fails validation and nothing is saved.
	var out bytes.Buffer
	err := runConfigInteractive(path, strings.NewReader("y\n9am\n"), &out)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected a validation error, got %v", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Day.Start != config.Default().Day.Start {
		t.Errorf("expected the file untouched, got start %q", cfg.Day.Start)
	}
}

func TestPrompterYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		p := prompter{in: bufio.NewReader(strings.NewReader(tt.input)), out: &bytes.Buffer{}}
		if got := p.yesNo("Continue?"); got != tt.want {
			t.Errorf("yesNo(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
