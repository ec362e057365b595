// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config holds the application configuration.
type Config struct {
	Day     DayConfig     `toml:"day"`
	UI      UIConfig      `toml:"ui"`
	Storage StorageConfig `toml:"storage"`
	Todo    TodoConfig    `toml:"todo"`
	Notify  NotifyConfig  `toml:"notify"`
	Log     LogConfig     `toml:"log"`
}

// DayConfig holds the budget used for newly created days.
type DayConfig struct {
	Start          string `toml:"start"`           // e.g., "07:30"
	TotalMinutes   int    `toml:"total_minutes"`   // e.g., 960
	DefaultMinutes int    `toml:"default_minutes"` // requested time of inserted slots
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme     string `toml:"theme"`      // "mocha", "latte"
	DescLimit int    `toml:"desc_limit"` // description column width
	Autosave  bool   `toml:"autosave"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend  string `toml:"backend"` // "sqlite" or "json"
	DBPath   string `toml:"db_path"`
	JSONPath string `toml:"json_path"`
}

// TodoConfig points at external todo sources. Empty paths are skipped.
type TodoConfig struct {
	CursePath   string `toml:"curse_path"`
	ProjectPath string `toml:"project_path"`
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled        bool   `toml:"enabled"`
	Command        string `toml:"command"` // empty uses the system notification service
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Day: DayConfig{
			Start:          "07:30",
			TotalMinutes:   16 * 60,
			DefaultMinutes: 30,
		},
		UI: UIConfig{
			Theme:     "mocha",
			DescLimit: 30,
			Autosave:  true,
		},
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			DBPath:   defaultDataPath("daybox.db"),
			JSONPath: defaultDataPath("db.json"),
		},
		Notify: NotifyConfig{
			Enabled:        true,
			TimeoutSeconds: 5,
		},
		Log: LogConfig{
			Dir: defaultDataPath("logs"),
		},
	}
}

// defaultDataPath returns a path inside the default data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "daybox", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daybox", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.JSONPath = expandPath(cfg.Storage.JSONPath)
	cfg.Todo.CursePath = expandPath(cfg.Todo.CursePath)
	cfg.Todo.ProjectPath = expandPath(cfg.Todo.ProjectPath)
	cfg.Log.Dir = expandPath(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYBOX_DAY_START"); v != "" {
		cfg.Day.Start = v
	}
	if v, ok := envInt("DAYBOX_TOTAL_MINUTES"); ok {
		cfg.Day.TotalMinutes = v
	}
	if v, ok := envInt("DAYBOX_DEFAULT_MINUTES"); ok {
		cfg.Day.DefaultMinutes = v
	}

	if v := os.Getenv("DAYBOX_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("DAYBOX_AUTOSAVE"); v != "" {
		cfg.UI.Autosave = v == "1" || strings.EqualFold(v, "true")
	}

	if v := os.Getenv("DAYBOX_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("DAYBOX_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYBOX_JSON_PATH"); v != "" {
		cfg.Storage.JSONPath = v
	}

	if v := os.Getenv("DAYBOX_CURSE_PATH"); v != "" {
		cfg.Todo.CursePath = v
	}
	if v := os.Getenv("DAYBOX_PROJECT_PATH"); v != "" {
		cfg.Todo.ProjectPath = v
	}

	if v := os.Getenv("DAYBOX_NOTIFY_COMMAND"); v != "" {
		cfg.Notify.Command = v
	}
	if v := os.Getenv("DAYBOX_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Day.Start, "day.start"); err != nil {
		return err
	}
	if c.Day.TotalMinutes <= 0 {
		return errors.New("day.total_minutes must be positive")
	}
	if c.Day.DefaultMinutes <= 0 {
		return errors.New("day.default_minutes must be positive")
	}
	if c.UI.DescLimit < 4 {
		return errors.New("ui.desc_limit must be at least 4")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("storage.db_path must be set")
		}
	case BackendJSON:
		if c.Storage.JSONPath == "" {
			return errors.New("storage.json_path must be set")
		}
	default:
		return fmt.Errorf("invalid storage.backend: %q (want sqlite or json)", c.Storage.Backend)
	}

	if c.Notify.TimeoutSeconds < 0 {
		return errors.New("notify.timeout_seconds cannot be negative")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) || hour > "23" || min > "59" {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// DayStartMinutes returns the configured day start as minutes since midnight.
func (c *Config) DayStartMinutes() int {
	h, _ := strconv.Atoi(c.Day.Start[0:2])
	m, _ := strconv.Atoi(c.Day.Start[3:5])
	return h*60 + m
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
