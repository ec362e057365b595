package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  daybox config
  daybox config show
  daybox config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(a.configPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration in effect",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", a.configPath)
			printConfig(out, a.config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current values if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := initConfigFile(a.configPath, a.config)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", a.configPath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", a.configPath)
			}
			return nil
		},
	})

	return cmd
}

// initConfigFile writes cfg to path when no file is there yet.
func initConfigFile(path string, cfg *config.Config) (bool, error) {
	missing, err := pathMissing(path)
	if err != nil {
		return false, fmt.Errorf("checking config path: %w", err)
	}
	if !missing {
		return false, nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return false, fmt.Errorf("saving config: %w", err)
	}
	logger.Info("created config", "path", path)
	return true, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	created, err := initConfigFile(configPath, cfg)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(out, "No config file found. Created one with default values.")
		fmt.Fprintln(out)
	}

	// Display current config
	printConfig(out, cfg)

	p := prompter{in: bufio.NewReader(in), out: out}
	if !p.yesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Day.Start = p.value("Day start (HH:MM)", cfg.Day.Start)
	cfg.Day.TotalMinutes = p.intValue("Day length in minutes", cfg.Day.TotalMinutes)
	cfg.Day.DefaultMinutes = p.intValue("Minutes for new slots", cfg.Day.DefaultMinutes)
	cfg.UI.Theme = p.theme(cfg.UI.Theme)
	cfg.UI.DescLimit = p.intValue("Description column width", cfg.UI.DescLimit)
	cfg.UI.Autosave = p.boolValue("Autosave", cfg.UI.Autosave)
	cfg.Storage.Backend = p.value("Storage backend (sqlite, json)", cfg.Storage.Backend)
	cfg.Storage.DBPath = p.value("Database path", cfg.Storage.DBPath)
	cfg.Storage.JSONPath = p.value("JSON document path", cfg.Storage.JSONPath)
	cfg.Todo.CursePath = p.value("Curse todo file (empty to disable)", cfg.Todo.CursePath)
	cfg.Todo.ProjectPath = p.value("Projects JSON (empty to disable)", cfg.Todo.ProjectPath)
	cfg.Notify.Enabled = p.boolValue("Desktop notifications", cfg.Notify.Enabled)
	cfg.Notify.Command = p.value("Notification command", cfg.Notify.Command)
	cfg.Log.Dir = p.value("Log directory", cfg.Log.Dir)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[day]")
	fmt.Fprintf(w, "  start            = %s\n", cfg.Day.Start)
	fmt.Fprintf(w, "  total_minutes    = %d\n", cfg.Day.TotalMinutes)
	fmt.Fprintf(w, "  default_minutes  = %d\n", cfg.Day.DefaultMinutes)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  desc_limit       = %d\n", cfg.UI.DescLimit)
	fmt.Fprintf(w, "  autosave         = %t\n", cfg.UI.Autosave)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  backend          = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  json_path        = %s\n", cfg.Storage.JSONPath)
	if cfg.Todo.CursePath != "" || cfg.Todo.ProjectPath != "" {
		fmt.Fprintln(w, "\n[todo]")
		fmt.Fprintf(w, "  curse_path       = %s\n", cfg.Todo.CursePath)
		fmt.Fprintf(w, "  project_path     = %s\n", cfg.Todo.ProjectPath)
	}
	fmt.Fprintln(w, "\n[notify]")
	fmt.Fprintf(w, "  enabled          = %t\n", cfg.Notify.Enabled)
	command := cfg.Notify.Command
	if command == "" {
		command = "(system notifications)"
	}
	fmt.Fprintf(w, "  command          = %s\n", command)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  dir              = %s\n", cfg.Log.Dir)
}

// prompter asks questions on out and reads answers line by line from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p prompter) readLine() string {
	input, _ := p.in.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p prompter) yesNo(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	input := strings.ToLower(p.readLine())
	return input == "y" || input == "yes"
}

func (p prompter) value(label, current string) string {
	if current == "" {
		fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	input := p.readLine()
	if input == "" {
		return current
	}
	return input
}

func (p prompter) intValue(label string, current int) int {
	for {
		input := p.value(label, strconv.Itoa(current))
		n, err := strconv.Atoi(input)
		if err == nil {
			return n
		}
		fmt.Fprintf(p.out, "  Invalid number %q\n", input)
	}
}

func (p prompter) boolValue(label string, current bool) bool {
	for {
		input := p.value(label+" (true/false)", strconv.FormatBool(current))
		b, err := strconv.ParseBool(input)
		if err == nil {
			return b
		}
		fmt.Fprintf(p.out, "  Invalid value %q\n", input)
	}
}

func (p prompter) theme(current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(p.value(label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(p.out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
