package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/db"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/store"
)

// firstDay and lastDay bound a range covering every stored day.
const (
	firstDay = "0000-01-01"
	lastDay  = "9999-12-31"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Import days from a JSON document or another database",
		Long: `Import every day and template from a JSON document (as written by
'daybox export') or from another daybox SQLite database.

Days and templates already present are replaced.

Example:
  daybox import ~/backup/days.json
  daybox import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			if current, err := resolvePath(currentStoragePath(a.config.Storage)); err == nil && current == sourcePath {
				return fmt.Errorf("source matches the current storage")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			ctx := context.Background()
			var count int
			if isJSONPath(sourcePath) {
				count, err = store.Import(ctx, a.repo, sourcePath)
			} else {
				count, err = importDatabase(ctx, a.repo, sourcePath)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d days from %s\n", count, sourcePath)
			return nil
		},
	}

	return cmd
}

// importDatabase copies every day and template of the SQLite database at
// sourcePath into dest.
func importDatabase(ctx context.Context, dest slot.Repository, sourcePath string) (int, error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	days, err := sourceRepo.ListDays(ctx, firstDay, lastDay)
	if err != nil {
		return 0, fmt.Errorf("listing source days: %w", err)
	}
	templates, err := sourceRepo.ListTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing source templates: %w", err)
	}

	imported := 0
	for _, d := range days {
		if err := dest.SaveDay(ctx, d); err != nil {
			return imported, fmt.Errorf("importing day %s: %w", d.Date, err)
		}
		imported++
	}
	for _, t := range templates {
		if err := dest.SaveTemplate(ctx, t); err != nil {
			return imported, fmt.Errorf("importing template %q: %w", t.Name, err)
		}
	}

	return imported, nil
}

func currentStoragePath(cfg config.StorageConfig) string {
	if cfg.Backend == config.BackendJSON {
		return cfg.JSONPath
	}
	return cfg.DBPath
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
