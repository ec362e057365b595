package store

import (
	"context"
	"fmt"

	"github.com/javiermolinar/daybox/internal/logger"
	"github.com/javiermolinar/daybox/internal/slot"
)

// Export copies the days between from and to, and every template, from repo
// into a JSON document at path. It returns the number of days written.
func Export(ctx context.Context, repo slot.Repository, from, to, path string) (int, error) {
	days, err := repo.ListDays(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("listing days: %w", err)
	}
	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing templates: %w", err)
	}

	dst, err := New(path)
	if err != nil {
		return 0, err
	}

	dst.mu.Lock()
	defer dst.mu.Unlock()

	doc, err := dst.read()
	if err != nil {
		return 0, err
	}
	merge(doc, &Document{Days: days, Templates: templates})
	if err := dst.write(doc); err != nil {
		return 0, err
	}

	logger.Info("exported days", "count", len(days), "path", path)
	return len(days), nil
}

// Import saves every day and template found in the JSON document at path
// into repo, replacing existing entries with the same date or name.
func Import(ctx context.Context, repo slot.Repository, path string) (int, error) {
	src, err := New(path)
	if err != nil {
		return 0, err
	}

	src.mu.RLock()
	doc, err := src.read()
	src.mu.RUnlock()
	if err != nil {
		return 0, err
	}

	for _, d := range doc.Days {
		if err := repo.SaveDay(ctx, d); err != nil {
			return 0, fmt.Errorf("importing day %s: %w", d.Date, err)
		}
	}
	for _, t := range doc.Templates {
		if err := repo.SaveTemplate(ctx, t); err != nil {
			return 0, fmt.Errorf("importing template %q: %w", t.Name, err)
		}
	}

	logger.Info("imported days", "count", len(doc.Days), "path", path)
	return len(doc.Days), nil
}

// merge overlays src onto dst by date and template name.
func merge(dst, src *Document) {
	days := make(map[string]int, len(dst.Days))
	for i, d := range dst.Days {
		days[d.Date] = i
	}
	for _, d := range src.Days {
		if i, ok := days[d.Date]; ok {
			dst.Days[i] = d
			continue
		}
		days[d.Date] = len(dst.Days)
		dst.Days = append(dst.Days, d)
	}

	templates := make(map[string]int, len(dst.Templates))
	for i, t := range dst.Templates {
		templates[t.Name] = i
	}
	for _, t := range src.Templates {
		if i, ok := templates[t.Name]; ok {
			dst.Templates[i] = t
			continue
		}
		templates[t.Name] = len(dst.Templates)
		dst.Templates = append(dst.Templates, t)
	}
}
