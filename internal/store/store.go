// Package store keeps day plans in a single JSON document on disk.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/javiermolinar/daybox/internal/slot"
)

// Document is the on-disk layout of the store.
type Document struct {
	Days      []*slot.Day     `json:"days"`
	Templates []slot.Template `json:"templates"`
}

// Store implements slot.Repository on top of a JSON file.
// Every call reads the file, so edits made by another process are picked up.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ slot.Repository = (*Store)(nil)

// New returns a Store backed by path. The file is created on first write.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
	}
	return &doc, nil
}

// write replaces the file through a temporary file and a rename.
func (s *Store) write(doc *Document) error {
	slices.SortFunc(doc.Days, func(a, b *slot.Day) int {
		return strings.Compare(a.Date, b.Date)
	})
	slices.SortFunc(doc.Templates, func(a, b slot.Template) int {
		return strings.Compare(a.Name, b.Name)
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// GetDay returns a copy of the stored day, or nil when there is none.
func (s *Store) GetDay(_ context.Context, date string) (*slot.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, d := range doc.Days {
		if d.Date == date {
			return d, nil
		}
	}
	return nil, nil
}

// SaveDay stores a copy of d, replacing any day with the same date.
func (s *Store) SaveDay(_ context.Context, d *slot.Day) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("saving day: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	c := d.Clone()
	i := slices.IndexFunc(doc.Days, func(x *slot.Day) bool { return x.Date == d.Date })
	if i >= 0 {
		doc.Days[i] = c
	} else {
		doc.Days = append(doc.Days, c)
	}
	return s.write(doc)
}

// ListDays returns stored days between from and to (inclusive), ordered by date.
func (s *Store) ListDays(_ context.Context, from, to string) ([]*slot.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var days []*slot.Day
	for _, d := range doc.Days {
		if d.Date >= from && d.Date <= to {
			days = append(days, d)
		}
	}
	slices.SortFunc(days, func(a, b *slot.Day) int {
		return strings.Compare(a.Date, b.Date)
	})
	return days, nil
}

// DeleteDay removes the day for date if present.
func (s *Store) DeleteDay(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	n := len(doc.Days)
	doc.Days = slices.DeleteFunc(doc.Days, func(d *slot.Day) bool { return d.Date == date })
	if len(doc.Days) == n {
		return nil
	}
	return s.write(doc)
}

// SaveTemplate stores t, replacing a template with the same name.
func (s *Store) SaveTemplate(_ context.Context, t slot.Template) error {
	if t.Name == "" {
		return slot.ErrEmptyTemplateName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(doc.Templates, func(x slot.Template) bool { return x.Name == t.Name })
	if i >= 0 {
		doc.Templates[i] = t
	} else {
		doc.Templates = append(doc.Templates, t)
	}
	return s.write(doc)
}

// GetTemplate returns the named template, or nil when there is none.
func (s *Store) GetTemplate(_ context.Context, name string) (*slot.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, t := range doc.Templates {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, nil
}

// ListTemplates returns all templates ordered by name.
func (s *Store) ListTemplates(_ context.Context) ([]slot.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(doc.Templates, func(a, b slot.Template) int {
		return strings.Compare(a.Name, b.Name)
	})
	return doc.Templates, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}
