package planner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/db"
	"github.com/javiermolinar/daybox/internal/slot"
	"github.com/javiermolinar/daybox/internal/store"
	"github.com/javiermolinar/daybox/internal/todo"
)

var fixedNow = time.Date(2025, 1, 9, 10, 15, 0, 0, time.Local)

func newTestState(t *testing.T, opts ...Option) (*State, *store.Store) {
	t.Helper()

	repo, err := store.New(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	cfg := config.Default()
	cfg.Day.Start = "08:00"
	cfg.Day.TotalMinutes = 600
	cfg.Day.DefaultMinutes = 45

	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithTodos([]todo.Todo{}),
	}, opts...)
	return New(cfg, repo, opts...), repo
}

func TestFetch_CreatesDefaultDay(t *testing.T) {
	s, repo := newTestState(t)
	ctx := context.Background()

	d, err := s.Fetch(ctx, 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if d.Date != "2025-01-09" {
		t.Errorf("expected today's date, got %s", d.Date)
	}
	if d.Start != 480 || d.TotalTime != 600 {
		t.Errorf("expected configured budget, got start %d total %d", d.Start, d.TotalTime)
	}
	if d.Len() != 1 || d.Slots[0].ReqTime != 45 {
		t.Fatalf("expected one placeholder of 45 minutes, got %+v", d.Slots)
	}
	// Calibrated: the only flexible slot fills the day.
	if d.Slots[0].Start != 480 || d.Slots[0].Assigned != 600 {
		t.Errorf("expected calibrated slot 480+600, got %d+%d", d.Slots[0].Start, d.Slots[0].Assigned)
	}

	// New days are not persisted until saved.
	stored, err := repo.GetDay(ctx, "2025-01-09")
	if err != nil || stored != nil {
		t.Errorf("expected nothing stored yet, got %v, %v", stored, err)
	}

	again, err := s.Fetch(ctx, 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if again != d {
		t.Error("expected the loaded day to be reused")
	}
}

func TestFetch_LoadsFromRepository(t *testing.T) {
	s, repo := newTestState(t)
	ctx := context.Background()

	stored := &slot.Day{Date: "2025-01-10", Start: 420, TotalTime: 120, Slots: []slot.Slot{
		{ReqTime: 30, Description: "a", SubSlots: []slot.SubSlot{}},
		{ReqTime: 30, Description: "b", SubSlots: []slot.SubSlot{}},
	}}
	if err := repo.SaveDay(ctx, stored); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	d, err := s.Fetch(ctx, 1)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if d.Len() != 2 || d.Slots[0].Description != "a" {
		t.Fatalf("expected stored day, got %+v", d.Slots)
	}
	if d.Slots[1].Start != 480 || d.Slots[1].Assigned != 60 {
		t.Errorf("expected stored day to be calibrated, got %+v", d.Slots[1])
	}
}

func TestFetch_RepairsEmptyStoredDay(t *testing.T) {
	s, repo := newTestState(t)
	ctx := context.Background()

	if err := repo.SaveDay(ctx, &slot.Day{Date: "2025-01-09", Start: 480, TotalTime: 600}); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	d, err := s.Fetch(ctx, 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("expected a placeholder slot, got %+v", d.Slots)
	}
	if d.Slots[0].Description != slot.DefaultDescription || d.Slots[0].ReqTime != 45 {
		t.Errorf("expected a %d minute placeholder, got %+v", 45, d.Slots[0])
	}
	if d.Slots[0].Start != 480 || d.Slots[0].Assigned != 600 {
		t.Errorf("expected the placeholder calibrated to fill the day, got %d+%d",
			d.Slots[0].Start, d.Slots[0].Assigned)
	}
}

func TestShiftAndJump(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	d, err := s.Shift(ctx, Week)
	if err != nil {
		t.Fatalf("Shift failed: %v", err)
	}
	if d.Date != "2025-01-16" || s.Offset() != 7 || s.Date() != "2025-01-16" {
		t.Errorf("unexpected state after week shift: %s offset %d", d.Date, s.Offset())
	}
	if s.IsToday() {
		t.Error("expected view away from today")
	}

	if _, err := s.Shift(ctx, -Day); err != nil {
		t.Fatalf("Shift failed: %v", err)
	}
	if s.Date() != "2025-01-15" {
		t.Errorf("expected 2025-01-15, got %s", s.Date())
	}

	d, err = s.Jump(ctx, "2025-01-09")
	if err != nil {
		t.Fatalf("Jump failed: %v", err)
	}
	if d.Date != "2025-01-09" || s.Offset() != 0 || !s.IsToday() {
		t.Errorf("expected jump back to today, got %s offset %d", d.Date, s.Offset())
	}

	if _, err := s.Jump(ctx, "soon"); err == nil {
		t.Error("expected error for invalid date")
	}
	if s.Offset() != 0 {
		t.Error("failed jump must not move the view")
	}
}

func TestSaveAndAutosave(t *testing.T) {
	s, repo := newTestState(t)
	ctx := context.Background()

	d, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	s.Config().UI.Autosave = false
	if err := s.Autosave(ctx, d); err != nil {
		t.Fatalf("Autosave failed: %v", err)
	}
	if stored, _ := repo.GetDay(ctx, d.Date); stored != nil {
		t.Error("autosave disabled must not write")
	}

	s.Config().UI.Autosave = true
	if err := s.Autosave(ctx, d); err != nil {
		t.Fatalf("Autosave failed: %v", err)
	}
	if stored, _ := repo.GetDay(ctx, d.Date); stored == nil {
		t.Error("expected autosave to write the day")
	}
}

func TestSaveAll(t *testing.T) {
	s, repo := newTestState(t)
	ctx := context.Background()

	for _, offset := range []int{-1, 0, 3} {
		if _, err := s.Fetch(ctx, offset); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}
	if err := s.SaveAll(ctx); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	days, err := repo.ListDays(ctx, "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 3 {
		t.Errorf("expected 3 saved days, got %d", len(days))
	}
}

func TestCycleTodo(t *testing.T) {
	todos := []todo.Todo{{Priority: 1, Description: "first"}, {Priority: 2, Description: "second"}}
	s, _ := newTestState(t, WithTodos(todos))

	got, ok := s.NextTodo()
	if !ok || got.Description != "first" {
		t.Errorf("expected first, got %q", got.Description)
	}
	got, _ = s.NextTodo()
	if got.Description != "second" {
		t.Errorf("expected second, got %q", got.Description)
	}
	got, _ = s.NextTodo()
	if got.Description != "first" {
		t.Errorf("expected wrap to first, got %q", got.Description)
	}
	got, _ = s.CycleTodo(-1)
	if got.Description != "second" {
		t.Errorf("expected second going back, got %q", got.Description)
	}

	empty, _ := newTestState(t)
	if _, ok := empty.NextTodo(); ok {
		t.Error("expected no todo from an empty list")
	}
}

func TestNowMinutes(t *testing.T) {
	s, _ := newTestState(t)
	if got := s.NowMinutes(); got != 615 {
		t.Errorf("expected 615, got %d", got)
	}
}

func TestOpenRepository(t *testing.T) {
	dir := t.TempDir()

	repo, err := OpenRepository(config.StorageConfig{Backend: config.BackendSQLite, DBPath: filepath.Join(dir, "nested", "daybox.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	if _, ok := repo.(*db.SQLite); !ok {
		t.Errorf("expected *db.SQLite, got %T", repo)
	}
	_ = repo.Close()

	repo, err = OpenRepository(config.StorageConfig{Backend: config.BackendJSON, JSONPath: filepath.Join(dir, "db.json")})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, ok := repo.(*store.Store); !ok {
		t.Errorf("expected *store.Store, got %T", repo)
	}

	if _, err := OpenRepository(config.StorageConfig{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
