package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/daybox/internal/slot"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func testDay(date string) *slot.Day {
	return &slot.Day{
		Date:      date,
		Start:     450,
		TotalTime: 600,
		Slots: []slot.Slot{
			{Start: 450, ReqTime: 60, Assigned: 60, FixedLength: true, Description: "gym", SubSlots: []slot.SubSlot{}},
			{Start: 510, ReqTime: 120, Assigned: 240, Description: "deep work", SubSlots: []slot.SubSlot{
				{Start: 510, ReqTime: 60, Assigned: 120, Description: "draft"},
				{Start: 630, ReqTime: 60, Assigned: 120, FixedLength: true, Description: "edit"},
			}},
			{Start: 750, ReqTime: 300, Assigned: 300, FixedTime: true, Description: "meetings", SubSlots: []slot.SubSlot{}},
		},
	}
}

func assertSameDay(t *testing.T, got, want *slot.Day) {
	t.Helper()

	if got == nil {
		t.Fatal("expected a day, got nil")
	}
	if got.Date != want.Date || got.Start != want.Start || got.TotalTime != want.TotalTime {
		t.Errorf("header mismatch: got %s/%d/%d, want %s/%d/%d",
			got.Date, got.Start, got.TotalTime, want.Date, want.Start, want.TotalTime)
	}
	if len(got.Slots) != len(want.Slots) {
		t.Fatalf("expected %d slots, got %d", len(want.Slots), len(got.Slots))
	}
	for i := range want.Slots {
		g, w := got.Slots[i], want.Slots[i]
		if g.Start != w.Start || g.ReqTime != w.ReqTime || g.Assigned != w.Assigned ||
			g.FixedTime != w.FixedTime || g.FixedLength != w.FixedLength || g.Description != w.Description {
			t.Errorf("slot %d: got %+v, want %+v", i, g, w)
		}
		if len(g.SubSlots) != len(w.SubSlots) {
			t.Fatalf("slot %d: expected %d subslots, got %d", i, len(w.SubSlots), len(g.SubSlots))
		}
		for j := range w.SubSlots {
			if g.SubSlots[j] != w.SubSlots[j] {
				t.Errorf("slot %d subslot %d: got %+v, want %+v", i, j, g.SubSlots[j], w.SubSlots[j])
			}
		}
	}
}

func TestSaveAndGetDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	day := testDay("2025-01-09")
	if err := repo.SaveDay(ctx, day); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	got, err := repo.GetDay(ctx, "2025-01-09")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	assertSameDay(t, got, day)
}

func TestGetDay_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetDay(context.Background(), "2025-01-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing day, got %+v", got)
	}
}

func TestSaveDay_Replaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveDay(ctx, testDay("2025-01-09")); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	smaller := &slot.Day{
		Date:      "2025-01-09",
		Start:     480,
		TotalTime: 300,
		Slots:     []slot.Slot{{Start: 480, ReqTime: 300, Assigned: 300, Description: "only", SubSlots: []slot.SubSlot{}}},
	}
	if err := repo.SaveDay(ctx, smaller); err != nil {
		t.Fatalf("second SaveDay failed: %v", err)
	}

	got, err := repo.GetDay(ctx, "2025-01-09")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	assertSameDay(t, got, smaller)

	var orphans int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM subslots`).Scan(&orphans); err != nil {
		t.Fatalf("counting subslots: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected old subslots to be removed, found %d", orphans)
	}
}

func TestSaveDay_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		day     *slot.Day
		wantErr error
	}{
		{name: "bad date", day: &slot.Day{Date: "tomorrow", Start: 0, TotalTime: 60}, wantErr: slot.ErrInvalidDate},
		{name: "zero total", day: &slot.Day{Date: "2025-01-09", Start: 0, TotalTime: 0}, wantErr: slot.ErrInvalidTotalTime},
		{name: "negative reqtime", day: &slot.Day{Date: "2025-01-09", Start: 0, TotalTime: 60,
			Slots: []slot.Slot{{ReqTime: -1}}}, wantErr: slot.ErrNegativeReqTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveDay(ctx, tt.day)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	days, err := repo.ListDays(ctx, "0000-01-01", "9999-12-31")
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("invalid days must not be stored, found %d", len(days))
	}
}

func TestListDays(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2025-01-12", "2025-01-08", "2025-01-10", "2025-02-01"} {
		if err := repo.SaveDay(ctx, testDay(date)); err != nil {
			t.Fatalf("SaveDay(%s) failed: %v", date, err)
		}
	}

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{name: "january", from: "2025-01-01", to: "2025-01-31", want: []string{"2025-01-08", "2025-01-10", "2025-01-12"}},
		{name: "inclusive bounds", from: "2025-01-10", to: "2025-01-12", want: []string{"2025-01-10", "2025-01-12"}},
		{name: "single day", from: "2025-02-01", to: "2025-02-01", want: []string{"2025-02-01"}},
		{name: "empty", from: "2024-01-01", to: "2024-12-31", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := repo.ListDays(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ListDays failed: %v", err)
			}
			if len(days) != len(tt.want) {
				t.Fatalf("expected %d days, got %d", len(tt.want), len(days))
			}
			for i, d := range days {
				if d.Date != tt.want[i] {
					t.Errorf("day %d: expected %s, got %s", i, tt.want[i], d.Date)
				}
				if len(d.Slots) != 3 || len(d.Slots[1].SubSlots) != 2 {
					t.Errorf("day %s was not fully loaded", d.Date)
				}
			}
		})
	}
}

func TestDeleteDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveDay(ctx, testDay("2025-01-09")); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}
	if err := repo.SaveDay(ctx, testDay("2025-01-10")); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}

	if err := repo.DeleteDay(ctx, "2025-01-09"); err != nil {
		t.Fatalf("DeleteDay failed: %v", err)
	}

	got, err := repo.GetDay(ctx, "2025-01-09")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	if got != nil {
		t.Error("expected deleted day to be gone")
	}

	other, err := repo.GetDay(ctx, "2025-01-10")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	assertSameDay(t, other, testDay("2025-01-10"))

	// Deleting a missing day is not an error.
	if err := repo.DeleteDay(ctx, "1999-01-01"); err != nil {
		t.Errorf("unexpected error deleting missing day: %v", err)
	}
}

func TestTemplates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	weekday, err := slot.TemplateFromDay("weekday", testDay("2025-01-09"))
	if err != nil {
		t.Fatalf("TemplateFromDay failed: %v", err)
	}
	if err := repo.SaveTemplate(ctx, weekday); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if err := repo.SaveTemplate(ctx, slot.Template{Name: "away", Start: 600, TotalTime: 120}); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	got, err := repo.GetTemplate(ctx, "weekday")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected template")
	}
	if got.Start != 450 || got.TotalTime != 600 || len(got.Slots) != 3 {
		t.Errorf("unexpected template %+v", got)
	}
	if len(got.Slots[1].SubSlots) != 2 || got.Slots[1].SubSlots[1].Description != "edit" {
		t.Errorf("subslots not preserved: %+v", got.Slots[1].SubSlots)
	}

	// Saving under the same name replaces.
	weekday.TotalTime = 480
	if err := repo.SaveTemplate(ctx, weekday); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	list, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(list))
	}
	if list[0].Name != "away" || list[1].Name != "weekday" {
		t.Errorf("expected templates ordered by name, got %s, %s", list[0].Name, list[1].Name)
	}
	if list[1].TotalTime != 480 {
		t.Errorf("expected replaced total time 480, got %d", list[1].TotalTime)
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetTemplate(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSaveTemplate_EmptyName(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveTemplate(context.Background(), slot.Template{Start: 0, TotalTime: 60})
	if !errors.Is(err, slot.ErrEmptyTemplateName) {
		t.Errorf("expected ErrEmptyTemplateName, got %v", err)
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "daybox.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := repo.SaveDay(ctx, testDay("2025-01-09")); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.GetDay(ctx, "2025-01-09")
	if err != nil {
		t.Fatalf("GetDay failed: %v", err)
	}
	assertSameDay(t, got, testDay("2025-01-09"))
}
