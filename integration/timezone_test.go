package integration

import (
	"context"
	"testing"
	"time"

	"github.com/javiermolinar/daybox/internal/config"
	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/planner"
)

// Day keys follow the clock's own location, so a late evening far from UTC
// still lands on the local calendar day.
func TestDayKeysFollowClockLocation(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "ahead of utc before midnight",
			now:  time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC+14", 14*3600)),
			want: "2025-03-09",
		},
		{
			name: "behind utc after midnight",
			now:  time.Date(2025, 3, 10, 0, 15, 0, 0, time.FixedZone("UTC-10", -10*3600)),
			want: "2025-03-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			repo := openRepo(t, config.BackendSQLite)
			ctx := context.Background()

			state := planner.New(cfg, repo, planner.WithClock(func() time.Time { return tt.now }))
			d, err := state.Current(ctx)
			if err != nil {
				t.Fatalf("Current failed: %v", err)
			}
			if d.Date != tt.want {
				t.Errorf("expected %s, got %s (utc %s)", tt.want, d.Date, tt.now.UTC().Format(time.DateTime))
			}
			if err := state.Save(ctx, d); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			stored, err := repo.GetDay(ctx, tt.want)
			if err != nil || stored == nil {
				t.Fatalf("expected the day stored under %s, got %v (%v)", tt.want, stored, err)
			}
		})
	}
}

func TestOffsetsAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Clocks go forward on 2025-03-30 and back on 2025-10-26.
	tests := []struct {
		now    time.Time
		key    string
		offset int
	}{
		{now: time.Date(2025, 3, 29, 23, 50, 0, 0, loc), key: "2025-03-31", offset: 2},
		{now: time.Date(2025, 3, 31, 0, 10, 0, 0, loc), key: "2025-03-29", offset: -2},
		{now: time.Date(2025, 10, 25, 12, 0, 0, 0, loc), key: "2025-10-27", offset: 2},
		{now: time.Date(2025, 10, 1, 8, 0, 0, 0, loc), key: "2025-11-01", offset: 31},
	}

	for _, tt := range tests {
		got, err := dateutil.OffsetOf(tt.now, tt.key)
		if err != nil {
			t.Fatalf("OffsetOf(%s) failed: %v", tt.key, err)
		}
		if got != tt.offset {
			t.Errorf("OffsetOf(%v, %s) = %d, want %d", tt.now, tt.key, got, tt.offset)
		}
		if key := dateutil.OffsetKey(tt.now, tt.offset); key != tt.key {
			t.Errorf("OffsetKey(%v, %d) = %s, want %s", tt.now, tt.offset, key, tt.key)
		}
	}
}

func TestJumpAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	cfg := config.Default()
	repo := openRepo(t, config.BackendJSON)
	now := time.Date(2025, 3, 8, 22, 0, 0, 0, loc)
	state := planner.New(cfg, repo, planner.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	d, err := state.Jump(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("Jump failed: %v", err)
	}
	if d.Date != "2025-03-10" || state.Offset() != 2 {
		t.Errorf("expected 2025-03-10 at offset 2, got %s at %d", d.Date, state.Offset())
	}

	d, err = state.Shift(ctx, -planner.Week)
	if err != nil {
		t.Fatalf("Shift failed: %v", err)
	}
	if d.Date != "2025-03-03" {
		t.Errorf("expected a week back to land on 2025-03-03, got %s", d.Date)
	}
}
