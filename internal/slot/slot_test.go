package slot

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/daybox/internal/dateutil"
)

func TestNewSlot(t *testing.T) {
	s, err := NewSlot("write", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ReqTime != 45 || s.Description != "write" {
		t.Errorf("unexpected slot %+v", s)
	}
	if s.FixedTime || s.FixedLength {
		t.Error("new slots should be flexible")
	}

	if _, err := NewSlot("bad", -1); !errors.Is(err, ErrNegativeReqTime) {
		t.Errorf("expected ErrNegativeReqTime, got %v", err)
	}
}

func TestNewDay(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   int
		total   int
		wantErr error
	}{
		{name: "valid", date: "2025-01-09", start: 450, total: 960},
		{name: "day key", date: dateutil.Key(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)), start: 0, total: 60},
		{name: "bad date", date: "09/01/2025", start: 450, total: 960, wantErr: ErrInvalidDate},
		{name: "zero total", date: "2025-01-09", start: 450, total: 0, wantErr: ErrInvalidTotalTime},
		{name: "negative total", date: "2025-01-09", start: 450, total: -5, wantErr: ErrInvalidTotalTime},
		{name: "start past midnight", date: "2025-01-09", start: 1440, total: 60, wantErr: ErrInvalidStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDay(tt.date, tt.start, tt.total)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Len() != 1 || d.Slots[0].Description != DefaultDescription {
				t.Errorf("expected one placeholder slot, got %+v", d.Slots)
			}
			if d.End() != tt.start+tt.total {
				t.Errorf("expected end %d, got %d", tt.start+tt.total, d.End())
			}
		})
	}
}

func TestDay_ValidateRejectsNegativeSubSlot(t *testing.T) {
	d, _ := NewDay("2025-01-09", 450, 960)
	d.Slots[0].SubSlots = []SubSlot{{ReqTime: -3}}
	if err := d.Validate(); !errors.Is(err, ErrNegativeReqTime) {
		t.Errorf("expected ErrNegativeReqTime, got %v", err)
	}
}

func TestDay_CloneIsIndependent(t *testing.T) {
	d, _ := NewDay("2025-01-09", 450, 960)
	d.Slots[0].SubSlots = []SubSlot{{Description: "a", ReqTime: 10}}

	c := d.Clone()
	c.Slots[0].Description = "changed"
	c.Slots[0].SubSlots[0].Description = "changed"
	c.Slots = append(c.Slots, Slot{Description: "extra"})

	if d.Slots[0].Description == "changed" {
		t.Error("slot description leaked into original")
	}
	if d.Slots[0].SubSlots[0].Description == "changed" {
		t.Error("subslot leaked into original")
	}
	if d.Len() != 1 {
		t.Errorf("expected original to keep 1 slot, got %d", d.Len())
	}
}

func TestDay_CurrentIndex(t *testing.T) {
	d := &Day{Slots: []Slot{
		{Start: 480, Assigned: 60},
		{Start: 540, Assigned: 60},
		{Start: 600, Assigned: 60},
	}}

	tests := []struct {
		now  int
		want int
	}{
		{now: 400, want: -1},
		{now: 480, want: 0},
		{now: 539, want: 0},
		{now: 540, want: 1},
		{now: 700, want: 2},
	}
	for _, tt := range tests {
		if got := d.CurrentIndex(tt.now); got != tt.want {
			t.Errorf("CurrentIndex(%d) = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	d, _ := NewDay("2025-01-09", 450, 960)
	d.Slots = []Slot{{Description: "gym", ReqTime: 60, FixedLength: true}, {Description: "work", ReqTime: 480}}

	tmpl, err := TemplateFromDay("weekday", d)
	if err != nil {
		t.Fatalf("TemplateFromDay failed: %v", err)
	}
	if _, err := TemplateFromDay("", d); !errors.Is(err, ErrEmptyTemplateName) {
		t.Errorf("expected ErrEmptyTemplateName, got %v", err)
	}

	other, _ := NewDay("2025-01-10", 300, 100)
	other.ApplyTemplate(tmpl)
	if other.Start != 450 || other.TotalTime != 960 {
		t.Errorf("expected template budget, got start %d total %d", other.Start, other.TotalTime)
	}
	if other.Len() != 2 || other.Slots[0].Description != "gym" {
		t.Errorf("unexpected slots %+v", other.Slots)
	}
	if other.Date != "2025-01-10" {
		t.Errorf("date must not change, got %s", other.Date)
	}

	other.ApplyTemplate(Template{Name: "blank", TotalTime: 600, Start: 420})
	if other.Len() != 1 || other.Slots[0].Description != DefaultDescription {
		t.Errorf("expected a placeholder for an empty template, got %+v", other.Slots)
	}
}
