package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daybox/internal/dateutil"
	"github.com/javiermolinar/daybox/internal/slot"
)

// TitleState holds what the title line shows about the day in view.
type TitleState struct {
	Width     int
	Date      string
	Offset    int
	Assigned  int
	TotalTime int
	AppStyle  lipgloss.Style
	DateStyle lipgloss.Style
}

// RenderTitle renders the line above the slot table.
func RenderTitle(s TitleState) string {
	label := "viewing day " + s.Date
	if t, err := time.Parse(dateutil.KeyLayout, s.Date); err == nil {
		label += " " + t.Format("Mon")
	}
	label += " " + RelativeDay(s.Offset)

	budget := fmt.Sprintf("%s of %s", slot.FormatDuration(s.Assigned), slot.FormatDuration(s.TotalTime))
	line := s.AppStyle.Render("daybox ") + s.DateStyle.Render(label+"  "+budget)
	return footerLine(s.Width, lipgloss.NewStyle(), line)
}

// RelativeDay names an offset from today.
func RelativeDay(offset int) string {
	switch offset {
	case 0:
		return "(today)"
	case 1:
		return "(tomorrow)"
	case -1:
		return "(yesterday)"
	}
	if offset > 0 {
		return fmt.Sprintf("(in %d days)", offset)
	}
	return fmt.Sprintf("(%d days ago)", -offset)
}
