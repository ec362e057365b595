package slot

import "errors"

// ErrEmptyTemplateName is returned when a template has no name.
var ErrEmptyTemplateName = errors.New("template name cannot be empty")

// Template is a reusable day layout.
type Template struct {
	Name      string `json:"name"`
	TotalTime int    `json:"total_time"`
	Start     int    `json:"start"`
	Slots     []Slot `json:"slots"`
}

// TemplateFromDay captures the shape of d under name.
// Calibrated values are kept; they are recomputed when the template is applied.
func TemplateFromDay(name string, d *Day) (Template, error) {
	if name == "" {
		return Template{}, ErrEmptyTemplateName
	}
	c := d.Clone()
	return Template{
		Name:      name,
		TotalTime: c.TotalTime,
		Start:     c.Start,
		Slots:     c.Slots,
	}, nil
}

// ApplyTemplate replaces the day's budget and slots with the template's.
// A template without slots leaves a single placeholder.
func (d *Day) ApplyTemplate(t Template) {
	d.TotalTime = t.TotalTime
	d.Start = t.Start
	d.Slots = make([]Slot, 0, len(t.Slots))
	for _, s := range t.Slots {
		d.Slots = append(d.Slots, s.Clone())
	}
	if len(d.Slots) == 0 {
		placeholder, _ := NewSlot(DefaultDescription, 1)
		d.Slots = append(d.Slots, placeholder)
	}
}
