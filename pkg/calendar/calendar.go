package calendar

import (
	"sort"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/canvastui/pkg/planner"
)

// NoSelection is the item cursor of a day without events.
const NoSelection = -1

// DueLayout is how the due column renders an event's time of day.
const DueLayout = "15:04"

// Day holds the events sharing one local calendar date, ordered by due time.
type Day struct {
	Date     time.Time
	Events   []planner.Event
	Selected int
}

// Calendar is the ordered list of days plus the day cursor.
type Calendar struct {
	Days    []Day
	Current int
}

type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

func (k dateKey) before(o dateKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	if k.month != o.month {
		return k.month < o.month
	}
	return k.day < o.day
}

// Build groups events by the date of their due time. Days come out ascending,
// events within a day ascending by due time with ties kept in input order.
func Build(events []planner.Event) Calendar {
	groups := make(map[dateKey][]planner.Event)
	keys := make([]dateKey, 0)
	for _, ev := range events {
		k := keyOf(ev.DueAt)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], ev)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].before(keys[j])
	})

	days := make([]Day, 0, len(keys))
	for _, k := range keys {
		evs := groups[k]
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].DueAt.Before(evs[j].DueAt)
		})
		days = append(days, Day{
			Date:     time.Date(k.year, k.month, k.day, 0, 0, 0, 0, evs[0].DueAt.Location()),
			Events:   evs,
			Selected: 0,
		})
	}
	return Calendar{Days: days, Current: 0}
}

// Empty reports whether the calendar has no days.
func (c *Calendar) Empty() bool {
	return len(c.Days) == 0
}

// CurrentDay returns the day under the day cursor, or nil for an empty calendar.
func (c *Calendar) CurrentDay() *Day {
	if len(c.Days) == 0 {
		return nil
	}
	c.Clamp()
	return &c.Days[c.Current]
}

// NextDay moves the day cursor forward, stopping at the last day.
func (c *Calendar) NextDay() {
	c.Current = clamp(c.Current+1, len(c.Days))
}

// PrevDay moves the day cursor back, stopping at the first day.
func (c *Calendar) PrevDay() {
	c.Current = clamp(c.Current-1, len(c.Days))
}

// Reset puts the day cursor back on the first day.
func (c *Calendar) Reset() {
	c.Current = 0
}

// Clamp pulls every cursor back inside its list.
func (c *Calendar) Clamp() {
	c.Current = clamp(c.Current, len(c.Days))
	for i := range c.Days {
		c.Days[i].clamp()
	}
}

// Selected returns the event under the current day's item cursor.
func (c *Calendar) Selected() (planner.Event, bool) {
	d := c.CurrentDay()
	if d == nil {
		return planner.Event{}, false
	}
	return d.SelectedEvent()
}

// Events flattens the calendar in day order then in-day order.
func (c *Calendar) Events() []planner.Event {
	var out []planner.Event
	for _, d := range c.Days {
		out = append(out, d.Events...)
	}
	return out
}

// Next moves the item cursor down, stopping at the last event.
func (d *Day) Next() {
	if len(d.Events) == 0 {
		d.Selected = NoSelection
		return
	}
	d.Selected = clamp(d.Selected+1, len(d.Events))
}

// Prev moves the item cursor up, stopping at the first event.
func (d *Day) Prev() {
	if len(d.Events) == 0 {
		d.Selected = NoSelection
		return
	}
	d.Selected = clamp(d.Selected-1, len(d.Events))
}

// SelectedEvent returns the event under the item cursor.
func (d *Day) SelectedEvent() (planner.Event, bool) {
	if d.Selected < 0 || d.Selected >= len(d.Events) {
		return planner.Event{}, false
	}
	return d.Events[d.Selected], true
}

func (d *Day) clamp() {
	if len(d.Events) == 0 {
		d.Selected = NoSelection
		return
	}
	d.Selected = clamp(d.Selected, len(d.Events))
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// LayoutHints are the widest cells per column, used to size the table.
type LayoutHints struct {
	Course int
	Title  int
	Due    int
}

// Hints measures the calendar's columns.
func Hints(c Calendar) LayoutHints {
	var h LayoutHints
	for _, d := range c.Days {
		for _, ev := range d.Events {
			h.Course = max(h.Course, ansi.PrintableRuneWidth(ev.CourseName))
			h.Title = max(h.Title, ansi.PrintableRuneWidth(ev.Title))
			h.Due = max(h.Due, ansi.PrintableRuneWidth("  "+ev.DueAt.Format(DueLayout)))
		}
	}
	return h
}
