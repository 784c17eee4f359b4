package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/canvastui/pkg/app"
	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/planner"
	"tableflip.dev/canvastui/pkg/tui/theme"
)

const (
	title       = " CanvasTUI "
	placeholder = "Waiting for data..."
	dayLayout   = "Monday Jan 2"

	submittedMark = "✓"
	cursorMark    = "▸ "
	markerWidth   = 2
	minInner      = 24
)

// Painter renders application state. It only reads the state it is given.
type Painter struct {
	Theme theme.Theme
}

// Frame is everything outside the state the painter needs.
type Frame struct {
	Width  int
	Height int
	Help   string
	Status string
	Err    string
}

// Paint renders s into a full-screen string.
func (p Painter) Paint(s *app.State, f Frame) string {
	inner := f.Width - 4
	if inner < minInner {
		inner = minInner
	}

	lines := []string{p.Theme.Frame.Title.Render(center(title, inner))}
	if s == nil || s.Calendar.Empty() {
		lines = append(lines, p.Theme.Frame.Placeholder.Render(placeholder))
	} else {
		lines = append(lines, p.day(s, inner, f.Height-4)...)
	}

	body := p.fill(lines, inner, f.Height)
	framed := p.Theme.Frame.Border.Render(strings.Join(body, "\n"))

	footer := p.footer(s, f, inner+4)
	if footer == "" {
		return framed
	}
	return framed + "\n" + footer
}

// day renders the current day in at most limit lines; limit <= 0 means no
// limit. Rows scroll so the selected event stays visible.
func (p Painter) day(s *app.State, inner, limit int) []string {
	cal := s.Calendar
	if cal.Current < 0 || cal.Current >= len(cal.Days) {
		return nil
	}
	d := cal.Days[cal.Current]

	heading := d.Date.Format(dayLayout)
	lines := []string{p.Theme.Frame.DayHeading.Render(
		truncate.StringWithTail(heading+"  "+position(cal.Current, len(cal.Days)), uint(inner), "…"))}

	cols := columnsFor(s.Hints, inner)
	lines = append(lines, p.Theme.Table.Header.Render(cols.row("", "Course", "Assignment", "Due")))
	first, last := 0, len(d.Events)
	if limit > 0 {
		rows := max(limit-2, 1)
		if d.Selected >= rows {
			first = d.Selected - rows + 1
		}
		last = min(len(d.Events), first+rows)
	}
	for i := first; i < last; i++ {
		ev := d.Events[i]
		marker := "  "
		if i == d.Selected {
			marker = cursorMark
		}
		line := cols.row(marker, ev.CourseName, ev.Title, due(ev))
		style := p.Theme.Table.Row
		if ev.Submitted {
			style = p.Theme.Table.Submitted
		}
		if i == d.Selected {
			style = style.Inherit(p.Theme.Table.Selected)
		}
		lines = append(lines, style.Render(line))
	}
	return lines
}

func (p Painter) fill(lines []string, inner, height int) []string {
	// border top/bottom plus footer
	rows := height - 3
	if height > 0 && rows > 0 && len(lines) > rows {
		lines = lines[:rows]
	}
	out := make([]string, 0, max(len(lines), rows))
	pad := lipgloss.NewStyle().Width(inner)
	for _, l := range lines {
		out = append(out, pad.Render(truncate.String(l, uint(inner))))
	}
	for len(out) < rows {
		out = append(out, pad.Render(""))
	}
	return out
}

func (p Painter) footer(s *app.State, f Frame, width int) string {
	var parts []string
	if f.Help != "" {
		parts = append(parts, p.Theme.Footer.Help.Render(f.Help))
	}
	status := f.Status
	if s != nil {
		src := "source: " + s.Source.String()
		if status == "" {
			status = src
		} else {
			status = src + "  " + status
		}
	}
	if status != "" {
		parts = append(parts, p.Theme.Footer.Status.Render(status))
	}
	if f.Err != "" {
		parts = append(parts, p.Theme.Footer.Error.Render("ERR: "+f.Err))
	}
	line := strings.Join(parts, "  ")
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	return line
}

type columns struct {
	course int
	title  int
	due    int
}

// columnsFor sizes the table from the layout hints, giving the title column
// whatever is left of the inner width.
func columnsFor(h calendar.LayoutHints, inner int) columns {
	c := columns{
		course: max(h.Course, len("Course")) + 1,
		title:  max(h.Title, len("Assignment")) + 2,
		due:    max(h.Due, len("Due")) + 2,
	}
	avail := inner - markerWidth - c.course - c.due
	if avail < len("Assignment") {
		avail = len("Assignment")
	}
	if c.title > avail {
		c.title = avail
	}
	return c
}

func (c columns) row(marker, course, title, due string) string {
	if marker == "" {
		marker = "  "
	}
	return marker + cell(course, c.course) + cell(title, c.title) + cell(due, c.due)
}

func cell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = truncate.StringWithTail(text, uint(width-1), "…")
	return lipgloss.NewStyle().Width(width).Render(text)
}

func due(ev planner.Event) string {
	if ev.Submitted {
		return ev.DueAt.Format(calendar.DueLayout) + " " + submittedMark
	}
	return ev.DueAt.Format(calendar.DueLayout) + "  "
}

func position(i, n int) string {
	return fmt.Sprintf("(%d/%d)", i+1, n)
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
