package view

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/canvastui/pkg/action"
	"tableflip.dev/canvastui/pkg/app"
	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/planner"
	"tableflip.dev/canvastui/pkg/tui/theme"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func loadedState(events ...planner.Event) *app.State {
	s := app.New(nil)
	s.Apply(action.FromNetwork(calendar.Build(events)))
	return s
}

func lineWith(t *testing.T, out, needle string) string {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, needle) {
			return l
		}
	}
	t.Fatalf("no line containing %q in:\n%s", needle, out)
	return ""
}

func TestPaintPlaceholderWhenEmpty(t *testing.T) {
	p := Painter{Theme: theme.Plain()}
	out := p.Paint(app.New(nil), Frame{Width: 60, Height: 10})
	if !strings.Contains(out, "Waiting for data...") {
		t.Fatalf("expected placeholder, got:\n%s", out)
	}
	if !strings.Contains(out, "CanvasTUI") {
		t.Fatalf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "source: none") {
		t.Fatalf("expected source in footer, got:\n%s", out)
	}
}

func TestPaintCurrentDay(t *testing.T) {
	s := loadedState(
		planner.Event{CourseName: "CS-101", Title: "Homework 1", DueAt: at(3, 9), Submitted: true},
		planner.Event{CourseName: "MATH-220", Title: "Quiz", DueAt: at(3, 17)},
		planner.Event{CourseName: "CS-101", Title: "Lab", DueAt: at(4, 8)},
	)
	p := Painter{Theme: theme.Plain()}
	out := p.Paint(s, Frame{Width: 80, Height: 20, Help: "q quit"})

	if !strings.Contains(out, "Monday Mar 3  (1/2)") {
		t.Fatalf("expected day heading, got:\n%s", out)
	}
	header := lineWith(t, out, "Assignment")
	if !strings.Contains(header, "Course") || !strings.Contains(header, "Due") {
		t.Fatalf("unexpected header %q", header)
	}
	hw := lineWith(t, out, "Homework 1")
	if !strings.Contains(hw, cursorMark) || !strings.Contains(hw, "09:00 "+submittedMark) {
		t.Fatalf("expected selected submitted row, got %q", hw)
	}
	quiz := lineWith(t, out, "Quiz")
	if strings.Contains(quiz, cursorMark) || strings.Contains(quiz, submittedMark) {
		t.Fatalf("unexpected quiz row %q", quiz)
	}
	if strings.Contains(out, "Lab") {
		t.Fatalf("other day's events should not be shown:\n%s", out)
	}
	if !strings.Contains(out, "q quit") || !strings.Contains(out, "source: network") {
		t.Fatalf("expected footer, got:\n%s", out)
	}
}

func TestPaintFollowsCursors(t *testing.T) {
	s := loadedState(
		planner.Event{CourseName: "CS-101", Title: "A", DueAt: at(3, 9)},
		planner.Event{CourseName: "CS-101", Title: "Lab one", DueAt: at(4, 8)},
		planner.Event{CourseName: "CS-101", Title: "Lab two", DueAt: at(4, 9)},
	)
	s.Drain([]action.Action{action.Of(action.NextDay), action.Of(action.NextItem)})
	out := Painter{Theme: theme.Plain()}.Paint(s, Frame{Width: 80, Height: 20})
	if !strings.Contains(out, "Tuesday Mar 4  (2/2)") {
		t.Fatalf("expected second day, got:\n%s", out)
	}
	if !strings.Contains(lineWith(t, out, "Lab two"), cursorMark) {
		t.Fatalf("expected cursor on Lab two:\n%s", out)
	}
}

func TestPaintFitsWidth(t *testing.T) {
	s := loadedState(planner.Event{
		CourseName: "CS-101",
		Title:      strings.Repeat("very long assignment title ", 10),
		DueAt:      at(3, 9),
	})
	const width = 60
	out := Painter{Theme: theme.Plain()}.Paint(s, Frame{Width: width, Height: 12, Help: strings.Repeat("help ", 40)})
	for i, l := range strings.Split(out, "\n") {
		if w := ansi.PrintableRuneWidth(l); w > width {
			t.Fatalf("line %d is %d wide (> %d): %q", i, w, width, l)
		}
	}
}

func TestPaintScrollsToSelection(t *testing.T) {
	var events []planner.Event
	for i := 0; i < 30; i++ {
		events = append(events, planner.Event{CourseName: "CS", Title: fmt.Sprintf("item-%02d", i), DueAt: at(3, 0).Add(time.Duration(i) * time.Minute)})
	}
	s := loadedState(events...)
	for i := 0; i < 25; i++ {
		s.Apply(action.Of(action.NextItem))
	}
	out := Painter{Theme: theme.Plain()}.Paint(s, Frame{Width: 80, Height: 12})
	if !strings.Contains(lineWith(t, out, "item-25"), cursorMark) {
		t.Fatalf("selected row not visible:\n%s", out)
	}
	if strings.Contains(out, "item-00") {
		t.Fatalf("expected early rows scrolled away:\n%s", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d:\n%s", len(lines), out)
	}
}

func TestPaintDoesNotMutateState(t *testing.T) {
	s := loadedState(planner.Event{CourseName: "CS", Title: "A", DueAt: at(3, 9)})
	before := *s
	_ = Painter{Theme: theme.Default()}.Paint(s, Frame{Width: 80, Height: 20})
	if before.Calendar.Current != s.Calendar.Current || before.Calendar.Days[0].Selected != s.Calendar.Days[0].Selected {
		t.Fatalf("paint changed cursors")
	}
}
