package calendar

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"tableflip.dev/canvastui/pkg/planner"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
}

func ev(title string, due time.Time) planner.Event {
	return planner.Event{CourseName: "CS-101", Title: title, DueAt: due, URL: "https://canvas.example/" + title}
}

func fixture() []planner.Event {
	return []planner.Event{
		ev("d2-late", at(4, 23, 59)),
		ev("d1-late", at(3, 18, 0)),
		ev("d2-early", at(4, 9, 0)),
		ev("d1-early", at(3, 8, 0)),
	}
}

func titles(events []planner.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestBuildGroupsAndOrders(t *testing.T) {
	cal := Build(fixture())
	if len(cal.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(cal.Days))
	}
	if cal.Current != 0 {
		t.Fatalf("expected day cursor 0, got %d", cal.Current)
	}
	if got, want := cal.Days[0].Date, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("day 0 date = %v, want %v", got, want)
	}
	if got, want := titles(cal.Days[0].Events), []string{"d1-early", "d1-late"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("day 0 = %v, want %v", got, want)
	}
	if got, want := titles(cal.Days[1].Events), []string{"d2-early", "d2-late"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("day 1 = %v, want %v", got, want)
	}
	for i, d := range cal.Days {
		if d.Selected != 0 {
			t.Fatalf("day %d: expected item cursor 0, got %d", i, d.Selected)
		}
		if len(d.Events) == 0 {
			t.Fatalf("day %d emitted without events", i)
		}
	}
}

func TestBuildFlattenIsSortedAndStable(t *testing.T) {
	same := at(5, 12, 0)
	input := append(fixture(),
		ev("tie-a", same),
		ev("other-month", time.Date(2025, time.February, 28, 23, 0, 0, 0, time.UTC)),
		ev("tie-b", same),
		ev("tie-c", same),
		ev("d5-early", at(5, 1, 0)),
	)
	cal := Build(input)
	flat := cal.Events()
	if len(flat) != len(input) {
		t.Fatalf("expected %d events, got %d", len(input), len(flat))
	}
	if !sort.SliceIsSorted(flat, func(i, j int) bool { return flat[i].DueAt.Before(flat[j].DueAt) }) {
		t.Fatalf("flattened events not sorted: %v", titles(flat))
	}
	want := []string{"other-month", "d1-early", "d1-late", "d2-early", "d2-late", "d5-early", "tie-a", "tie-b", "tie-c"}
	if got := titles(flat); !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten = %v, want %v", got, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(fixture())
	b := Build(fixture())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical input produced different calendars")
	}
}

func TestBuildEmpty(t *testing.T) {
	cal := Build(nil)
	if !cal.Empty() || cal.Current != 0 {
		t.Fatalf("expected empty calendar at cursor 0, got %#v", cal)
	}
	if cal.CurrentDay() != nil {
		t.Fatalf("expected no current day")
	}
	if _, ok := cal.Selected(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestBuildGroupsByLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	input := []planner.Event{
		ev("late-utc", time.Date(2025, time.March, 3, 20, 0, 0, 0, time.UTC).In(loc)),
		ev("next-morning", time.Date(2025, time.March, 4, 8, 0, 0, 0, loc)),
	}
	cal := Build(input)
	if len(cal.Days) != 1 {
		t.Fatalf("expected both events on one local day, got %d days", len(cal.Days))
	}
	if cal.Days[0].Date.Day() != 4 || cal.Days[0].Date.Location() != loc {
		t.Fatalf("unexpected day %v", cal.Days[0].Date)
	}
}

func TestCursorsSaturate(t *testing.T) {
	cal := Build(fixture())
	cal.PrevDay()
	if cal.Current != 0 {
		t.Fatalf("PrevDay moved below 0: %d", cal.Current)
	}
	for i := 0; i < 5; i++ {
		cal.NextDay()
	}
	if cal.Current != 1 {
		t.Fatalf("NextDay should stop at 1, got %d", cal.Current)
	}
	d := cal.CurrentDay()
	d.Prev()
	if d.Selected != 0 {
		t.Fatalf("Prev moved below 0: %d", d.Selected)
	}
	for i := 0; i < 5; i++ {
		d.Next()
	}
	if d.Selected != 1 {
		t.Fatalf("Next should stop at 1, got %d", d.Selected)
	}
	got, ok := cal.Selected()
	if !ok || got.Title != "d2-late" {
		t.Fatalf("expected d2-late selected, got %#v (%t)", got, ok)
	}
}

func TestCursorsOnEmptyAreNoops(t *testing.T) {
	var cal Calendar
	cal.NextDay()
	cal.PrevDay()
	if cal.Current != 0 {
		t.Fatalf("expected cursor 0 on empty calendar, got %d", cal.Current)
	}
	var d Day
	d.Next()
	d.Prev()
	if d.Selected != NoSelection {
		t.Fatalf("expected no selection on empty day, got %d", d.Selected)
	}
	if _, ok := d.SelectedEvent(); ok {
		t.Fatalf("expected no selected event")
	}
}

func TestClamp(t *testing.T) {
	cal := Build(fixture())
	cal.Current = 7
	cal.Days[0].Selected = -4
	cal.Days[1].Selected = 9
	cal.Clamp()
	if cal.Current != 1 || cal.Days[0].Selected != 0 || cal.Days[1].Selected != 1 {
		t.Fatalf("clamp left cursors dangling: %d %d %d", cal.Current, cal.Days[0].Selected, cal.Days[1].Selected)
	}
}

func TestHints(t *testing.T) {
	cal := Build([]planner.Event{
		{CourseName: "Intro-to", Title: "Lab", DueAt: at(3, 9, 0)},
		{CourseName: "CS", Title: "Very long title", DueAt: at(4, 9, 0)},
	})
	h := Hints(cal)
	if h.Course != 8 || h.Title != 15 || h.Due != 7 {
		t.Fatalf("unexpected hints %#v", h)
	}
	if (Hints(Calendar{})) != (LayoutHints{}) {
		t.Fatalf("expected zero hints for empty calendar")
	}
}
