package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/planner"
)

const dayLayout = "Monday Jan 2"

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Calendar prints every day with its events in due order.
func (pp *PrettyPrint) Calendar(cal calendar.Calendar) {
	if cal.Empty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " nothing due\n")
		return
	}
	for _, d := range cal.Days {
		pp.TitleWithCount(d.Date.Format(dayLayout), len(d.Events))
		pp.Day(d.Events...)
	}
}

func (pp *PrettyPrint) Day(events ...planner.Event) {
	tbl := uitable.New()
	tbl.Separator = "  "

	done := color.New(color.FgGreen)
	for _, e := range events {
		mark := " "
		if e.Submitted {
			mark = done.Sprint("✓")
		}
		tbl.AddRow(e.CourseName, e.Title, e.DueAt.Format(calendar.DueLayout), mark)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// JSON writes the flattened events, one array, in calendar order.
func (pp *PrettyPrint) JSON(cal calendar.Calendar) error {
	events := cal.Events()
	if events == nil {
		events = []planner.Event{}
	}
	b, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
