package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event is one normalized planner item. Events are values; nothing mutates
// them after Decode returns.
type Event struct {
	CourseName string    `json:"course_name"`
	DueAt      time.Time `json:"due_at"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Submitted  bool      `json:"submitted"`
}

// DecodeError reports why a planner payload could not be decoded. Index is
// the position of the offending item, or -1 when the payload itself is not a
// list.
type DecodeError struct {
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("planner: decode items: %v", e.Err)
	case e.Field != "":
		return fmt.Sprintf("planner: item %d: %s: %v", e.Index, e.Field, e.Err)
	default:
		return fmt.Sprintf("planner: item %d: %v", e.Index, e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrMissingField is wrapped by DecodeError when a required item field is absent.
var ErrMissingField = errors.New("missing field")

type wireItem struct {
	ContextName *string        `json:"context_name"`
	HTMLURL     *string        `json:"html_url"`
	Submissions *submission    `json:"submissions"`
	Plannable   *wirePlannable `json:"plannable"`
}

type wirePlannable struct {
	Title *string    `json:"title"`
	DueAt *time.Time `json:"due_at"`
}

// submission accepts either a bare boolean or an object carrying a
// "submitted" boolean.
type submission struct {
	Submitted bool
}

func (s *submission) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Submitted bool `json:"submitted"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		s.Submitted = obj.Submitted
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("submissions: want bool or object, got %s", snippet(b, 32))
	}
	s.Submitted = v
	return nil
}

// Decode parses a JSON list of planner items into events with due times in
// loc. A nil loc means time.Local. One bad item fails the whole payload.
func Decode(data []byte, loc *time.Location) ([]Event, error) {
	if loc == nil {
		loc = time.Local
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Index: -1, Err: err}
	}
	events := make([]Event, 0, len(raw))
	for i, msg := range raw {
		var it wireItem
		if err := json.Unmarshal(msg, &it); err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		ev, err := it.normalize(loc)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Index = i
				return nil, de
			}
			return nil, &DecodeError{Index: i, Err: err}
		}
		events = append(events, ev)
	}
	return events, nil
}

func (it wireItem) normalize(loc *time.Location) (Event, error) {
	switch {
	case it.ContextName == nil:
		return Event{}, &DecodeError{Field: "context_name", Err: ErrMissingField}
	case it.HTMLURL == nil:
		return Event{}, &DecodeError{Field: "html_url", Err: ErrMissingField}
	case it.Submissions == nil:
		return Event{}, &DecodeError{Field: "submissions", Err: ErrMissingField}
	case it.Plannable == nil:
		return Event{}, &DecodeError{Field: "plannable", Err: ErrMissingField}
	case it.Plannable.Title == nil:
		return Event{}, &DecodeError{Field: "plannable.title", Err: ErrMissingField}
	case it.Plannable.DueAt == nil:
		return Event{}, &DecodeError{Field: "plannable.due_at", Err: ErrMissingField}
	}
	return Event{
		CourseName: CourseName(*it.ContextName),
		DueAt:      it.Plannable.DueAt.In(loc),
		Title:      *it.Plannable.Title,
		URL:        *it.HTMLURL,
		Submitted:  it.Submissions.Submitted,
	}, nil
}

// CourseName shortens a free-text course label to its first two words joined
// by a hyphen, e.g. "Intro to Systems" becomes "Intro-to".
func CourseName(label string) string {
	words := strings.Fields(label)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, "-")
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
