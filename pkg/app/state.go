package app

import (
	"errors"
	"fmt"

	"tableflip.dev/canvastui/pkg/action"
	"tableflip.dev/canvastui/pkg/calendar"
	"tableflip.dev/canvastui/pkg/logging"
)

// Opener launches a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// Source records where the calendar on screen came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceNetwork
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceNetwork:
		return "network"
	default:
		return "none"
	}
}

// ErrNothingSelected is reported by OpenSelected when no event is under the cursor.
var ErrNothingSelected = errors.New("app: no event selected")

// State is the authoritative application state. It is owned by the run loop;
// everything else reaches it through actions.
type State struct {
	Calendar    calendar.Calendar
	Hints       calendar.LayoutHints
	Source      Source
	HaveNetwork bool
	ShouldQuit  bool

	opener Opener
}

// New returns an empty state that opens URLs with opener.
func New(opener Opener) *State {
	return &State{opener: opener}
}

// Result summarizes the side effects of applying actions.
type Result struct {
	// Repaint is set when a Render action was applied.
	Repaint bool
	// Err is the last non-fatal failure, e.g. a browser that would not start.
	Err error
}

// Apply folds one action into the state.
func (s *State) Apply(a action.Action) Result {
	var res Result
	switch a.Kind {
	case action.NetworkReady:
		s.replace(a.Calendar, SourceNetwork)
		s.HaveNetwork = true
		s.Calendar.Reset()
	case action.CacheReady:
		if s.HaveNetwork {
			logging.Debug("cache ignored, network data already applied")
			break
		}
		// The day cursor survives a cache load; Clamp below bounds it.
		prev := s.Calendar.Current
		s.replace(a.Calendar, SourceCache)
		s.Calendar.Current = prev
	case action.NextItem:
		if d := s.Calendar.CurrentDay(); d != nil {
			d.Next()
		}
	case action.PrevItem:
		if d := s.Calendar.CurrentDay(); d != nil {
			d.Prev()
		}
	case action.NextDay:
		s.Calendar.NextDay()
	case action.PrevDay:
		s.Calendar.PrevDay()
	case action.OpenSelected:
		res.Err = s.openSelected()
	case action.Render:
		res.Repaint = true
	case action.Quit:
		s.ShouldQuit = true
	case action.Tick, action.None:
	}
	s.Calendar.Clamp()
	return res
}

// Drain applies actions in order. Repaint is true if any of them was a Render,
// so a repaint always sees the state left by the whole batch. Quit does not
// cut the batch short.
func (s *State) Drain(actions []action.Action) Result {
	var res Result
	for _, a := range actions {
		r := s.Apply(a)
		res.Repaint = res.Repaint || r.Repaint
		if r.Err != nil {
			res.Err = r.Err
		}
	}
	return res
}

func (s *State) replace(cal calendar.Calendar, src Source) {
	s.Calendar = cal
	s.Source = src
	s.Hints = calendar.Hints(cal)
	logging.Info("calendar replaced", "source", src, "days", len(cal.Days))
}

func (s *State) openSelected() error {
	ev, ok := s.Calendar.Selected()
	if !ok {
		return ErrNothingSelected
	}
	if s.opener == nil {
		return fmt.Errorf("app: open %s: no opener configured", ev.URL)
	}
	if err := s.opener.Open(ev.URL); err != nil {
		logging.Error("open selected", err, "url", ev.URL)
		return err
	}
	return nil
}
