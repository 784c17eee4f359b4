package action

import (
	"fmt"

	"tableflip.dev/canvastui/pkg/calendar"
)

// Kind enumerates the closed set of actions the reducer understands.
type Kind int

const (
	None Kind = iota
	Tick
	Render
	Quit
	NetworkReady
	CacheReady
	NextItem
	PrevItem
	NextDay
	PrevDay
	OpenSelected
)

var kindNames = map[Kind]string{
	None:         "none",
	Tick:         "tick",
	Render:       "render",
	Quit:         "quit",
	NetworkReady: "network-ready",
	CacheReady:   "cache-ready",
	NextItem:     "next-item",
	PrevItem:     "prev-item",
	NextDay:      "next-day",
	PrevDay:      "prev-day",
	OpenSelected: "open-selected",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is one queued intent. Calendar is only set for NetworkReady and
// CacheReady.
type Action struct {
	Kind     Kind
	Calendar calendar.Calendar
}

// Of builds a payload-free action.
func Of(k Kind) Action {
	return Action{Kind: k}
}

// FromNetwork wraps a freshly fetched calendar.
func FromNetwork(cal calendar.Calendar) Action {
	return Action{Kind: NetworkReady, Calendar: cal}
}

// FromCache wraps a calendar decoded from the on-disk cache.
func FromCache(cal calendar.Calendar) Action {
	return Action{Kind: CacheReady, Calendar: cal}
}

// Describe renders the action for logs.
func (a Action) Describe() string {
	switch a.Kind {
	case NetworkReady, CacheReady:
		return fmt.Sprintf("%s days:%d", a.Kind, len(a.Calendar.Days))
	default:
		return a.Kind.String()
	}
}
