package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"

	"tableflip.dev/canvastui/pkg/action"
)

// KeyMap binds keys to the actions they enqueue.
type KeyMap struct {
	Quit     key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	NextDay  key.Binding
	PrevDay  key.Binding
	Open     key.Binding
}

// DefaultKeyMap mirrors vim motions: j/k move within a day, h/l move between days.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextItem: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "item")),
		PrevItem: key.NewBinding(key.WithKeys("k", "up")),
		NextDay:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("h/l", "day")),
		PrevDay:  key.NewBinding(key.WithKeys("h", "left")),
		Open:     key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open")),
	}
}

// Action translates a key press. Unbound keys yield action.None.
func (k KeyMap) Action(msg fmt.Stringer) action.Kind {
	switch {
	case key.Matches(msg, k.Quit):
		return action.Quit
	case key.Matches(msg, k.NextItem):
		return action.NextItem
	case key.Matches(msg, k.PrevItem):
		return action.PrevItem
	case key.Matches(msg, k.NextDay):
		return action.NextDay
	case key.Matches(msg, k.PrevDay):
		return action.PrevDay
	case key.Matches(msg, k.Open):
		return action.OpenSelected
	}
	return action.None
}

// Help renders the short help line shown in the footer.
func (k KeyMap) Help() string {
	var parts []string
	for _, b := range []key.Binding{k.NextItem, k.NextDay, k.Open, k.Quit} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
