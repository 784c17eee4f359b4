package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the planner view.
type Theme struct {
	Frame  FrameTheme
	Table  TableTheme
	Footer FooterTheme
}

// FrameTheme styles the outer border and heading.
type FrameTheme struct {
	Border      lipgloss.Style
	Title       lipgloss.Style
	DayHeading  lipgloss.Style
	Placeholder lipgloss.Style
}

// TableTheme styles the per-day event table.
type TableTheme struct {
	Header    lipgloss.Style
	Row       lipgloss.Style
	Submitted lipgloss.Style
	Selected  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	magenta := lipgloss.Color("5")
	return Theme{
		Frame: FrameTheme{
			Border: lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color("4")).
				Padding(0, 1),
			Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
			DayHeading:  lipgloss.NewStyle().Foreground(magenta).Bold(true),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Table: TableTheme{
			Header:    lipgloss.NewStyle().Foreground(magenta),
			Row:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Submitted: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Selected:  lipgloss.NewStyle().Background(lipgloss.Color("0")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

// Plain returns a theme without colors, used by tests and dumb terminals.
func Plain() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Frame: FrameTheme{
			Border:      lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
			Title:       s,
			DayHeading:  s,
			Placeholder: s,
		},
		Table:  TableTheme{Header: s, Row: s, Submitted: s, Selected: s},
		Footer: FooterTheme{Help: s, Status: s, Error: s},
	}
}

// Detect returns Plain when the environment asks for no color (NO_COLOR, a
// dumb terminal) and Default otherwise.
func Detect() Theme {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return Plain()
	}
	return Default()
}
