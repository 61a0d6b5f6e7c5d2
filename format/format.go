package format

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styler emphasises text for the output channel.
type Styler interface {
	// Error renders text in an alert style.
	Error(text string) string
	// Heading renders text in a bold style.
	Heading(text string) string
}

// mIRC control codes.
const (
	ircBold  = "\x02"
	ircColor = "\x03"
	ircReset = "\x0f"
	ircRed   = "04"
)

type IRC struct{}

func (IRC) Error(text string) string {
	return ircColor + ircRed + text + ircReset
}

func (IRC) Heading(text string) string {
	return ircBold + text + ircBold
}

var (
	Red = lipgloss.Color("#ff5555")
)

// ANSI styles text for terminals.
type ANSI struct {
	error   lipgloss.Style
	heading lipgloss.Style
}

func NewANSI(r *lipgloss.Renderer) ANSI {
	return ANSI{
		error:   r.NewStyle().Foreground(Red),
		heading: r.NewStyle().Bold(true),
	}
}

func (a ANSI) Error(text string) string {
	return a.error.Render(text)
}

func (a ANSI) Heading(text string) string {
	return a.heading.Render(text)
}

type Plain struct{}

func (Plain) Error(text string) string   { return text }
func (Plain) Heading(text string) string { return text }

// ByName returns the Styler for "irc", "ansi" or "plain".
func ByName(name string) (Styler, error) {
	switch name {
	case "irc":
		return IRC{}, nil
	case "ansi":
		return NewANSI(lipgloss.DefaultRenderer()), nil
	case "plain":
		return Plain{}, nil
	}
	return nil, fmt.Errorf("format: unknown style %q", name)
}
