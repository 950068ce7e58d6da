// Package status provides the status bar for the study console.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
)

// Bar displays session status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	sources int
	turns   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and session counters.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateWorking:
		if s.message != "" {
			return s.styles.Warning.Render(s.message + "...")
		}
		return s.styles.Warning.Render("Working...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}
	return s.styles.Muted.Render(fmt.Sprintf("%d sources | %d turns", s.sources, s.turns))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if h := hint(b); h != "" {
			hints = append(hints, h)
		}
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// hint formats one binding. Disabled bindings and bindings without help
// text render as "".
func hint(b key.Binding) string {
	if !b.Enabled() {
		return ""
	}
	h := b.Help()
	if h.Key == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", h.Key, h.Desc)
}

// SetState sets the current state and message.
func (s *Bar) SetState(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetCounts records the number of sources and conversation turns.
func (s *Bar) SetCounts(sources, turns int) {
	s.sources = sources
	s.turns = turns
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
