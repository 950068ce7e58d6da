// Package input provides the prompt component for the study console.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/styles"
)

// PromptInput wraps a bubbles textinput for questions and slash commands.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewPromptInput creates a new prompt input component.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about your material, or /help"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	return &PromptInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init initialises the input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input.
func (p *PromptInput) View() string {
	label := p.styles.UserTurn.Render("> ")
	field := p.styles.InputField.Render(p.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	// Account for label, border and padding
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
