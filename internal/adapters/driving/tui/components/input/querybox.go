// Package input provides the query input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
)

// QueryBox wraps a bubbles textinput with search-specific styling.
type QueryBox struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewQueryBox creates a new query input component.
func NewQueryBox(s *styles.Styles) *QueryBox {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search docs, forums and tickets..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &QueryBox{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the query box.
func (q *QueryBox) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryBox) Update(msg tea.Msg) (*QueryBox, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the query box.
func (q *QueryBox) View() string {
	label := q.styles.Title.Render("Search: ")
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (q *QueryBox) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (q *QueryBox) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (q *QueryBox) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryBox) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryBox) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryBox) SetWidth(width int) {
	q.width = width
	// Account for label and padding
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryBox) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryBox) Reset() {
	q.textinput.Reset()
}
