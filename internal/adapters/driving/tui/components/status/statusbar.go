// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
)

// State represents the current session state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Bar displays session status, the signed-in account and keybinding hints.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	state        State
	message      string
	account      string
	resultCount  int
	searchTimeMs int
	width        int
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

// renderLeft renders the session state and account segment.
func (s *Bar) renderLeft() string {
	account := s.account
	if account == "" {
		account = "anonymous"
	}
	prefix := s.styles.Muted.Render(account + " | ")

	switch s.state {
	case StateSearching:
		return prefix + s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return prefix + s.styles.Error.Render("Error: "+s.message)
		}
		return prefix + s.styles.Error.Render("Error")
	case StateResults:
		if s.resultCount > 0 {
			return prefix + s.styles.Normal.Render(
				fmt.Sprintf("%d results (%dms)", s.resultCount, s.searchTimeMs))
		}
		return prefix + s.styles.Muted.Render("No results")
	case StateReady:
	}
	return prefix + s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetAccount sets the signed-in account label, empty for anonymous.
func (s *Bar) SetAccount(account string) {
	s.account = account
}

// SetResults records the settled result count and search time.
func (s *Bar) SetResults(count, timeMs int) {
	s.resultCount = count
	s.searchTimeMs = timeMs
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
	s.searchTimeMs = 0
}
