// Package tabs provides the tab bar component for the TUI.
package tabs

import (
	"strings"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// labels maps tabs to their display names, in display order.
var order = []domain.Tab{
	domain.TabAll,
	domain.TabForums,
	domain.TabDocs,
	domain.TabTickets,
	domain.TabAIDeeper,
}

var labels = map[domain.Tab]string{
	domain.TabAll:      "All",
	domain.TabForums:   "Forums",
	domain.TabDocs:     "Docs",
	domain.TabTickets:  "Tickets",
	domain.TabAIDeeper: "AI Deeper",
}

// Bar renders the tab strip and tracks the active tab. Protected tabs
// stay selectable when anonymous: the search itself falls back to the
// public scope, matching what the results will actually contain.
type Bar struct {
	styles        *styles.Styles
	active        int
	authenticated bool
	width         int
}

// NewBar creates a new tab bar with the aggregate tab active.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		active: 0,
		width:  80,
	}
}

// Active returns the currently active tab.
func (b *Bar) Active() domain.Tab {
	return order[b.active]
}

// SetActive activates the given tab. Unknown tabs are ignored.
func (b *Bar) SetActive(tab domain.Tab) {
	for i, t := range order {
		if t == tab {
			b.active = i
			return
		}
	}
}

// Next activates the next tab, wrapping around, and returns it.
func (b *Bar) Next() domain.Tab {
	b.active = (b.active + 1) % len(order)
	return order[b.active]
}

// Prev activates the previous tab, wrapping around, and returns it.
func (b *Bar) Prev() domain.Tab {
	b.active = (b.active + len(order) - 1) % len(order)
	return order[b.active]
}

// SetAuthenticated updates how protected tabs are rendered.
func (b *Bar) SetAuthenticated(authenticated bool) {
	b.authenticated = authenticated
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// View renders the tab strip.
func (b *Bar) View() string {
	parts := make([]string, 0, len(order))
	for i, tab := range order {
		label := labels[tab]
		if tab.IsProtected() && !b.authenticated {
			label += " *"
		}

		switch {
		case i == b.active:
			parts = append(parts, b.styles.TabActive.Render(label))
		case tab.IsProtected() && !b.authenticated:
			parts = append(parts, b.styles.TabLocked.Render(label))
		default:
			parts = append(parts, b.styles.TabInactive.Render(label))
		}
	}

	bar := strings.Join(parts, b.styles.Muted.Render("  |  "))
	if !b.authenticated {
		bar += b.styles.Muted.Render("   (* sign in for full access)")
	}
	return bar
}
