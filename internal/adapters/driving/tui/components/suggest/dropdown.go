// Package suggest provides the suggestion dropdown component for the TUI.
package suggest

import (
	"strings"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// Dropdown shows live suggestions under the query input. It is visible
// whenever it holds items; an empty list hides it.
type Dropdown struct {
	styles   *styles.Styles
	items    []domain.SuggestionItem
	selected int
	width    int
}

// NewDropdown creates a hidden suggestion dropdown.
func NewDropdown(s *styles.Styles) *Dropdown {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Dropdown{
		styles:   s,
		selected: -1,
		width:    80,
	}
}

// SetItems replaces the suggestion list and clears the selection.
func (d *Dropdown) SetItems(items []domain.SuggestionItem) {
	d.items = items
	d.selected = -1
}

// Items returns the current suggestion list.
func (d *Dropdown) Items() []domain.SuggestionItem {
	return d.items
}

// Clear hides the dropdown.
func (d *Dropdown) Clear() {
	d.items = nil
	d.selected = -1
}

// Visible returns whether the dropdown has anything to show.
func (d *Dropdown) Visible() bool {
	return len(d.items) > 0
}

// MoveDown advances the selection, stopping at the last item.
func (d *Dropdown) MoveDown() {
	if d.selected < len(d.items)-1 {
		d.selected++
	}
}

// MoveUp retreats the selection. Moving above the first item returns
// focus to the raw input text.
func (d *Dropdown) MoveUp() {
	if d.selected >= 0 {
		d.selected--
	}
}

// Selected returns the highlighted suggestion, or nil when the raw
// input text has focus.
func (d *Dropdown) Selected() *domain.SuggestionItem {
	if d.selected < 0 || d.selected >= len(d.items) {
		return nil
	}
	return &d.items[d.selected]
}

// SelectedIndex returns the highlighted index, -1 when none.
func (d *Dropdown) SelectedIndex() int {
	return d.selected
}

// SetWidth sets the dropdown width.
func (d *Dropdown) SetWidth(width int) {
	d.width = width
}

// View renders the dropdown, or an empty string when hidden.
func (d *Dropdown) View() string {
	if !d.Visible() {
		return ""
	}

	lines := make([]string, 0, len(d.items))
	for i, item := range d.items {
		indicator := "  "
		if i == d.selected {
			indicator = "> "
		}

		kind := ""
		if item.Kind == domain.SuggestionQuery {
			kind = "  (related)"
		}

		if i == d.selected {
			lines = append(lines, d.styles.Selected.Render(indicator+item.Text)+d.styles.Muted.Render(kind))
		} else {
			lines = append(lines, d.styles.Normal.Render(indicator+item.Text)+d.styles.Muted.Render(kind))
		}
	}

	return d.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}
