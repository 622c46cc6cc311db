// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// ResultList displays search results in a navigable list.
// Backend ordering is preserved.
type ResultList struct {
	results  []domain.SearchResult
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*3+2)

	header := fmt.Sprintf("Results (%d", len(r.results))
	if r.total > len(r.results) {
		header += fmt.Sprintf(" of %d", r.total)
	}
	header += ")"
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	// Each result takes up to 3 lines (title, breadcrumb, snippet)
	visibleCount := (r.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single search result.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = truncate(title, r.width-20)

	source := result.Source.Description()

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(indicator+title) + "  " + r.styles.Subtitle.Render(source)
	} else {
		titleLine = r.styles.Normal.Render(indicator+title) + "  " + r.styles.Muted.Render(source)
	}

	var locationLine string
	if result.Breadcrumb != "" {
		locationLine = "\n" + r.styles.Muted.Render("    "+truncate(result.Breadcrumb, r.width-6))
	}

	snippet := truncate(result.Snippet, r.width-6)
	snippetLine := r.styles.Muted.Render("    " + snippet)

	return titleLine + locationLine + "\n" + snippetLine
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// SetResults updates the result list and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult, total int) {
	r.results = results
	r.total = total
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
