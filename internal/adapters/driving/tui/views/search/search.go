// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/components/input"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/components/list"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/components/status"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/components/suggest"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/components/tabs"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/messages"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
)

// View is the single search surface: query input with live suggestions,
// the tab strip, the answer panel and the result list.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryBox
	tabbar    *tabs.Bar
	dropdown  *suggest.Dropdown
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model
	searching bool

	search  driving.SearchOrchestrator
	suggest driving.SuggestionService
	history driving.HistoryService
	ctx     context.Context

	state         domain.SessionState
	filters       domain.SearchFilters
	authenticated bool

	width  int
	height int
	ready  bool
}

// NewView creates a new search view. The suggestion and history
// services may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	search driving.SearchOrchestrator,
	suggestSvc driving.SuggestionService,
	history driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewQueryBox(s),
		tabbar:    tabs.NewBar(s),
		dropdown:  suggest.NewDropdown(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		spinner:   sp,
		search:    search,
		suggest:   suggestSvc,
		history:   history,
		state:     domain.EmptySessionState(),
		filters:   domain.DefaultFilters(),
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.searching = false
		v.applyState(msg.State)
		return v, nil

	case spinner.TickMsg:
		if !v.searching {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.SuggestionsReady:
		// A list for text the user has already moved past is noise
		if len(strings.TrimSpace(v.input.Value())) >= 2 {
			v.dropdown.SetItems(msg.Items)
		}
		return v, nil

	case messages.AuthResolved:
		v.authenticated = msg.Snapshot.IsAuthenticated
		v.tabbar.SetAuthenticated(v.authenticated)
		if msg.Snapshot.User != nil {
			v.statusbar.SetAccount(msg.Snapshot.User.Email)
		} else {
			v.statusbar.SetAccount("")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Dismiss):
		if v.dropdown.Visible() {
			v.dropdown.Clear()
			return v, nil
		}
		return v, tea.Quit

	case keymap.Matches(keyStr, v.keymap.NextTab):
		return v.switchTab(v.tabbar.Next())

	case keymap.Matches(keyStr, v.keymap.PrevTab):
		return v.switchTab(v.tabbar.Prev())

	case keymap.Matches(keyStr, v.keymap.ClearResults):
		v.search.ClearResults()
		v.searching = false
		v.dropdown.Clear()
		v.list.SetResults(nil, 0)
		v.input.Reset()
		v.state = domain.EmptySessionState()
		v.statusbar.Clear()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Retry):
		v.beginSearch()
		return v, tea.Batch(v.performRetry(), v.spinner.Tick)

	case keymap.Matches(keyStr, v.keymap.Up):
		if v.dropdown.Visible() {
			v.dropdown.MoveUp()
		} else {
			v.list.MoveUp()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		switch {
		case v.dropdown.Visible():
			v.dropdown.MoveDown()
		case strings.TrimSpace(v.input.Value()) == "" && v.list.IsEmpty() && v.history != nil:
			// Empty surface: offer recent queries instead
			v.dropdown.SetItems(v.history.Suggestions(v.ctx, "", 5))
		default:
			v.list.MoveDown()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Search):
		if item := v.dropdown.Selected(); item != nil {
			v.input.SetValue(item.Text)
		}
		v.dropdown.Clear()
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.beginSearch()
		return v, tea.Batch(v.performSearch(query), v.spinner.Tick)
	}

	// Everything else is typing: forward to the input and let the
	// suggestion service debounce the new value.
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		v.observeQuery(v.input.Value())
	}
	return v, cmd
}

// switchTab re-scopes an existing search to the newly active tab.
// The AI tab never re-searches automatically; it waits for an explicit
// submit since its answers are expensive.
func (v *View) switchTab(tab domain.Tab) (*View, tea.Cmd) {
	query := strings.TrimSpace(v.state.Query)
	if query == "" || tab == domain.TabAIDeeper {
		return v, func() tea.Msg { return messages.TabChanged{Tab: tab} }
	}
	v.beginSearch()
	return v, tea.Batch(
		func() tea.Msg { return messages.TabChanged{Tab: tab} },
		v.performSearch(query),
		v.spinner.Tick,
	)
}

// beginSearch flips the surface into its in-flight presentation.
func (v *View) beginSearch() {
	v.searching = true
	v.statusbar.SetState(status.StateSearching)
}

// observeQuery feeds the live input to the suggestion debouncer.
func (v *View) observeQuery(query string) {
	if len(strings.TrimSpace(query)) < 2 {
		v.dropdown.Clear()
	}
	if v.suggest != nil {
		v.suggest.Observe(query)
	}
}

// performSearch executes a search and delivers the settled state.
func (v *View) performSearch(query string) tea.Cmd {
	tab := v.tabbar.Active()
	filters := v.filters
	authenticated := v.authenticated
	return func() tea.Msg {
		state := v.search.Search(v.ctx, query, tab, filters, authenticated)
		return messages.SearchCompleted{State: state}
	}
}

// performRetry re-issues the last recorded search.
func (v *View) performRetry() tea.Cmd {
	authenticated := v.authenticated
	return func() tea.Msg {
		state := v.search.RetrySearch(v.ctx, authenticated)
		return messages.SearchCompleted{State: state}
	}
}

// applyState folds a settled session state into the view.
func (v *View) applyState(state domain.SessionState) {
	v.state = state
	v.list.SetResults(state.Results, state.TotalResults)

	if state.Error != "" {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(state.Error)
		return
	}
	if state.Query == "" {
		v.statusbar.Clear()
		return
	}
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResults(len(state.Results), state.SearchTimeMs)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	sections = append(sections, v.styles.Title.Render("IntelliSearch"), "")
	sections = append(sections, v.tabbar.View(), "")
	sections = append(sections, v.input.View())

	if v.dropdown.Visible() {
		sections = append(sections, v.dropdown.View())
	}
	sections = append(sections, "")

	if v.state.DidYouMean != "" {
		sections = append(sections,
			v.styles.Muted.Render("Did you mean: ")+v.styles.Subtitle.Render(v.state.DidYouMean), "")
	}

	if answer := v.renderAnswer(); answer != "" {
		sections = append(sections, answer, "")
	}

	if v.searching {
		sections = append(sections, v.spinner.View()+v.styles.Muted.Render(" Searching..."))
	} else {
		sections = append(sections, v.list.View())
	}
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnswer renders the generated answer with its citations inlined.
func (v *View) renderAnswer() string {
	if v.state.Answer == "" {
		return ""
	}

	var b strings.Builder
	for _, seg := range domain.LinkCitations(v.state.Answer, v.state.Citations) {
		switch seg.Kind {
		case domain.SegmentText:
			b.WriteString(v.styles.Normal.Render(seg.Text))
		case domain.SegmentCitation:
			b.WriteString(v.styles.Citation.Render(fmt.Sprintf("[%d]", seg.Citation.ID)))
		}
	}

	body := b.String()

	refs := make([]string, 0, len(v.state.Citations))
	for _, c := range v.state.Citations {
		refs = append(refs, v.styles.Muted.Render(fmt.Sprintf("  [%d] %s - %s", c.ID, c.Title, c.URL)))
	}
	if len(refs) > 0 {
		body += "\n" + strings.Join(refs, "\n")
	}

	return v.styles.Border.Padding(0, 1).Width(v.width - 4).Render(body)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.tabbar.SetWidth(width)
	v.dropdown.SetWidth(width)
	// Reserve space for header, tabs, input and status bar
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// ActiveTab returns the currently active tab.
func (v *View) ActiveTab() domain.Tab {
	return v.tabbar.Active()
}

// State returns the last settled session state.
func (v *View) State() domain.SessionState {
	return v.state
}

// Results returns the rendered results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Suggestions returns the visible suggestion list.
func (v *View) Suggestions() []domain.SuggestionItem {
	return v.dropdown.Items()
}

// Authenticated returns the resolved authentication status.
func (v *View) Authenticated() bool {
	return v.authenticated
}
