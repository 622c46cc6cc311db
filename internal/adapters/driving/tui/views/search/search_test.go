package search

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/messages"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

type mockOrchestrator struct {
	mu sync.Mutex

	state       domain.SessionState
	searchCalls int
	retryCalls  int
	clearCalls  int
	lastQuery   string
	lastTab     domain.Tab
	lastAuth    bool
}

func (m *mockOrchestrator) Search(_ context.Context, query string, tab domain.Tab, filters domain.SearchFilters, authenticated bool) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	m.lastQuery = query
	m.lastTab = tab
	m.lastAuth = authenticated
	m.state.Query = query
	m.state.Filters = filters
	return m.state
}

func (m *mockOrchestrator) RetrySearch(_ context.Context, authenticated bool) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryCalls++
	m.lastAuth = authenticated
	return m.state
}

func (m *mockOrchestrator) ClearResults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.state = domain.EmptySessionState()
}

func (m *mockOrchestrator) ApplySuggestions(items []domain.SuggestionItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Suggestions = items
}

func (m *mockOrchestrator) Snapshot() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

type mockSuggester struct {
	mu       sync.Mutex
	observed []string
	updates  chan []domain.SuggestionItem
}

func newMockSuggester() *mockSuggester {
	return &mockSuggester{updates: make(chan []domain.SuggestionItem, 4)}
}

func (m *mockSuggester) Observe(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed = append(m.observed, query)
}

func (m *mockSuggester) Updates() <-chan []domain.SuggestionItem { return m.updates }

func (m *mockSuggester) Fetch(context.Context, string) []domain.SuggestionItem { return nil }

func (m *mockSuggester) Close() { close(m.updates) }

func (m *mockSuggester) observedQueries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.observed...)
}

type mockHistory struct {
	items []domain.SuggestionItem
}

func (m *mockHistory) Record(context.Context, string) {}

func (m *mockHistory) Recent(context.Context, int) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func (m *mockHistory) Suggestions(context.Context, string, int) []domain.SuggestionItem {
	return m.items
}

func (m *mockHistory) Clear(context.Context) error { return nil }

func newTestView(orch *mockOrchestrator, sugg *mockSuggester) *View {
	var v *View
	if sugg == nil {
		v = NewView(nil, nil, orch, nil, nil)
	} else {
		v = NewView(nil, nil, orch, sugg, nil)
	}
	v.SetDimensions(100, 30)
	return v
}

func typeString(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

// runCmd executes a returned command and feeds its message back.
func runCmd(v *View, cmd tea.Cmd) *View {
	if cmd == nil {
		return v
	}
	msg := cmd()
	if msg == nil {
		return v
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			v = runCmd(v, c)
		}
		return v
	}
	v, _ = v.Update(msg)
	return v
}

func TestNewView(t *testing.T) {
	v := newTestView(&mockOrchestrator{}, nil)

	require.NotNil(t, v)
	assert.Equal(t, domain.TabAll, v.ActiveTab())
	assert.Empty(t, v.Query())
}

func TestView_TypingFeedsSuggester(t *testing.T) {
	sugg := newMockSuggester()
	v := newTestView(&mockOrchestrator{}, sugg)

	v = typeString(v, "ins")

	assert.Equal(t, []string{"i", "in", "ins"}, sugg.observedQueries())
}

func TestView_EnterRunsSearch(t *testing.T) {
	orch := &mockOrchestrator{state: domain.SessionState{
		Results:      []domain.SearchResult{{Title: "Install guide", Source: domain.SourceDocs}},
		TotalResults: 1,
		SearchTimeMs: 12,
	}}
	v := newTestView(orch, nil)
	v = typeString(v, "install")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	assert.Equal(t, 1, orch.searchCalls)
	assert.Equal(t, "install", orch.lastQuery)
	assert.Equal(t, domain.TabAll, orch.lastTab)
	require.Len(t, v.Results(), 1)
	assert.Equal(t, "Install guide", v.Results()[0].Title)
}

func TestView_EnterWithEmptyInputIsNoop(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(v, cmd)

	assert.Equal(t, 0, orch.searchCalls)
}

func TestView_EnterAcceptsHighlightedSuggestion(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)
	v = typeString(v, "ins")
	v, _ = v.Update(messages.SuggestionsReady{Items: []domain.SuggestionItem{
		{Text: "install agent", Kind: domain.SuggestionCompletion},
	}})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	assert.Equal(t, "install agent", orch.lastQuery)
	assert.Empty(t, v.Suggestions())
}

func TestView_SuggestionsIgnoredForShortInput(t *testing.T) {
	v := newTestView(&mockOrchestrator{}, nil)
	v = typeString(v, "i")

	v, _ = v.Update(messages.SuggestionsReady{Items: []domain.SuggestionItem{
		{Text: "stale", Kind: domain.SuggestionCompletion},
	}})

	assert.Empty(t, v.Suggestions())
}

func TestView_TabCyclesWithoutSearchWhenIdle(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = runCmd(v, cmd)

	assert.Equal(t, domain.TabForums, v.ActiveTab())
	assert.Equal(t, 0, orch.searchCalls)
}

func TestView_TabRescopesExistingSearch(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)
	v = typeString(v, "install")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)
	require.Equal(t, 1, orch.searchCalls)

	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = runCmd(v, cmd)

	assert.Equal(t, domain.TabForums, v.ActiveTab())
	assert.Equal(t, 2, orch.searchCalls)
	assert.Equal(t, domain.TabForums, orch.lastTab)
}

func TestView_AITabDoesNotAutoSearch(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)
	v = typeString(v, "install")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)
	require.Equal(t, 1, orch.searchCalls)

	// Shift+Tab from "all" wraps to the AI tab, which waits for an
	// explicit submit instead of re-running the query.
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	v = runCmd(v, cmd)

	assert.Equal(t, domain.TabAIDeeper, v.ActiveTab())
	assert.Equal(t, 1, orch.searchCalls)
}

func TestView_ClearResults(t *testing.T) {
	orch := &mockOrchestrator{state: domain.SessionState{
		Results: []domain.SearchResult{{Title: "Doc", Source: domain.SourceDocs}},
	}}
	v := newTestView(orch, nil)
	v = typeString(v, "install")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)
	require.NotEmpty(t, v.Results())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, 1, orch.clearCalls)
	assert.Empty(t, v.Results())
	assert.Empty(t, v.Query())
}

func TestView_RetryReissuesLastSearch(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	runCmd(v, cmd)

	assert.Equal(t, 1, orch.retryCalls)
}

func TestView_EscDismissesSuggestionsFirst(t *testing.T) {
	v := newTestView(&mockOrchestrator{}, nil)
	v = typeString(v, "ins")
	v, _ = v.Update(messages.SuggestionsReady{Items: []domain.SuggestionItem{
		{Text: "install", Kind: domain.SuggestionCompletion},
	}})
	require.NotEmpty(t, v.Suggestions())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, v.Suggestions())
	assert.Nil(t, cmd)

	// With nothing open, esc quits
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_AuthResolvedUpdatesState(t *testing.T) {
	orch := &mockOrchestrator{}
	v := newTestView(orch, nil)

	v, _ = v.Update(messages.AuthResolved{Snapshot: domain.AuthSnapshot{
		User:            &domain.User{ID: "u1", Email: "dev@example.com"},
		IsAuthenticated: true,
	}})

	assert.True(t, v.Authenticated())

	v = typeString(v, "tickets")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(v, cmd)

	assert.True(t, orch.lastAuth)
}

func TestView_SearchErrorShownInStatus(t *testing.T) {
	orch := &mockOrchestrator{state: domain.SessionState{Error: "search failed: backend down"}}
	v := newTestView(orch, nil)
	v = typeString(v, "install")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	assert.Contains(t, v.View(), "backend down")
}

func TestView_RendersAnswerWithCitations(t *testing.T) {
	orch := &mockOrchestrator{state: domain.SessionState{
		Answer: "Use the installer [1].",
		Citations: []domain.Citation{
			{ID: 1, Title: "Install guide", URL: "https://docs/install", Source: domain.SourceDocs},
		},
		Results: []domain.SearchResult{{Title: "Install guide", Source: domain.SourceDocs}},
	}}
	v := newTestView(orch, nil)
	v = typeString(v, "install")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	view := v.View()

	assert.Contains(t, view, "Use the installer")
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "https://docs/install")
}

func TestView_DownOnEmptySurfaceShowsRecentQueries(t *testing.T) {
	history := &mockHistory{items: []domain.SuggestionItem{
		{Text: "reset password", Kind: domain.SuggestionQuery},
	}}
	v := NewView(nil, nil, &mockOrchestrator{}, nil, history)
	v.SetDimensions(100, 30)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})

	require.Len(t, v.Suggestions(), 1)
	assert.Equal(t, "reset password", v.Suggestions()[0].Text)
}

func TestView_UpDownNavigateResults(t *testing.T) {
	orch := &mockOrchestrator{state: domain.SessionState{
		Results: []domain.SearchResult{
			{Title: "One", Source: domain.SourceDocs},
			{Title: "Two", Source: domain.SourceDocs},
		},
	}}
	v := newTestView(orch, nil)
	v = typeString(v, "install")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = runCmd(v, cmd)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())
}
