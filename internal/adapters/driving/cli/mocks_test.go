package cli

import (
	"context"
	"sync"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

type mockOrchestrator struct {
	mu        sync.Mutex
	state     domain.SessionState
	lastQuery string
	lastTab   domain.Tab
	lastAuth  bool
	calls     int
}

func (m *mockOrchestrator) Search(_ context.Context, query string, tab domain.Tab, filters domain.SearchFilters, authenticated bool) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = query
	m.lastTab = tab
	m.lastAuth = authenticated
	m.state.Query = query
	m.state.Filters = filters
	return m.state
}

func (m *mockOrchestrator) RetrySearch(context.Context, bool) domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockOrchestrator) ClearResults() {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	items   []domain.SuggestionItem
	updates chan []domain.SuggestionItem
}

func (m *mockSuggester) Observe(string) {}

func (m *mockSuggester) Updates() <-chan []domain.SuggestionItem { return m.updates }

func (m *mockSuggester) Fetch(context.Context, string) []domain.SuggestionItem { return m.items }

func (m *mockSuggester) Close() {}

type mockAuth struct {
	snapshot    domain.AuthSnapshot
	logoutCalls int
}

func (m *mockAuth) Init(context.Context) domain.AuthSnapshot { return m.snapshot }

func (m *mockAuth) Snapshot() domain.AuthSnapshot { return m.snapshot }

func (m *mockAuth) LoginURL(string, string) string { return "https://auth/login" }

func (m *mockAuth) HandleCallback(context.Context, string) (*domain.User, error) {
	return m.snapshot.User, nil
}

func (m *mockAuth) Logout(context.Context) { m.logoutCalls++ }

func (m *mockAuth) HasPermission(string) bool { return false }

func (m *mockAuth) HasGroup(string) bool { return false }

func (m *mockAuth) Token() string { return "" }

func (m *mockAuth) Invalidate() {}

type mockHistory struct {
	entries    []domain.HistoryEntry
	clearCalls int
}

func (m *mockHistory) Record(context.Context, string) {}

func (m *mockHistory) Recent(context.Context, int) ([]domain.HistoryEntry, error) {
	return m.entries, nil
}

func (m *mockHistory) Suggestions(context.Context, string, int) []domain.SuggestionItem {
	return nil
}

func (m *mockHistory) Clear(context.Context) error {
	m.clearCalls++
	return nil
}

// setupTestServices installs mock services and returns the mocks plus a
// cleanup restoring the previous wiring.
func setupTestServices() (*mockOrchestrator, *mockAuth, *mockSuggester, *mockHistory, func()) {
	prevSearch := searchService
	prevSuggest := suggestService
	prevAuth := authService
	prevHistory := historyService

	orch := &mockOrchestrator{}
	auth := &mockAuth{}
	sugg := &mockSuggester{}
	hist := &mockHistory{}
	SetServices(Services{Search: orch, Suggest: sugg, Auth: auth, History: hist})

	return orch, auth, sugg, hist, func() {
		searchService = prevSearch
		suggestService = prevSuggest
		authService = prevAuth
		historyService = prevHistory
	}
}
