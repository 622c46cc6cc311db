package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchOrchestrator = (*SearchService)(nil)

// defaultTopK is the number of results requested per search.
const defaultTopK = 20

// SearchService orchestrates search requests against the backend and is
// the single writer of the session state. Supersession is enforced with
// a generation counter: each issued request captures the counter at
// issue time and discards its own resolution if the counter has moved
// on by the time it lands. The transport call itself is never cancelled;
// stale responses are simply ignored.
type SearchService struct {
	backend driven.SearchBackend
	history driving.HistoryService
	topK    int

	mu         sync.Mutex
	state      domain.SessionState
	generation uint64

	lastQuery   string
	lastTab     domain.Tab
	lastFilters domain.SearchFilters
	hasLast     bool
}

// NewSearchService creates a new search orchestrator.
// The history parameter is optional (can be nil).
func NewSearchService(backend driven.SearchBackend, history driving.HistoryService) *SearchService {
	return &SearchService{
		backend: backend,
		history: history,
		topK:    defaultTopK,
		state:   domain.EmptySessionState(),
	}
}

// SetTopK overrides the per-search result limit.
func (s *SearchService) SetTopK(topK int) {
	if topK > 0 {
		s.topK = topK
	}
}

// Search executes a query and reconciles the response into session state.
func (s *SearchService) Search(
	ctx context.Context, query string, tab domain.Tab, filters domain.SearchFilters, authenticated bool,
) domain.SessionState {
	logger.Section("Search Execution")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, ignoring")
		return s.Snapshot()
	}

	filters = filters.Normalize()
	permitted := domain.PermittedSources(tab, filters, authenticated)
	logger.Debug("Query: %q, tab: %s, authenticated: %t", query, tab, authenticated)
	logger.Debug("Permitted sources: %v", permitted)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.lastQuery = query
	s.lastTab = tab
	s.lastFilters = filters
	s.hasLast = true
	s.state.Query = query
	s.state.Filters = filters
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	req := driven.SearchRequest{
		Query:         query,
		Sources:       permitted,
		TopK:          s.topK,
		SortBy:        filters.SortBy,
		TimeRange:     filters.TimeRange,
		Authenticated: authenticated,
	}

	resp, err := s.backend.Search(ctx, req)
	if err != nil && !authenticated {
		// Anonymous users always see something: degrade to a minimal
		// docs-only response instead of surfacing the failure.
		logger.Warn("Anonymous search failed (%v), degrading to docs-only fallback", err)
		resp = fallbackResponse(query)
		err = nil
	}

	s.mu.Lock()
	if gen != s.generation {
		// Superseded while in flight: this resolution must not write.
		logger.Debug("Discarding stale search resolution (generation %d, current %d)", gen, s.generation)
		state := s.state
		s.mu.Unlock()
		return state
	}

	if err != nil {
		logger.Warn("Search failed: %v", err)
		s.state.Results = nil
		s.state.TotalResults = 0
		s.state.SearchTimeMs = 0
		s.state.Answer = ""
		s.state.Citations = nil
		s.state.DidYouMean = ""
		s.state.IsLoading = false
		s.state.Error = fmt.Sprintf("search failed: %v", err)
		state := s.state
		s.mu.Unlock()
		return state
	}

	logger.Info("Search succeeded: %d results (%d total, %dms)",
		len(resp.Results), resp.TotalResults, resp.SearchTimeMs)
	s.state.Results = resp.Results
	s.state.TotalResults = resp.TotalResults
	s.state.SearchTimeMs = resp.SearchTimeMs
	s.state.Answer = resp.Answer
	s.state.Citations = resp.Citations
	s.state.DidYouMean = resp.DidYouMean
	s.state.IsLoading = false
	s.state.Error = ""
	state := s.state
	s.mu.Unlock()

	if s.history != nil {
		s.history.Record(ctx, query)
	}

	return state
}

// RetrySearch re-issues the last recorded search.
func (s *SearchService) RetrySearch(ctx context.Context, authenticated bool) domain.SessionState {
	s.mu.Lock()
	if !s.hasLast {
		state := s.state
		s.mu.Unlock()
		logger.Debug("Retry requested with no previous search")
		return state
	}
	query, tab, filters := s.lastQuery, s.lastTab, s.lastFilters
	s.mu.Unlock()

	logger.Debug("Retrying search: %q", query)
	return s.Search(ctx, query, tab, filters, authenticated)
}

// ClearResults resets the session to its empty initial state.
// Bumping the generation guarantees any in-flight resolution lands on
// the floor instead of resurrecting cleared state.
func (s *SearchService) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = domain.EmptySessionState()
	s.lastQuery = ""
	s.lastTab = ""
	s.lastFilters = domain.SearchFilters{}
	s.hasLast = false
}

// ApplySuggestions stores the live suggestion list in session state.
// The suggestion pipeline produces the list; this service stays the
// single session writer.
func (s *SearchService) ApplySuggestions(items []domain.SuggestionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Suggestions = items
}

// Snapshot returns a copy of the current session state.
func (s *SearchService) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// fallbackResponse synthesises a docs-only response for anonymous users
// when the backend is unreachable or denies access. The content points
// at public documentation entry points so the surface never renders an
// error pre-auth.
func fallbackResponse(query string) *domain.SearchResponse {
	now := time.Now().UTC()

	return &domain.SearchResponse{
		Query: query,
		Answer: fmt.Sprintf(
			"Here are public documentation results for %q. Sign in to search community forums and support tickets as well. [1]",
			query),
		Citations: []domain.Citation{
			{
				ID:      1,
				Title:   "Getting Started",
				URL:     "https://docs.intellisearch.dev/getting-started",
				Source:  domain.SourceDocs,
				Snippet: "Learn the basics of the platform.",
			},
		},
		Results: []domain.SearchResult{
			{
				Title:      "Getting Started",
				URL:        "https://docs.intellisearch.dev/getting-started",
				Source:     domain.SourceDocs,
				Snippet:    "Learn the basics of the platform and run your first search.",
				UpdatedAt:  now,
				Breadcrumb: "Documentation > Getting Started",
				Score:      0.95,
			},
			{
				Title:      "API Reference",
				URL:        "https://docs.intellisearch.dev/api",
				Source:     domain.SourceDocs,
				Snippet:    "Complete API reference for platform integration.",
				UpdatedAt:  now,
				Breadcrumb: "Documentation > API Reference",
				Score:      0.87,
			},
		},
		TotalResults: 2,
		SearchTimeMs: 0,
		Filters: domain.SearchFilters{
			Sources:   []domain.Source{domain.SourceDocs},
			TimeRange: domain.TimeRangeAny,
			SortBy:    domain.SortByRelevance,
		},
	}
}
