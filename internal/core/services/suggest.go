package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure Suggester implements the interface.
var _ driving.SuggestionService = (*Suggester)(nil)

// Default tuning for the suggestion pipeline.
const (
	// DefaultDebounce is the quiet period before a suggestion request.
	DefaultDebounce = 300 * time.Millisecond

	// minSuggestionLength is the shortest query that triggers a fetch.
	minSuggestionLength = 2

	// defaultCacheTTL bounds the freshness of cached suggestion lists.
	defaultCacheTTL = 30 * time.Second
)

type suggestCacheEntry struct {
	items     []domain.SuggestionItem
	fetchedAt time.Time
}

// Suggester is the debounced suggestion pipeline. Queries below the
// minimum length never reach the network; superseded debounce timers
// are cancelled outright; failures resolve to an empty list.
type Suggester struct {
	backend  driven.SearchBackend
	history  driving.HistoryService
	debounce *Debouncer
	ttl      time.Duration
	timeout  time.Duration

	mu         sync.Mutex
	cache      map[string]suggestCacheEntry
	generation uint64
	closed     bool

	updates chan []domain.SuggestionItem
}

// NewSuggester creates a suggestion service with the default debounce
// window. The history parameter is optional (can be nil); when present,
// recent searches backfill an empty backend response.
func NewSuggester(backend driven.SearchBackend, history driving.HistoryService) *Suggester {
	return &Suggester{
		backend:  backend,
		history:  history,
		debounce: NewDebouncer(DefaultDebounce),
		ttl:      defaultCacheTTL,
		timeout:  10 * time.Second,
		cache:    make(map[string]suggestCacheEntry),
		updates:  make(chan []domain.SuggestionItem, 8),
	}
}

// SetDebounce overrides the quiet period. Useful for tests.
func (s *Suggester) SetDebounce(delay time.Duration) {
	s.debounce = NewDebouncer(delay)
}

// SetCacheTTL overrides the cache freshness window.
func (s *Suggester) SetCacheTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Observe notes the live query text and resets the debounce timer.
func (s *Suggester) Observe(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if len(query) < minSuggestionLength {
		// Short queries never fetch. Cancel anything pending and clear
		// the suggestion list immediately.
		s.debounce.Cancel()
		s.deliver(gen, nil)
		return
	}

	s.debounce.Trigger(func() {
		items := s.resolve(context.Background(), query)
		s.deliver(gen, items)
	})
}

// Updates delivers suggestion lists for queries that survived debounce.
func (s *Suggester) Updates() <-chan []domain.SuggestionItem {
	return s.updates
}

// Fetch resolves suggestions synchronously, bypassing the debounce.
func (s *Suggester) Fetch(ctx context.Context, query string) []domain.SuggestionItem {
	query = strings.TrimSpace(query)
	if len(query) < minSuggestionLength {
		return nil
	}
	return s.resolve(ctx, query)
}

// Close cancels any pending timer and closes the updates channel.
func (s *Suggester) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.generation++
	s.mu.Unlock()

	s.debounce.Stop()
	close(s.updates)
}

// resolve serves from the cache when fresh, otherwise fetches.
// Every failure path returns an empty list: suggestions are best effort.
func (s *Suggester) resolve(ctx context.Context, query string) []domain.SuggestionItem {
	s.mu.Lock()
	if entry, ok := s.cache[query]; ok && time.Since(entry.fetchedAt) < s.ttl {
		s.mu.Unlock()
		logger.Debug("Suggestion cache hit: %q", query)
		return entry.items
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.backend.Suggest(ctx, query)
	if err != nil {
		logger.Debug("Suggestion fetch failed for %q: %v", query, err)
		items = nil
	}

	if len(items) == 0 && s.history != nil {
		// Backfill from recent searches so the dropdown is never
		// needlessly empty.
		items = s.history.Suggestions(ctx, query, 5)
	}

	if err != nil && len(items) == 0 {
		// Caching a transport failure would suppress re-fetching for the
		// whole TTL after the backend recovers.
		return items
	}

	s.mu.Lock()
	s.cache[query] = suggestCacheEntry{items: items, fetchedAt: time.Now()}
	s.mu.Unlock()

	return items
}

// deliver publishes items unless the observation that produced them has
// been superseded or the service is closed. The lock is held across the
// send so Close cannot tear down the channel mid-send; the send is
// non-blocking, so holding it cannot stall.
func (s *Suggester) deliver(gen uint64, items []domain.SuggestionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}

	select {
	case s.updates <- items:
	default:
		// A slow consumer drops stale lists rather than blocking the
		// pipeline.
	}
}
