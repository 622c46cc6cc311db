package domain

import "time"

const unknownDescription = "Unknown"

// Source identifies a content origin a query can be restricted to.
type Source string

// Available sources.
const (
	// SourceForums is the community forums corpus.
	SourceForums Source = "forums"

	// SourceDocs is the public product documentation corpus.
	SourceDocs Source = "docs"

	// SourceTickets is the support ticket corpus.
	SourceTickets Source = "tickets"
)

// AllSources returns every known source in canonical order.
func AllSources() []Source {
	return []Source{SourceForums, SourceDocs, SourceTickets}
}

// IsValid returns true if the source is recognised.
func (s Source) IsValid() bool {
	switch s {
	case SourceForums, SourceDocs, SourceTickets:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Source) String() string {
	return string(s)
}

// Description returns a human-readable description of the source.
func (s Source) Description() string {
	switch s {
	case SourceForums:
		return "Community Forums"
	case SourceDocs:
		return "Documentation"
	case SourceTickets:
		return "Support Tickets"
	default:
		return unknownDescription
	}
}

// Tab is the scope selector on the search surface. It is a superset of
// Source: it adds an aggregate scope and a conversational mode.
type Tab string

// Available tabs.
const (
	// TabAll searches every source the filters allow.
	TabAll Tab = "all"

	// TabForums restricts the search to forums.
	TabForums Tab = "forums"

	// TabDocs restricts the search to documentation.
	TabDocs Tab = "docs"

	// TabTickets restricts the search to support tickets.
	TabTickets Tab = "tickets"

	// TabAIDeeper is the conversational search mode.
	TabAIDeeper Tab = "ai-deeper"
)

// IsValid returns true if the tab is recognised.
func (t Tab) IsValid() bool {
	switch t {
	case TabAll, TabForums, TabDocs, TabTickets, TabAIDeeper:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Tab) String() string {
	return string(t)
}

// IsProtected returns true if the tab requires authentication.
// Forums, tickets and the conversational mode are never exposed pre-auth.
func (t Tab) IsProtected() bool {
	switch t {
	case TabForums, TabTickets, TabAIDeeper:
		return true
	default:
		return false
	}
}

// Source returns the single source a concrete tab maps to,
// and false for the aggregate and conversational tabs.
func (t Tab) Source() (Source, bool) {
	switch t {
	case TabForums:
		return SourceForums, true
	case TabDocs:
		return SourceDocs, true
	case TabTickets:
		return SourceTickets, true
	default:
		return "", false
	}
}

// TimeRange restricts results to a recency window.
type TimeRange string

// Available time ranges.
const (
	TimeRangeAny       TimeRange = "any"
	TimeRangePastWeek  TimeRange = "past_week"
	TimeRangePastMonth TimeRange = "past_month"
	TimeRangePastYear  TimeRange = "past_year"
)

// IsValid returns true if the time range is recognised.
func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeAny, TimeRangePastWeek, TimeRangePastMonth, TimeRangePastYear:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r TimeRange) String() string {
	return string(r)
}

// SortBy selects the result ordering requested from the backend.
type SortBy string

// Available sort orders.
const (
	SortByRelevance SortBy = "relevance"
	SortByDate      SortBy = "date"
	SortBySource    SortBy = "source"
)

// IsValid returns true if the sort order is recognised.
func (s SortBy) IsValid() bool {
	switch s {
	case SortByRelevance, SortByDate, SortBySource:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SortBy) String() string {
	return string(s)
}

// SearchFilters configures a search request.
type SearchFilters struct {
	// Sources is the set of corpora to search. Never empty when a
	// search executes; Normalize restores the default set.
	Sources []Source

	// TimeRange restricts results by recency.
	TimeRange TimeRange

	// SortBy selects the requested ordering.
	SortBy SortBy
}

// DefaultFilters returns the filter set used before the user touches
// the filter panel: all sources, any time, relevance order.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		Sources:   AllSources(),
		TimeRange: TimeRangeAny,
		SortBy:    SortByRelevance,
	}
}

// Normalize returns a copy with invalid or missing fields replaced by
// defaults. An empty or fully-invalid source set falls back to all sources.
func (f SearchFilters) Normalize() SearchFilters {
	out := SearchFilters{
		TimeRange: f.TimeRange,
		SortBy:    f.SortBy,
	}

	seen := make(map[Source]bool, len(f.Sources))
	for _, src := range f.Sources {
		if src.IsValid() && !seen[src] {
			out.Sources = append(out.Sources, src)
			seen[src] = true
		}
	}
	if len(out.Sources) == 0 {
		out.Sources = AllSources()
	}

	if !out.TimeRange.IsValid() {
		out.TimeRange = TimeRangeAny
	}
	if !out.SortBy.IsValid() {
		out.SortBy = SortByRelevance
	}

	return out
}

// HasSource returns true if the filter set includes the given source.
func (f SearchFilters) HasSource(src Source) bool {
	for _, s := range f.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// SearchResult represents a single ranked hit returned by the backend.
// Backend ordering is preserved; the client never re-sorts.
type SearchResult struct {
	// Title is the result headline.
	Title string `json:"title"`

	// URL is the canonical link, unique per result within a response.
	URL string `json:"url"`

	// Source is the corpus the result came from.
	Source Source `json:"source"`

	// Snippet is the matched excerpt.
	Snippet string `json:"snippet"`

	// UpdatedAt is when the underlying document last changed.
	UpdatedAt time.Time `json:"updated_at"`

	// Breadcrumb is the document's location path, when the backend knows it.
	Breadcrumb string `json:"breadcrumb,omitempty"`

	// Author is the document author, when known.
	Author string `json:"author,omitempty"`

	// Tags are backend-assigned labels.
	Tags []string `json:"tags,omitempty"`

	// Score is the backend relevance score.
	Score float64 `json:"score,omitempty"`
}

// Citation is a numbered reference backing a generated answer.
// ID values are the 1-based positions referenced by [id] markers in the
// accompanying answer text; they need not be contiguous.
type Citation struct {
	// ID is the 1-based marker position.
	ID int `json:"id"`

	// Title is the cited document's headline.
	Title string `json:"title"`

	// URL links back to the cited document.
	URL string `json:"url"`

	// Source is the corpus the citation came from.
	Source Source `json:"source"`

	// Snippet is an optional supporting excerpt.
	Snippet string `json:"snippet,omitempty"`
}

// SearchResponse is the reconciled reply to a single search request.
type SearchResponse struct {
	// Query echoes the executed query.
	Query string `json:"query"`

	// Answer is the optional generated answer with [n] citation markers.
	Answer string `json:"answer,omitempty"`

	// Citations back the answer's markers, in ID order.
	Citations []Citation `json:"citations"`

	// Results are the ranked hits, in backend order.
	Results []SearchResult `json:"results"`

	// DidYouMean is an optional spelling correction for the query.
	DidYouMean string `json:"did_you_mean,omitempty"`

	// TotalResults is the backend's total match count (>= len(Results)).
	TotalResults int `json:"total_results"`

	// SearchTimeMs is the backend-reported execution time.
	SearchTimeMs int `json:"search_time_ms"`

	// Filters echoes the filter set the backend applied.
	Filters SearchFilters `json:"-"`
}

// SuggestionKind distinguishes suggestion entries.
type SuggestionKind string

// Available suggestion kinds.
const (
	// SuggestionQuery is a related query the user may want instead.
	SuggestionQuery SuggestionKind = "query"

	// SuggestionCompletion completes the prefix the user is typing.
	SuggestionCompletion SuggestionKind = "completion"
)

// IsValid returns true if the kind is recognised.
func (k SuggestionKind) IsValid() bool {
	switch k {
	case SuggestionQuery, SuggestionCompletion:
		return true
	default:
		return false
	}
}

// SuggestionItem is a single query completion for the input surface.
type SuggestionItem struct {
	// Text is the suggested query text.
	Text string `json:"text"`

	// Kind distinguishes completions from related queries.
	Kind SuggestionKind `json:"type"`

	// Source optionally names the corpus the suggestion derives from.
	Source string `json:"source,omitempty"`

	// Highlight holds offsets of the matched portion, when provided.
	Highlight []int `json:"highlight,omitempty"`
}
