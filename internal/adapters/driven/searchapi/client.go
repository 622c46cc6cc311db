// Package searchapi provides the search backend adapter over the HTTP API.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchBackend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.intellisearch.dev"
	DefaultTimeout = 30 * time.Second

	// Suggest traffic is keystroke-driven; cap it independently of the
	// client-side debounce so a misbehaving caller cannot hammer the API.
	suggestRateLimit = 5
	suggestRateBurst = 10
)

// TokenFunc supplies the current session token, empty when anonymous.
type TokenFunc func() string

// Config holds configuration for the search API client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.intellisearch.dev).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// Token supplies the session token per request. Optional.
	Token TokenFunc
}

// Client provides search operations against the HTTP API.
type Client struct {
	client  *http.Client
	baseURL string
	token   TokenFunc
	limiter *rate.Limiter
}

// searchResponse is the GET /search response format.
type searchResponse struct {
	Query        string           `json:"query"`
	Answer       string           `json:"answer"`
	Citations    []wireCitation   `json:"citations"`
	Results      []wireResult     `json:"results"`
	TotalResults int              `json:"total_results"`
	SearchTimeMs int              `json:"search_time_ms"`
	DidYouMean   string           `json:"did_you_mean"`
	Error        *wireError       `json:"error,omitempty"`
	Suggestions  []wireSuggestion `json:"suggestions,omitempty"`
}

// wireResult is a single result in the API response.
type wireResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Source     string  `json:"source"`
	Snippet    string  `json:"snippet"`
	UpdatedAt  string  `json:"updated_at"`
	Breadcrumb string  `json:"breadcrumb"`
	Score      float64 `json:"score"`
}

// wireCitation is a citation in the API response.
type wireCitation struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// wireSuggestion is the GET /suggest item format.
type wireSuggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// wireError is the API error envelope.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClient creates a new search API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		limiter: rate.NewLimiter(rate.Limit(suggestRateLimit), suggestRateBurst),
	}
}

// Search executes a search request against GET /search.
func (c *Client) Search(ctx context.Context, req driven.SearchRequest) (*domain.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("searchapi: %w: empty query", domain.ErrInvalidInput)
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("searchapi: %w: no sources", domain.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("sources", joinSources(req.Sources))
	if req.TopK > 0 {
		params.Set("top_k", strconv.Itoa(req.TopK))
	}
	if req.SortBy != "" {
		params.Set("sort_by", string(req.SortBy))
	}
	if req.TimeRange != "" && req.TimeRange != domain.TimeRangeAny {
		params.Set("time_range", string(req.TimeRange))
	}
	params.Set("authenticated", strconv.FormatBool(req.Authenticated))

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var wire searchResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("searchapi: %w: %v", domain.ErrMalformedResponse, err)
	}
	if wire.Error != nil {
		return nil, fmt.Errorf("searchapi: backend error %s: %s", wire.Error.Code, wire.Error.Message)
	}

	return toDomainResponse(req.Query, &wire)
}

// Suggest fetches typeahead suggestions from GET /suggest.
func (c *Client) Suggest(ctx context.Context, query string) ([]domain.SuggestionItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("searchapi: suggest rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)

	body, err := c.get(ctx, "/suggest", params)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Suggestions []wireSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("searchapi: %w: %v", domain.ErrMalformedResponse, err)
	}

	items := make([]domain.SuggestionItem, 0, len(wire.Suggestions))
	for _, s := range wire.Suggestions {
		kind := domain.SuggestionKind(s.Type)
		if s.Text == "" || !kind.IsValid() {
			// The suggestion union is closed; anything else is noise.
			logger.Debug("Dropping malformed suggestion: text=%q type=%q", s.Text, s.Type)
			continue
		}
		items = append(items, domain.SuggestionItem{Text: s.Text, Kind: kind})
	}
	return items, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("searchapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searchapi: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("searchapi: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("searchapi: %w (status %d)", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("searchapi: %w (status %d)", domain.ErrBackendUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("searchapi: unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// toDomainResponse validates the wire payload and maps it into the
// domain model. Unknown sources are rejected: the source union is
// closed and silently passing one through would break tab filtering.
func toDomainResponse(query string, wire *searchResponse) (*domain.SearchResponse, error) {
	out := &domain.SearchResponse{
		Query:        orDefault(wire.Query, query),
		Answer:       wire.Answer,
		TotalResults: wire.TotalResults,
		SearchTimeMs: wire.SearchTimeMs,
		DidYouMean:   wire.DidYouMean,
	}
	if out.TotalResults < 0 {
		out.TotalResults = 0
	}

	for _, r := range wire.Results {
		source := domain.Source(r.Source)
		if !source.IsValid() {
			return nil, fmt.Errorf("searchapi: %w: unknown source %q", domain.ErrMalformedResponse, r.Source)
		}
		if r.Title == "" && r.URL == "" {
			return nil, fmt.Errorf("searchapi: %w: result without title or url", domain.ErrMalformedResponse)
		}
		out.Results = append(out.Results, domain.SearchResult{
			Title:      r.Title,
			URL:        r.URL,
			Source:     source,
			Snippet:    r.Snippet,
			UpdatedAt:  parseTime(r.UpdatedAt),
			Breadcrumb: r.Breadcrumb,
			Score:      r.Score,
		})
	}

	for _, c := range wire.Citations {
		source := domain.Source(c.Source)
		if !source.IsValid() {
			return nil, fmt.Errorf("searchapi: %w: unknown citation source %q", domain.ErrMalformedResponse, c.Source)
		}
		if c.ID <= 0 {
			return nil, fmt.Errorf("searchapi: %w: citation id %d", domain.ErrMalformedResponse, c.ID)
		}
		out.Citations = append(out.Citations, domain.Citation{
			ID:      c.ID,
			Title:   c.Title,
			URL:     c.URL,
			Source:  source,
			Snippet: c.Snippet,
		})
	}

	if out.TotalResults < len(out.Results) {
		out.TotalResults = len(out.Results)
	}

	return out, nil
}

func joinSources(sources []domain.Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// parseTime is lenient: the listing renders a zero time as "unknown"
// rather than failing the whole response over one bad timestamp.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
