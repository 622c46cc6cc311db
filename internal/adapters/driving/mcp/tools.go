package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the search query"`
	Tab     string   `json:"tab,omitempty" jsonschema:"search tab: all, forums, docs, tickets or ai-deeper (default all)"`
	Sources []string `json:"sources,omitempty" jsonschema:"restrict to sources: forums, docs, tickets"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Answer     string               `json:"answer,omitempty"`
	DidYouMean string               `json:"did_you_mean,omitempty"`
	Results    []SearchResultOutput `json:"results"`
	Count      int                  `json:"count"`
	Total      int                  `json:"total"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Source     string  `json:"source"`
	Snippet    string  `json:"snippet,omitempty"`
	Breadcrumb string  `json:"breadcrumb,omitempty"`
	Score      float64 `json:"score"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Prefix string `json:"prefix" jsonschema:"the query prefix to complete (minimum two characters)"`
}

// SuggestOutput is the output schema for the suggest tool.
type SuggestOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
}

// SuggestionOutput represents a single suggestion.
type SuggestionOutput struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search documentation, community forums and support tickets. Anonymous sessions only see documentation.",
	}, s.handleSearch)

	if s.ports.Suggest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "suggest",
			Description: "Fetch typeahead suggestions for a query prefix",
		}, s.handleSuggest)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, errors.New("query is required")
	}

	tab := domain.TabAll
	if input.Tab != "" {
		tab = domain.Tab(input.Tab)
		if !tab.IsValid() {
			return nil, SearchOutput{}, errors.New("unknown tab: " + input.Tab)
		}
	}

	filters := domain.DefaultFilters()
	if len(input.Sources) > 0 {
		filters.Sources = nil
		for _, raw := range input.Sources {
			source := domain.Source(raw)
			if !source.IsValid() {
				return nil, SearchOutput{}, errors.New("unknown source: " + raw)
			}
			filters.Sources = append(filters.Sources, source)
		}
	}

	snap := s.ports.Auth.Init(ctx)
	state := s.ports.Search.Search(ctx, input.Query, tab, filters, snap.IsAuthenticated)
	if state.Error != "" {
		return nil, SearchOutput{}, errors.New(state.Error)
	}

	output := SearchOutput{
		Answer:     state.Answer,
		DidYouMean: state.DidYouMean,
		Results:    make([]SearchResultOutput, len(state.Results)),
		Count:      len(state.Results),
		Total:      state.TotalResults,
	}
	for i, r := range state.Results {
		output.Results[i] = SearchResultOutput{
			Title:      r.Title,
			URL:        r.URL,
			Source:     string(r.Source),
			Snippet:    r.Snippet,
			Breadcrumb: r.Breadcrumb,
			Score:      r.Score,
		}
	}

	return nil, output, nil
}

// handleSuggest handles the suggest tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	items := s.ports.Suggest.Fetch(ctx, input.Prefix)

	output := SuggestOutput{
		Suggestions: make([]SuggestionOutput, len(items)),
	}
	for i, item := range items {
		output.Suggestions[i] = SuggestionOutput{
			Text: item.Text,
			Kind: string(item.Kind),
		}
	}
	return nil, output, nil
}
