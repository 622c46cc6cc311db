package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

var (
	searchTab       string
	searchSources   []string
	searchTimeRange string
	searchSort      string
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot search",
	Long: `Runs a single search and prints the answer and results.

Without a session only public documentation is searched; sign in with
'isearch auth login' to include forums and support tickets.

Examples:
  isearch search "how do I rotate credentials"
  isearch search --tab docs --time-range past_month "upgrade guide"
  isearch search --sources docs,forums --json "api errors"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTab, "tab", "t", "all", "search tab (all, forums, docs, tickets, ai-deeper)")
	searchCmd.Flags().StringSliceVar(&searchSources, "sources", nil, "restrict to sources (forums, docs, tickets)")
	searchCmd.Flags().StringVar(&searchTimeRange, "time-range", "", "filter by recency (any, past_week, past_month, past_year)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort order (relevance, date, source)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil || authService == nil {
		return errors.New("services not configured")
	}

	tab := domain.Tab(searchTab)
	if !tab.IsValid() {
		return fmt.Errorf("invalid tab %q", searchTab)
	}

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	ctx := context.Background()
	snap := authService.Init(ctx)

	state := searchService.Search(ctx, args[0], tab, filters, snap.IsAuthenticated)
	if state.Error != "" {
		return errors.New(state.Error)
	}

	if searchJSON {
		return outputSearchJSON(cmd, state)
	}
	outputSearchText(cmd, state, snap.IsAuthenticated)
	return nil
}

// buildFilters translates the command flags into search filters.
func buildFilters() (domain.SearchFilters, error) {
	filters := domain.DefaultFilters()

	if len(searchSources) > 0 {
		filters.Sources = nil
		for _, raw := range searchSources {
			source := domain.Source(strings.TrimSpace(raw))
			if !source.IsValid() {
				return filters, fmt.Errorf("invalid source %q", raw)
			}
			filters.Sources = append(filters.Sources, source)
		}
	}

	if searchTimeRange != "" {
		tr := domain.TimeRange(searchTimeRange)
		if !tr.IsValid() {
			return filters, fmt.Errorf("invalid time range %q", searchTimeRange)
		}
		filters.TimeRange = tr
	}

	if searchSort != "" {
		sort := domain.SortBy(searchSort)
		if !sort.IsValid() {
			return filters, fmt.Errorf("invalid sort order %q", searchSort)
		}
		filters.SortBy = sort
	}

	return filters.Normalize(), nil
}

func outputSearchJSON(cmd *cobra.Command, state domain.SessionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, state domain.SessionState, authenticated bool) {
	if state.DidYouMean != "" {
		cmd.Printf("Did you mean: %s\n\n", state.DidYouMean)
	}

	if state.Answer != "" {
		cmd.Println(renderAnswer(state.Answer, state.Citations))
		cmd.Println()
	}

	if len(state.Results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Printf("Results (%d of %d, %dms):\n\n", len(state.Results), state.TotalResults, state.SearchTimeMs)
	for i, r := range state.Results {
		cmd.Printf("  [%d] %s (%s)\n", i+1, r.Title, r.Source)
		if r.Breadcrumb != "" {
			cmd.Printf("      %s\n", r.Breadcrumb)
		}
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Printf("      %s\n", r.URL)
		cmd.Println()
	}

	if !authenticated {
		cmd.Println("Showing public documentation only. Run 'isearch auth login' to search forums and tickets.")
	}
}

// renderAnswer resolves citation markers into "title <url>" references.
func renderAnswer(answer string, citations []domain.Citation) string {
	var b strings.Builder
	for _, segment := range domain.LinkCitations(answer, citations) {
		switch segment.Kind {
		case domain.SegmentCitation:
			fmt.Fprintf(&b, "[%d: %s]", segment.Citation.ID, segment.Citation.URL)
		default:
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}
