package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Fetch typeahead suggestions for a query prefix",
	Long: `Fetches the suggestions the search box would show for a prefix.

Prefixes shorter than two characters return nothing. Useful for shell
completion scripts and for debugging the suggestion pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if suggestService == nil {
		return errors.New("suggestion service not configured")
	}

	items := suggestService.Fetch(context.Background(), args[0])

	if suggestJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suggestions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, item := range items {
		cmd.Printf("%s\t%s\n", item.Text, item.Kind)
	}
	return nil
}
