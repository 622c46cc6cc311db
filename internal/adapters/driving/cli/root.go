// Package cli implements the isearch command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/intellisearch/isearch-cli/internal/core/ports/driving"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired into the CLI by main.
var (
	searchService  driving.SearchOrchestrator
	suggestService driving.SuggestionService
	authService    driving.AuthService
	historyService driving.HistoryService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "isearch",
	Short: "Search documentation, forums and support tickets from the terminal",
	Long: `isearch is a unified search client for the IntelliSearch platform.

It searches public documentation anonymously, and community forums and
support tickets once you sign in. Results come with an AI-generated
answer whose citations link back to the underlying pages.

Run without arguments to launch the interactive TUI, or use the
subcommands for one-shot queries and scripting.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services holds everything the commands need.
type Services struct {
	Search  driving.SearchOrchestrator
	Suggest driving.SuggestionService
	Auth    driving.AuthService
	History driving.HistoryService
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	searchService = s.Search
	suggestService = s.Suggest
	authService = s.Auth
	historyService = s.History
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
