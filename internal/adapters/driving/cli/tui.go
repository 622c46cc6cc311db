package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search UI",
	Long: `Launch the interactive terminal user interface.

Type to see suggestions, press Enter to search, and Tab to cycle
between the All, Forums, Docs, Tickets and AI Deeper tabs.

Controls:
  ↑/↓      - Navigate results and suggestions
  Enter    - Search / Open selection
  Tab      - Next tab
  Ctrl+L   - Clear results
  Ctrl+R   - Retry last search
  Esc      - Dismiss suggestions / Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Stack traces beat a garbled alternate screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive UI requires a terminal; use 'isearch search' for scripting")
	}

	ports := &tui.Ports{
		Search:  searchService,
		Suggest: suggestService,
		Auth:    authService,
		History: historyService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
