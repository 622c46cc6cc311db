package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/messages"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/styles"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/tui/views/search"
	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

// App is the root Bubbletea model. It owns the global concerns - auth
// resolution, the suggestion stream, quit handling - and delegates
// everything else to the search view.
type App struct {
	ports      *Ports
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	searchView *search.View

	auth  domain.AuthSnapshot
	ready bool
}

// Interface guard.
var _ tea.Model = (*App)(nil)

// NewApp creates the root model from the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		searchView: search.NewView(s, km, ports.Search, ports.Suggest, ports.History),
	}, nil
}

// WithContext sets the context for backend calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init starts the view, resolves the session and opens the suggestion
// stream.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("isearch"),
		a.searchView.Init(),
		a.resolveAuth(),
	}
	if a.ports.Suggest != nil {
		cmds = append(cmds, a.awaitSuggestions())
	}
	return tea.Batch(cmds...)
}

// resolveAuth runs the session check off the UI loop.
func (a *App) resolveAuth() tea.Cmd {
	return func() tea.Msg {
		return messages.AuthResolved{Snapshot: a.ports.Auth.Init(a.ctx)}
	}
}

// awaitSuggestions blocks on the suggestion stream until the next
// debounced list arrives. Re-issued after each delivery.
func (a *App) awaitSuggestions() tea.Cmd {
	return func() tea.Msg {
		items, ok := <-a.ports.Suggest.Updates()
		if !ok {
			return messages.SuggestionStreamClosed{}
		}
		return messages.SuggestionsReady{Items: items}
	}
}

// Update handles global messages and forwards the rest to the view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
		a.searchView, _ = a.searchView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		view, cmd := a.searchView.Update(msg)
		a.searchView = view
		return a, cmd

	case messages.AuthResolved:
		a.auth = msg.Snapshot
		a.searchView, _ = a.searchView.Update(msg)
		return a, nil

	case messages.SuggestionsReady:
		// The orchestrator stays the single session writer
		a.ports.Search.ApplySuggestions(msg.Items)
		a.searchView, _ = a.searchView.Update(msg)
		return a, a.awaitSuggestions()

	case messages.SuggestionStreamClosed:
		return a, nil
	}

	view, cmd := a.searchView.Update(msg)
	a.searchView = view
	return a, cmd
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Loading isearch..."
	}
	return a.searchView.View()
}

// SetDimensions sets the dimensions directly. Used in tests.
func (a *App) SetDimensions(width, height int) {
	a.ready = true
	a.searchView.SetDimensions(width, height)
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Query returns the current input text.
func (a *App) Query() string {
	return a.searchView.Query()
}

// ActiveTab returns the currently active tab.
func (a *App) ActiveTab() domain.Tab {
	return a.searchView.ActiveTab()
}

// Results returns the rendered results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// AuthSnapshot returns the resolved authentication state.
func (a *App) AuthSnapshot() domain.AuthSnapshot {
	return a.auth
}
