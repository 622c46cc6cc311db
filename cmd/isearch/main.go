// Command isearch is the IntelliSearch terminal client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intellisearch/isearch-cli/internal/adapters/driven/authapi"
	"github.com/intellisearch/isearch-cli/internal/adapters/driven/config/file"
	"github.com/intellisearch/isearch-cli/internal/adapters/driven/searchapi"
	"github.com/intellisearch/isearch-cli/internal/adapters/driven/storage/memory"
	"github.com/intellisearch/isearch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/intellisearch/isearch-cli/internal/adapters/driving/cli"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/core/services"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "isearch: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sessions, err := file.NewSessionStore("")
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	historyStore := openHistoryStore(cfg)
	defer historyStore.Close()

	baseURL := cfg.GetString(file.KeyAPIBaseURL)
	clientID := cfg.GetString(file.KeyAuthClientID)

	var timeout time.Duration
	if seconds := cfg.GetInt(file.KeyAPITimeout); seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}

	authClient := authapi.NewClient(authapi.Config{
		BaseURL:  baseURL,
		ClientID: clientID,
		Timeout:  timeout,
	})
	authSvc := services.NewAuthSession(authClient, sessions)

	searchClient := searchapi.NewClient(searchapi.Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Token:   authSvc.Token,
	})

	historySvc := services.NewHistoryService(historyStore)
	searchSvc := services.NewSearchService(searchClient, historySvc)
	suggestSvc := services.NewSuggester(searchClient, historySvc)
	defer suggestSvc.Close()

	// Another process signing in or out invalidates our cached session
	go func() {
		if err := sessions.Watch(ctx, authSvc.Invalidate); err != nil && !errors.Is(err, context.Canceled) {
			logger.Debug("session watch stopped: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:  searchSvc,
		Suggest: suggestSvc,
		Auth:    authSvc,
		History: historySvc,
	})

	return cli.ExecuteContext(ctx)
}

// openHistoryStore picks the persistent store unless history is
// disabled, in which case recent queries live only for the process.
func openHistoryStore(cfg *file.ConfigStore) driven.HistoryStore {
	// History is on unless the key is present and explicitly false
	if val, ok := cfg.Get(file.KeyHistoryEnabled); ok {
		if enabled, isBool := val.(bool); isBool && !enabled {
			return memory.NewHistoryStore()
		}
	}

	store, err := sqlite.NewHistoryStore(cfg.GetString(file.KeyHistoryPath))
	if err != nil {
		// A broken local database should not take the whole CLI down
		logger.Warn("falling back to in-memory history: %v", err)
		return memory.NewHistoryStore()
	}
	return store
}
