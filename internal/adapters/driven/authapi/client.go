// Package authapi provides the authentication backend adapter over the HTTP API.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AuthAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.intellisearch.dev"
	DefaultTimeout = 30 * time.Second

	// DefaultRedirectURL is used when the caller does not supply the
	// address of a running callback listener.
	DefaultRedirectURL = "http://localhost:8765/callback"
)

// Config holds configuration for the auth API client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.intellisearch.dev).
	BaseURL string

	// ClientID identifies this CLI to the authorization server.
	ClientID string

	// RedirectURL is the local callback address (default: localhost:8765).
	RedirectURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client provides authentication operations against the HTTP API.
type Client struct {
	client  *http.Client
	baseURL string
	oauth   oauth2.Config
}

// callbackRequest is the POST /auth/callback request format.
type callbackRequest struct {
	Code string `json:"code"`
}

// callbackResponse is the POST /auth/callback response format.
type callbackResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// NewClient creates a new auth API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = DefaultRedirectURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		oauth: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL: cfg.BaseURL + "/auth/login",
			},
		},
	}
}

// LoginURL returns the URL the user must visit to authenticate. The
// state parameter is round-tripped for CSRF protection. redirectURI,
// when non-empty, replaces the configured redirect so the browser lands
// on the port the callback listener actually bound.
func (c *Client) LoginURL(state, redirectURI string) string {
	if redirectURI == "" {
		return c.oauth.AuthCodeURL(state)
	}
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
}

// Me resolves the user the token belongs to via GET /auth/me.
// Returns domain.ErrUnauthorized when the backend answers 401.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("authapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authapi: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authapi: /auth/me returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authapi: read response: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("authapi: %w: %v", domain.ErrMalformedResponse, err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("authapi: %w: user without id", domain.ErrMalformedResponse)
	}
	return &user, nil
}

// ExchangeCode trades an authorization code for a session via
// POST /auth/callback.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.Session, error) {
	payload, err := json.Marshal(callbackRequest{Code: code})
	if err != nil {
		return nil, fmt.Errorf("authapi: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/auth/callback", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("authapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authapi: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authapi: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("authapi: code exchange rejected: %w", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authapi: /auth/callback returned status %d: %s", resp.StatusCode, string(body))
	}

	var wire callbackResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("authapi: %w: %v", domain.ErrMalformedResponse, err)
	}
	if wire.AccessToken == "" || wire.User == nil || wire.User.ID == "" {
		return nil, fmt.Errorf("authapi: %w: incomplete callback response", domain.ErrMalformedResponse)
	}

	return &domain.Session{Token: wire.AccessToken, User: *wire.User}, nil
}

// Logout invalidates the session server-side via POST /auth/logout.
// Best effort: the caller has already cleared local state.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/auth/logout", http.NoBody)
	if err != nil {
		return fmt.Errorf("authapi: create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("authapi: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		logger.Debug("Logout returned status %d", resp.StatusCode)
		return fmt.Errorf("authapi: /auth/logout returned status %d", resp.StatusCode)
	}
	return nil
}
