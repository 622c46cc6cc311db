package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
	"github.com/intellisearch/isearch-cli/internal/core/ports/driven"
	"github.com/intellisearch/isearch-cli/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

const sessionFileName = "session.toml"

// SessionStore persists the authentication session as a TOML file in the
// isearch config directory. The file holds the opaque token and the user
// record it was issued for; permissions are 0600 because the token is a
// credential.
type SessionStore struct {
	mu       sync.Mutex
	filePath string
}

// sessionFile is the on-disk session format.
type sessionFile struct {
	Token string      `toml:"token"`
	User  sessionUser `toml:"user"`
}

// sessionUser mirrors domain.User in TOML.
type sessionUser struct {
	ID          string   `toml:"id"`
	Email       string   `toml:"email"`
	Name        string   `toml:"name"`
	Picture     string   `toml:"picture,omitempty"`
	Groups      []string `toml:"groups,omitempty"`
	Permissions []string `toml:"permissions,omitempty"`
	IsAdmin     bool     `toml:"is_admin,omitempty"`
}

// NewSessionStore creates a session store in the given config directory.
// If configDir is empty, defaults to ~/.isearch.
func NewSessionStore(configDir string) (*SessionStore, error) {
	dir, err := resolveConfigDir(configDir)
	if err != nil {
		return nil, err
	}

	return &SessionStore{
		filePath: filepath.Join(dir, sessionFileName),
	}, nil
}

// Load reads the persisted session.
// Returns domain.ErrNoSession when none is stored.
func (s *SessionStore) Load() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var f sessionFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if f.Token == "" || f.User.ID == "" {
		return nil, domain.ErrNoSession
	}

	return &domain.Session{
		Token: f.Token,
		User: domain.User{
			ID:          f.User.ID,
			Email:       f.User.Email,
			Name:        f.User.Name,
			Picture:     f.User.Picture,
			Groups:      f.User.Groups,
			Permissions: f.User.Permissions,
			IsAdmin:     f.User.IsAdmin,
		},
	}, nil
}

// Save persists the session, replacing any previous one.
func (s *SessionStore) Save(session *domain.Session) error {
	if !session.IsValid() {
		return fmt.Errorf("save session: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := sessionFile{
		Token: session.Token,
		User: sessionUser{
			ID:          session.User.ID,
			Email:       session.User.Email,
			Name:        session.User.Name,
			Picture:     session.User.Picture,
			Groups:      session.User.Groups,
			Permissions: session.User.Permissions,
			IsAdmin:     session.User.IsAdmin,
		},
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return os.WriteFile(s.filePath, data, 0600)
}

// Clear removes the persisted session. Idempotent.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Watch invokes onChange whenever the session file is written or removed
// outside this process (another terminal logging in or out). Blocks
// until ctx is cancelled.
func (s *SessionStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and os.WriteFile both
	// replace the inode, which silently detaches a file-level watch.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("Session file changed (%s)", event.Op)
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Session watcher error: %v", err)
		}
	}
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.filePath
}
