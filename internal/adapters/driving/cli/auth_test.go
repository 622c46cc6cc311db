package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellisearch/isearch-cli/internal/core/domain"
)

func TestAuthCmd_Use(t *testing.T) {
	assert.Equal(t, "auth", authCmd.Use)
}

func TestAuthWhoami_Anonymous(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "auth", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestAuthWhoami_SignedIn(t *testing.T) {
	_, auth, _, _, cleanup := setupTestServices()
	defer cleanup()
	auth.snapshot = domain.AuthSnapshot{
		User: &domain.User{
			ID:      "u1",
			Name:    "Dev One",
			Email:   "dev@example.com",
			Groups:  []string{"engineering"},
			IsAdmin: true,
		},
		IsAuthenticated: true,
	}

	out, err := execute(t, "auth", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Dev One")
	assert.Contains(t, out, "dev@example.com")
	assert.Contains(t, out, "engineering")
	assert.Contains(t, out, "admin")
}

func TestAuthLogout(t *testing.T) {
	_, auth, _, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "auth", "logout")

	require.NoError(t, err)
	assert.Equal(t, 1, auth.logoutCalls)
	assert.Contains(t, out, "Signed out.")
}
