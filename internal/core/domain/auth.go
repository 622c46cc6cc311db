package domain

// User is an authenticated account as reported by the backend.
type User struct {
	// ID is the backend's unique identifier for the account.
	ID string `json:"id"`

	// Email is the account email address.
	Email string `json:"email"`

	// Name is the display name.
	Name string `json:"name"`

	// Picture is an optional avatar URL.
	Picture string `json:"picture,omitempty"`

	// Groups are access-control group memberships.
	Groups []string `json:"groups"`

	// Permissions are fine-grained capability grants.
	Permissions []string `json:"permissions"`

	// IsAdmin marks administrative accounts.
	IsAdmin bool `json:"is_admin,omitempty"`
}

// HasPermission returns true if the user holds the given permission.
func (u *User) HasPermission(permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// HasGroup returns true if the user belongs to the given group.
func (u *User) HasGroup(group string) bool {
	if u == nil {
		return false
	}
	for _, g := range u.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// Session is the locally persisted authentication state: an opaque token
// plus the user record it was issued for. Both must be present for the
// local-cache fast path at startup.
type Session struct {
	// Token is the opaque access token.
	Token string `json:"token"`

	// User is the account the token belongs to.
	User User `json:"user"`
}

// IsValid returns true if the session carries both a token and a user.
func (s *Session) IsValid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}

// AuthSnapshot is an immutable view of the authentication state.
// Readers receive copies; only the auth service writes.
type AuthSnapshot struct {
	// User is the current account, nil when anonymous.
	User *User

	// IsAuthenticated is derived from user presence.
	IsAuthenticated bool

	// IsLoading is true while the initial session check is in flight.
	IsLoading bool
}
