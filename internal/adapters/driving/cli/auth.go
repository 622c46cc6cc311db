package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/intellisearch/isearch-cli/internal/adapters/driving/oauth"
)

// loginTimeout bounds the wait for the browser round trip.
const loginTimeout = 5 * time.Minute

var loginNoBrowser bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the sign-in session",
	Long: `Sign in to search community forums and support tickets, inspect the
current session, or sign out.

Examples:
  isearch auth login
  isearch auth whoami
  isearch auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in via the browser",
	Long: `Opens the browser for sign-in and waits for the redirect.

A local listener receives the authorization code, exchanges it for a
session and stores it under ~/.isearch. Use --no-browser to print the
login URL instead of opening it.`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long: `Clears the local session immediately, then best-effort invalidates it
server-side. Always succeeds locally.`,
	RunE: runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runAuthWhoami,
}

func init() {
	authLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the login URL instead of opening the browser")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	ctx := context.Background()
	if snap := authService.Init(ctx); snap.IsAuthenticated {
		cmd.Printf("Already signed in as %s. Run 'isearch auth logout' first to switch accounts.\n", snap.User.Email)
		return nil
	}

	state := oauth.GenerateState()
	server := oauth.NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting callback listener: %w", err)
	}
	defer func() { _ = server.Stop() }()

	loginURL := authService.LoginURL(state, server.RedirectURI())
	if loginNoBrowser {
		cmd.Printf("Open this URL to sign in:\n\n  %s\n\n", loginURL)
	} else {
		cmd.Println("Opening the browser to sign in...")
		if err := oauth.OpenBrowser(loginURL); err != nil {
			cmd.Printf("Could not open the browser. Open this URL manually:\n\n  %s\n\n", loginURL)
		}
	}
	cmd.Println("Waiting for sign-in to complete...")

	code, err := server.WaitForCode(loginTimeout)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	user, err := authService.HandleCallback(ctx, code)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	cmd.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	authService.Init(context.Background())
	authService.Logout(context.Background())
	cmd.Println("Signed out.")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	snap := authService.Init(context.Background())
	if !snap.IsAuthenticated {
		cmd.Println("Not signed in. Only public documentation is searchable.")
		return nil
	}

	cmd.Printf("Signed in as %s (%s)\n", snap.User.Name, snap.User.Email)
	if len(snap.User.Groups) > 0 {
		cmd.Printf("Groups: %s\n", strings.Join(snap.User.Groups, ", "))
	}
	if snap.User.IsAdmin {
		cmd.Println("Role: admin")
	}
	return nil
}
