// ABOUTME: login, logout and whoami commands
// ABOUTME: Sessions are kept per realm in the configured storage backend

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the selected realm",
	Long: `Sign in with email and password. The realm (--realm or SEEFIRST_REALM) picks
the storefront, vendor panel or admin panel account. Missing credentials are
prompted for when running in a terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context, w io.Writer) int {
			return runLogin(ctx, w, loginEmail, loginPassword)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session for the selected realm",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runLogout)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(runWhoami)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

// runLogin signs in and stores the session
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	return withEnv(ctx, w, "", func(e *env) int {
		if email == "" || password == "" {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				fmt.Fprintln(w, "Error: --email and --password are required when not running in a terminal")
				return 2
			}
			if err := promptCredentials(e.sessions.Realm(), &email, &password); err != nil {
				return reportError(w, err)
			}
		}

		creds := client.Credentials{Email: strings.TrimSpace(email), Password: password}
		res, err := e.client.Login(ctx, e.sessions.Realm(), creds)
		if err != nil {
			if client.IsUnauthorized(err) {
				fmt.Fprintln(w, "Error: invalid email or password")
				return 1
			}
			return reportError(w, err)
		}

		profile := res.Profile(creds.Email)
		if err := e.sessions.Set(ctx, res.Token, profile); err != nil {
			return reportError(w, err)
		}

		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(map[string]any{"realm": e.sessions.Realm(), "user": profile}))
		} else {
			fmt.Fprintf(w, "Signed in as %s (%s)\n", profile.Name, e.sessions.Realm())
		}
		return 0
	})
}

func promptCredentials(realm session.Realm, email, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		).Title(fmt.Sprintf("Sign in (%s)", realm)),
	).WithTheme(styles.FormTheme())
	return form.Run()
}

// runLogout clears the stored session
func runLogout(ctx context.Context, w io.Writer) int {
	return withEnv(ctx, w, "", func(e *env) int {
		if err := e.sessions.Clear(ctx); err != nil {
			return reportError(w, err)
		}
		fmt.Fprintf(w, "Signed out of %s\n", e.sessions.Realm())
		return 0
	})
}

// runWhoami prints the stored profile
func runWhoami(ctx context.Context, w io.Writer) int {
	return withEnv(ctx, w, "", func(e *env) int {
		s, ok := e.requireSession(ctx, w)
		if !ok {
			return 2
		}
		if IsJSONOutput() {
			fmt.Fprintln(w, formatJSON(map[string]any{"realm": e.sessions.Realm(), "user": s.Profile}))
			return 0
		}
		fmt.Fprintln(w, formatProfileHuman(e.sessions.Realm(), s.Profile))
		return 0
	})
}

func formatProfileHuman(realm session.Realm, p session.Profile) string {
	out := fmt.Sprintf("Realm:  %s\nName:   %s", realm, p.Name)
	if p.Email != "" {
		out += "\nEmail:  " + p.Email
	}
	if p.ID != 0 {
		out += fmt.Sprintf("\nID:     %d", p.ID)
	}
	return out
}
