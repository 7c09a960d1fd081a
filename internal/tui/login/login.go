// ABOUTME: Sign-in screen as a bubbletea model
// ABOUTME: Collects email and password with a huh form and reports the credentials

package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/tui/icons"
	"github.com/seefirst/seefirst-cli/internal/tui/styles"
)

// SubmittedMsg carries the credentials once the form is complete
type SubmittedMsg struct {
	Credentials client.Credentials
}

// CancelledMsg is sent when the user backs out of signing in
type CancelledMsg struct{}

// Login is the sign-in form
type Login struct {
	realm    session.Realm
	form     *huh.Form
	email    string
	password string
	err      string
	notice   string
	busy     bool
}

// New creates a sign-in form for realm
func New(realm session.Realm) *Login {
	l := &Login{realm: realm}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(required("password")),
		).Title(realmTitle(l.realm)).
			Description("Sign in to continue"),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

func realmTitle(r session.Realm) string {
	switch r {
	case session.RealmAdmin:
		return "Admin Panel"
	case session.RealmVendor:
		return "Vendor Panel"
	}
	return "SeeFirst"
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// SetError shows a failed attempt and resets the form, keeping the email
func (l *Login) SetError(msg string) tea.Cmd {
	l.err = msg
	l.busy = false
	l.password = ""
	l.form = l.createForm()
	return l.form.Init()
}

// SetNotice shows an informational line above the form
func (l *Login) SetNotice(msg string) {
	l.notice = msg
}

// Busy reports whether a submission is in flight
func (l *Login) Busy() bool {
	return l.busy
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if l.busy {
		return l, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.busy = true
		l.err = ""
		creds := client.Credentials{Email: strings.TrimSpace(l.email), Password: l.password}
		return l, func() tea.Msg { return SubmittedMsg{Credentials: creds} }
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Login.String() + " Sign in"))
	sb.WriteString("\n")
	if l.notice != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Warning).Render(l.notice))
		sb.WriteString("\n\n")
	}
	if l.err != "" {
		sb.WriteString(styles.StatusCritical.Render(l.err))
		sb.WriteString("\n\n")
	}
	if l.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		return sb.String()
	}
	sb.WriteString(l.form.View())
	return sb.String()
}
