// ABOUTME: Shared command plumbing: config, logging, storage, session and API client
// ABOUTME: Also maps errors onto exit codes the way every command reports them

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/seefirst/seefirst-cli/internal/cart"
	"github.com/seefirst/seefirst-cli/internal/client"
	"github.com/seefirst/seefirst-cli/internal/config"
	"github.com/seefirst/seefirst-cli/internal/logger"
	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storage"
)

// env is everything a command needs to talk to the backend
type env struct {
	cfg      *config.Config
	store    storage.Store
	sessions *session.Store
	client   *client.Client
}

// newEnv loads configuration and opens storage. A non-empty realm replaces
// the configured one, so vendor and admin commands use their own session.
func newEnv(ctx context.Context, w io.Writer, realm session.Realm) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if realm != "" {
		cfg.Realm = realm
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(store, cfg.Realm)
	// parallel dashboard calls can all be rejected; tell the user once
	var expired sync.Once
	c := client.New(cfg.APIURL,
		client.WithSessions(sessions),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithUnauthorizedHandler(func() {
			expired.Do(func() {
				fmt.Fprintf(w, "Session expired. Run `seefirst login --realm %s` to sign in again.\n", cfg.Realm)
			})
		}),
	)

	return &env{cfg: cfg, store: store, sessions: sessions, client: c}, nil
}

// Close releases the storage backend
func (e *env) Close() error {
	return e.store.Close()
}

// openCart loads the persisted cart
func (e *env) openCart(ctx context.Context) (*cart.Local, error) {
	return cart.Open(ctx, e.store)
}

// requireSession returns the stored session or reports that there is none
func (e *env) requireSession(ctx context.Context, w io.Writer) (session.Session, bool) {
	s, err := e.sessions.Get(ctx)
	if err != nil {
		fmt.Fprintf(w, "Not signed in. Run `seefirst login --realm %s` first.\n", e.sessions.Realm())
		return session.Session{}, false
	}
	return s, true
}

// reportError prints err and returns the exit code: 1 when the backend
// rejected the action, 2 for everything else. Connectivity and parse
// failures show the generic message; their detail goes to the log.
func reportError(w io.Writer, err error) int {
	if client.IsUnauthorized(err) {
		// the unauthorized handler has already told the user
		return 1
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(w, "Error: %s\n", client.UserMessage(err))
		return 1
	}
	if errors.Is(err, client.ErrNetwork) || errors.Is(err, client.ErrInvalidResponse) {
		slog.Error("backend call failed", "error", err)
		fmt.Fprintf(w, "Error: %s\n", client.UserMessage(err))
		return 2
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// withEnv opens an env for fn and closes it afterwards
func withEnv(ctx context.Context, w io.Writer, realm session.Realm, fn func(e *env) int) int {
	e, err := newEnv(ctx, w, realm)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer e.Close()
	return fn(e)
}

// exitWith runs fn with a context cancelled by SIGINT/SIGTERM and exits
// with its code
func exitWith(fn func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := fn(ctx, os.Stdout)
	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// formatJSON renders v as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
