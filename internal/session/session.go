// ABOUTME: Per-realm authentication session persisted through the storage layer
// ABOUTME: Token and profile are written together so readers never see half a session

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seefirst/seefirst-cli/internal/storage"
)

var (
	// ErrNoSession means no usable session is stored for the realm
	ErrNoSession = errors.New("not signed in")
	// ErrInvalidSession rejects a Set without a token or identifiable profile
	ErrInvalidSession = errors.New("session requires a token and a profile")
)

// Realm is the audience a session belongs to
type Realm string

const (
	RealmAdmin  Realm = "admin"
	RealmVendor Realm = "vendor"
	RealmUser   Realm = "user"
)

// ParseRealm validates a realm name
func ParseRealm(s string) (Realm, error) {
	switch r := Realm(strings.ToLower(strings.TrimSpace(s))); r {
	case RealmAdmin, RealmVendor, RealmUser:
		return r, nil
	case "":
		return RealmUser, nil
	}
	return "", fmt.Errorf("unknown realm %q (want admin, vendor or user)", s)
}

// LoginPath is the backend endpoint that issues tokens for the realm
func (r Realm) LoginPath() string {
	switch r {
	case RealmAdmin:
		return "/api/admin/login"
	case RealmVendor:
		return "/api/vendor/login"
	}
	return "/api/users/login"
}

func (r Realm) storageKey() string {
	return "session." + string(r)
}

// Profile identifies the signed-in account
type Profile struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Session is the persisted record: both parts or nothing
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"user"`
}

func (s Session) valid() bool {
	return s.Token != "" && (s.Profile.ID != 0 || s.Profile.Name != "")
}

// Store reads and writes one realm's session
type Store struct {
	kv    storage.Store
	realm Realm
}

// NewStore binds a session store to a realm
func NewStore(kv storage.Store, realm Realm) *Store {
	return &Store{kv: kv, realm: realm}
}

// Realm returns the realm this store serves
func (s *Store) Realm() Realm {
	return s.realm
}

// Get returns the stored session or ErrNoSession
func (s *Store) Get(ctx context.Context) (Session, error) {
	raw, err := s.kv.Get(ctx, s.realm.storageKey())
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil || !sess.valid() {
		slog.Warn("Ignoring unusable stored session", "realm", s.realm)
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Set stores token and profile in a single write
func (s *Store) Set(ctx context.Context, token string, profile Profile) error {
	sess := Session{Token: strings.TrimSpace(token), Profile: profile}
	if !sess.valid() {
		return ErrInvalidSession
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, s.realm.storageKey(), raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the realm's session
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.realm.storageKey()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
