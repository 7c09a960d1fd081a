// ABOUTME: Tests for the session store and navigation guard
// ABOUTME: Uses the in-memory storage backend plus a failing stub

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/seefirst/seefirst-cli/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	storage.Store
	sets   int
	setErr error
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	return c.Store.Set(ctx, key, value)
}

func TestStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	kv := &countingStore{Store: storage.NewMemory()}
	s := NewStore(kv, RealmVendor)

	err := s.Set(ctx, "tok-123", Profile{ID: 7, Name: "Rahim"})
	require.NoError(t, err)
	assert.Equal(t, 1, kv.sets, "token and profile go out in one write")

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "Rahim", got.Profile.Name)
}

func TestStore_GetWithoutSession(t *testing.T) {
	s := NewStore(storage.NewMemory(), RealmUser)

	_, err := s.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_RealmsAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	require.NoError(t, NewStore(kv, RealmAdmin).Set(ctx, "admin-token", Profile{Name: "admin@example.com"}))

	_, err := NewStore(kv, RealmVendor).Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SetRejectsIncompleteSession(t *testing.T) {
	ctx := context.Background()
	kv := &countingStore{Store: storage.NewMemory()}
	s := NewStore(kv, RealmUser)

	assert.ErrorIs(t, s.Set(ctx, "", Profile{Name: "x"}), ErrInvalidSession)
	assert.ErrorIs(t, s.Set(ctx, "tok", Profile{}), ErrInvalidSession)
	assert.Equal(t, 0, kv.sets)
}

func TestStore_SetFailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	kv := &countingStore{Store: storage.NewMemory(), setErr: errors.New("disk full")}
	s := NewStore(kv, RealmUser)

	err := s.Set(ctx, "tok", Profile{Name: "x"})
	require.Error(t, err)

	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_CorruptRecordIsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, "session.user", []byte(`{"token":"only-token"}`)))

	_, err := NewStore(kv, RealmUser).Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), RealmAdmin)
	require.NoError(t, s.Set(ctx, "tok", Profile{Name: "a"}))

	require.NoError(t, s.Clear(ctx))
	_, err := s.Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// clearing twice is fine
	assert.NoError(t, s.Clear(ctx))
}

func TestParseRealm(t *testing.T) {
	tests := []struct {
		in      string
		want    Realm
		wantErr bool
	}{
		{"admin", RealmAdmin, false},
		{" Vendor ", RealmVendor, false},
		{"", RealmUser, false},
		{"root", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRealm(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuard(t *testing.T) {
	ctx := context.Background()
	empty := NewStore(storage.NewMemory(), RealmUser)
	signedIn := NewStore(storage.NewMemory(), RealmUser)
	require.NoError(t, signedIn.Set(ctx, "tok", Profile{Name: "Ayesha"}))

	tests := []struct {
		name   string
		store  *Store
		access Access
		want   Navigation
	}{
		{"protected without session", empty, AccessProtected, ToLogin},
		{"protected with session", signedIn, AccessProtected, Stay},
		{"login view with session", signedIn, AccessAnonymous, ToHome},
		{"login view without session", empty, AccessAnonymous, Stay},
		{"public without session", empty, AccessPublic, Stay},
		{"public with session", signedIn, AccessPublic, Stay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(ctx, tt.store, tt.access))
		})
	}
}
