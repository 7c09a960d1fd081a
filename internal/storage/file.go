// ABOUTME: File-backed store keeping every key in one JSON document
// ABOUTME: Caches the document in memory and rewrites it atomically on each mutation

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the document written inside the storage directory
const FileName = "storage.json"

// File is a Store persisted to <dir>/storage.json
type File struct {
	dir    string
	mu     sync.Mutex
	data   map[string]json.RawMessage
	loaded bool
}

// NewFile creates a file store rooted at dir. Nothing is read until first use.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

// Path returns the location of the backing document
func (f *File) Path() string {
	return filepath.Join(f.dir, FileName)
}

// load reads the document once; callers hold f.mu
func (f *File) load() error {
	if f.loaded {
		return nil
	}

	raw, err := os.ReadFile(f.Path())
	if os.IsNotExist(err) {
		f.data = map[string]json.RawMessage{}
		f.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Path(), err)
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		// Corrupt document, start fresh
		slog.Warn("Discarding unreadable storage file", "path", f.Path(), "error", err)
		data = map[string]json.RawMessage{}
	}

	f.data = data
	f.loaded = true
	return nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return nil, err
	}
	val, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}

	next := f.snapshot()
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	next[key] = stored

	if err := f.flush(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *File) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}

	next := f.snapshot()
	changed := false
	for _, k := range keys {
		if _, ok := next[k]; ok {
			delete(next, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := f.flush(next); err != nil {
		return err
	}
	f.data = next
	return nil
}

func (f *File) Close() error {
	return nil
}

func (f *File) snapshot() map[string]json.RawMessage {
	next := make(map[string]json.RawMessage, len(f.data)+1)
	for k, v := range f.data {
		next[k] = v
	}
	return next
}

// flush writes data to a temp file and renames it over the document
func (f *File) flush(data map[string]json.RawMessage) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Rename(tmpName, f.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}
