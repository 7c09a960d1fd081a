package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seefirst/seefirst-cli/internal/session"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.Set(KeyConfigDir, dir)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != "http://localhost:3000" {
		t.Errorf("Expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.Realm != session.RealmUser {
		t.Errorf("Expected realm user, got %s", cfg.Realm)
	}
	if cfg.PageSize != 10 {
		t.Errorf("Expected default page size 10, got %d", cfg.PageSize)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.Store != "file" || cfg.ConfigDir != dir {
		t.Errorf("Expected file store in %s, got %s in %s", dir, cfg.Store, cfg.ConfigDir)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SEEFIRST_API_URL", "shop.example.com/")
	t.Setenv("SEEFIRST_REALM", "vendor")
	t.Setenv("SEEFIRST_PAGE_SIZE", "25")
	t.Setenv("SEEFIRST_REQUEST_TIMEOUT", "5s")

	v := New()
	v.Set(KeyConfigDir, t.TempDir())
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != "http://shop.example.com" {
		t.Errorf("Expected scheme added and slash trimmed, got %s", cfg.APIURL)
	}
	if cfg.Realm != session.RealmVendor {
		t.Errorf("Expected vendor realm, got %s", cfg.Realm)
	}
	if cfg.PageSize != 25 {
		t.Errorf("Expected page size 25, got %d", cfg.PageSize)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.RequestTimeout)
	}
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://api.seefirst.test\nstore: memory\npage_size: 40\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	v := New()
	v.Set(KeyConfigDir, dir)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != "https://api.seefirst.test" {
		t.Errorf("Expected API URL from file, got %s", cfg.APIURL)
	}
	if cfg.Store != "memory" || cfg.PageSize != 40 {
		t.Errorf("Expected memory store and page size 40, got %s/%d", cfg.Store, cfg.PageSize)
	}
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("page_size: 40\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SEEFIRST_PAGE_SIZE", "12")

	v := New()
	v.Set(KeyConfigDir, dir)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.PageSize != 12 {
		t.Errorf("Expected env page size 12, got %d", cfg.PageSize)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SEEFIRST_LOG_LEVEL=debug\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SEEFIRST_LOG_LEVEL") })

	v := New()
	v.Set(KeyConfigDir, dir)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level from .env, got %s", cfg.LogLevel)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{"page size too large", KeyPageSize, 101, "page_size"},
		{"page size zero", KeyPageSize, 0, "page_size"},
		{"unknown store", KeyStore, "sqlite", "store"},
		{"unknown realm", KeyRealm, "root", "realm"},
		{"zero timeout", KeyRequestTimeout, "0s", "request_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(KeyConfigDir, t.TempDir())
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != "/tmp/xdg/seefirst" {
		t.Errorf("Expected XDG config dir, got %s", got)
	}
}

func TestEnsureScheme(t *testing.T) {
	tests := map[string]string{
		"":                      "",
		"localhost:3000":        "http://localhost:3000",
		"https://shop.test":     "https://shop.test",
		"http://127.0.0.1:3000": "http://127.0.0.1:3000",
	}
	for in, want := range tests {
		if got := ensureScheme(in); got != want {
			t.Errorf("ensureScheme(%q) = %q, want %q", in, got, want)
		}
	}
}
