// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies flag, environment variable and default configuration precedence

package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seefirst/seefirst-cli/internal/session"
)

// setupBackend points the global flags at handler and an isolated config dir
func setupBackend(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiURL = server.URL
	configDir = t.TempDir()
	realmFlag = ""
	jsonOutput = false
	t.Cleanup(func() {
		apiURL, configDir, realmFlag = "", "", ""
		jsonOutput = false
	})
	t.Setenv("SEEFIRST_STORE", "file")
	return server
}

func TestLoadConfig_Default(t *testing.T) {
	configDir = t.TempDir()
	defer func() { configDir = "" }()
	apiURL, realmFlag = "", ""

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:3000" {
		t.Errorf("expected default URL http://localhost:3000, got %s", cfg.APIURL)
	}
	if cfg.Realm != session.RealmUser {
		t.Errorf("expected user realm, got %s", cfg.Realm)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	configDir = t.TempDir()
	defer func() { configDir = "" }()
	apiURL = ""
	t.Setenv("SEEFIRST_API_URL", "http://backend.example.com")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	configDir = t.TempDir()
	t.Setenv("SEEFIRST_API_URL", "http://backend.example.com")
	t.Setenv("SEEFIRST_REALM", "vendor")
	apiURL = "flag-override.example.com:3000"
	realmFlag = "admin"
	defer func() { apiURL, realmFlag, configDir = "", "", "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag-override.example.com:3000" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
	if cfg.Realm != session.RealmAdmin {
		t.Errorf("expected admin realm from flag, got %s", cfg.Realm)
	}
}

func TestLoadConfig_InvalidRealm(t *testing.T) {
	configDir = t.TempDir()
	realmFlag = "superuser"
	defer func() { realmFlag, configDir = "", "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown realm")
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"login", "logout", "whoami", "home", "products", "product", "categories", "banners", "cart", "orders", "vendor", "admin", "tui"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("expected %s command to be registered", name)
		}
	}
}
