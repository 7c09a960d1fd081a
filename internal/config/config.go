// ABOUTME: Configuration loader for the seefirst CLI
// ABOUTME: Merges flags, SEEFIRST_ env vars, .env files and config.yaml over defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/seefirst/seefirst-cli/internal/session"
	"github.com/seefirst/seefirst-cli/internal/storage"
)

// EnvPrefix namespaces environment variables, e.g. SEEFIRST_API_URL
const EnvPrefix = "SEEFIRST"

// Keys understood by Load
const (
	KeyAPIURL         = "api_url"
	KeyRealm          = "realm"
	KeyConfigDir      = "config_dir"
	KeyStore          = "store"
	KeyRedisAddr      = "redis_addr"
	KeyRedisPassword  = "redis_password"
	KeyRedisDB        = "redis_db"
	KeyPageSize       = "page_size"
	KeyRequestTimeout = "request_timeout"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

type Config struct {
	// Backend
	APIURL         string
	RequestTimeout time.Duration

	// Session
	Realm     session.Realm
	ConfigDir string

	// Storage
	Store         string // file, redis or memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Listing
	PageSize int // products per page, 1..100

	// Logging
	LogLevel  string
	LogFormat string
}

// New returns a viper instance with defaults and env binding in place.
// Callers may Set or BindPFlag overrides before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIURL, "http://localhost:3000")
	v.SetDefault(KeyRealm, string(session.RealmUser))
	v.SetDefault(KeyStore, storage.BackendFile)
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyPageSize, 10)
	v.SetDefault(KeyRequestTimeout, 30*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration. Precedence is flag, env, .env file,
// config.yaml, then default.
func Load(v *viper.Viper) (*Config, error) {
	dir := v.GetString(KeyConfigDir)
	if dir == "" {
		dir = DefaultConfigDir()
	}

	loadDotEnv(dir)
	// .env may have supplied the config dir itself
	if d := v.GetString(KeyConfigDir); d != "" {
		dir = d
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	realm, err := session.ParseRealm(v.GetString(KeyRealm))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:         ensureScheme(strings.TrimRight(v.GetString(KeyAPIURL), "/")),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		Realm:          realm,
		ConfigDir:      dir,
		Store:          strings.ToLower(v.GetString(KeyStore)),
		RedisAddr:      v.GetString(KeyRedisAddr),
		RedisPassword:  v.GetString(KeyRedisPassword),
		RedisDB:        v.GetInt(KeyRedisDB),
		PageSize:       v.GetInt(KeyPageSize),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("api_url is required"))
	}
	if c.ConfigDir == "" && c.Store == storage.BackendFile {
		errs = append(errs, errors.New("config_dir could not be determined; set SEEFIRST_CONFIG_DIR"))
	}
	switch c.Store {
	case storage.BackendFile, storage.BackendRedis, storage.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("store must be file, redis or memory, got %q", c.Store))
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		errs = append(errs, fmt.Errorf("page_size must be between 1 and 100, got %d", c.PageSize))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout))
	}

	return errors.Join(errs...)
}

// StorageOptions maps the config onto storage.Open
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.Store,
		Dir:           c.ConfigDir,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}
}

// DefaultConfigDir returns the default config directory under XDG_CONFIG_HOME
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seefirst")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "seefirst")
}

// loadDotEnv loads .env from the working directory and the config dir.
// Existing environment variables win, and missing files are ignored.
func loadDotEnv(dir string) {
	candidates := []string{".env"}
	if dir != "" {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
