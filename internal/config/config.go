// Package config loads console configuration from an optional config file and
// ADMCTL_-prefixed environment variables, with working defaults for a fresh
// install.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend identifiers for the durable store.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config captures everything the console needs at startup.
type Config struct {
	DataDir    string
	Backend    string // file | sqlite
	SQLitePath string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	SigningKey string
	SessionTTL time.Duration
	LogLevel   string
}

// DefaultDataDir resolves the per-user data directory, honoring XDG_CONFIG_HOME.
func DefaultDataDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "admctl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "admctl")
}

// Load reads config.yaml from the data directory when present and applies
// environment overrides (e.g. ADMCTL_ADMIN_EMAIL). A missing config file is
// not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ADMCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.dir", DefaultDataDir())
	dataDir := v.GetString("data.dir")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.sqlite_path", filepath.Join(dataDir, "admctl.db"))
	v.SetDefault("admin.name", "Admin User")
	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "admin123")
	// Dev default; override in any deployment that leaves the machine.
	v.SetDefault("session.key", "dev-signing-key-change-me")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("log.level", "warn")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataDir:       dataDir,
		Backend:       v.GetString("storage.backend"),
		SQLitePath:    v.GetString("storage.sqlite_path"),
		AdminName:     v.GetString("admin.name"),
		AdminEmail:    v.GetString("admin.email"),
		AdminPassword: v.GetString("admin.password"),
		SigningKey:    v.GetString("session.key"),
		SessionTTL:    v.GetDuration("session.ttl"),
		LogLevel:      v.GetString("log.level"),
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return cfg, nil
}
