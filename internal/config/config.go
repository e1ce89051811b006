// Package config loads environment configuration for the Lumina backend.
package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// Storage backend selectors for Config.Storage.
const (
	StorageFS     = "fs"
	StorageBolt   = "bolt"
	StorageMemory = "memory"
)

// Config is the environment-derived configuration. Defaults are carried in
// the struct tags so a bare environment yields a working development setup.
type Config struct {
	// DataRoot is the directory holding all user namespaces.
	// ENV: LUMINA_DATA_ROOT
	DataRoot string `env:"LUMINA_DATA_ROOT,default=./data/lumina"`
	// MaxSessions is the default per-(user, app) session cap.
	// ENV: LUMINA_MAX_SESSIONS
	MaxSessions int `env:"LUMINA_MAX_SESSIONS,default=50"`
	// DevEmail enables the development fallback identity when set.
	// ENV: LUMINA_DEV_EMAIL
	DevEmail string `env:"LUMINA_DEV_EMAIL"`
	// APIKey enables shared-secret authentication when set.
	// ENV: LUMINA_API_KEY
	APIKey string `env:"LUMINA_API_KEY"`
	// UserHeader overrides the explicit identity header name.
	// ENV: LUMINA_USER_HEADER
	UserHeader string `env:"LUMINA_USER_HEADER"`
	// AllowedOrigins is the CORS origin allowlist, comma separated.
	// ENV: LUMINA_ALLOWED_ORIGINS
	AllowedOrigins string `env:"LUMINA_ALLOWED_ORIGINS"`
	// Storage selects the blob-store backend: fs, bolt or memory.
	// ENV: LUMINA_STORAGE
	Storage string `env:"LUMINA_STORAGE,default=fs"`
}

// Load populates Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	switch cfg.Storage {
	case StorageFS, StorageBolt, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if cfg.MaxSessions <= 0 {
		return Config{}, fmt.Errorf("LUMINA_MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}
	return cfg, nil
}

// Origins returns the parsed CORS allowlist.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
