// Package config loads the server configuration from a YAML file and the
// environment.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MemoryDB keeps every session in process memory.
const MemoryDB = ":memory:"

// Delays are the pauses between a success toast and the page change that
// follows it.
type Delays struct {
	Login       time.Duration `yaml:"login"`
	Register    time.Duration `yaml:"register"`
	ProfileSave time.Duration `yaml:"profile_save"`
	Booking     time.Duration `yaml:"booking"`
}

// Policy holds the behaviours that are open for product decision.
type Policy struct {
	MaxVisitors       int    `yaml:"max_visitors"`
	EnforceVisitorCap bool   `yaml:"enforce_visitor_cap"`
	VerifyOldPassword bool   `yaml:"verify_old_password"`
	BlacklistNotice   string `yaml:"blacklist_notice"`
	WarningNotice     string `yaml:"warning_notice"`
}

// Config holds the server configuration.
type Config struct {
	Port          int           `yaml:"port"`
	DevMode       bool          `yaml:"dev_mode"`
	DB            string        `yaml:"db"`
	BaseURL       string        `yaml:"base_url"`
	CSRFKey       string        `yaml:"csrf_key,omitempty"`
	SecureCookies bool          `yaml:"secure_cookies"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	Delays        Delays        `yaml:"delays"`
	Policy        Policy        `yaml:"policy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:       8080,
		DB:         MemoryDB,
		BaseURL:    "http://localhost:8080",
		SessionTTL: 24 * time.Hour,
		Delays: Delays{
			Login:       1500 * time.Millisecond,
			Register:    2 * time.Second,
			ProfileSave: 2 * time.Second,
			Booking:     1500 * time.Millisecond,
		},
		Policy: Policy{
			MaxVisitors:       3,
			EnforceVisitorCap: true,
			BlacklistNotice:   "该用户近期有逾期行为，已被拉入黑名单，不可预约",
			WarningNotice:     "该预约人已被拉入和名单",
		},
	}
}

// DefaultPath returns the default config path: ~/.config/museum/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "museum", "config.yaml"), nil
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the config for values the server cannot run with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DB == "" {
		return fmt.Errorf("db path is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.Policy.MaxVisitors < 1 {
		return fmt.Errorf("policy.max_visitors must be at least 1")
	}
	for name, d := range map[string]time.Duration{
		"login": c.Delays.Login, "register": c.Delays.Register,
		"profile_save": c.Delays.ProfileSave, "booking": c.Delays.Booking,
	} {
		if d < 0 {
			return fmt.Errorf("delays.%s must not be negative", name)
		}
	}
	if _, err := c.CSRFKeyBytes(); err != nil {
		return err
	}
	return nil
}

// CSRFKeyBytes decodes the CSRF key. A nil key means CSRF protection is off.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil {
		return nil, fmt.Errorf("decoding csrf_key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("csrf_key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// LoadEnvFile adds the KEY=VALUE lines of path to the process environment
// so the MUSEUM_* overrides can live in a .env file. Variables already set
// are kept. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MUSEUM_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MUSEUM_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("MUSEUM_DEV_MODE"); v != "" {
		cfg.DevMode = v == "true"
	}
	if v := os.Getenv("MUSEUM_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("MUSEUM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MUSEUM_CSRF_KEY"); v != "" {
		cfg.CSRFKey = v
	}
	return nil
}
