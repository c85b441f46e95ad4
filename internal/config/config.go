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
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	RemoteBaseURL  string        `mapstructure:"REMOTE_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`

	// DataDir holds the on-device key-value files (session, bookmarks).
	DataDir string `mapstructure:"DATA_DIR"`

	MockStorePort string `mapstructure:"MOCKSTORE_PORT"`
	MockStoreDB   string `mapstructure:"MOCKSTORE_DB"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "REMOTE_BASE_URL", "REQUEST_TIMEOUT", "CACHE_TTL",
	"DATA_DIR", "MOCKSTORE_PORT", "MOCKSTORE_DB",
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".parkapp"
	}
	return filepath.Join(home, ".parkapp")
}

// Load reads .env (if present), then an optional parkapp.yaml in the working
// directory or ./config, then the process environment. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("parkapp")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("REMOTE_BASE_URL", "http://localhost:3001")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("DATA_DIR", defaultDataDir())
	v.SetDefault("MOCKSTORE_PORT", "3001")
	v.SetDefault("MOCKSTORE_DB", "db.json")

	v.AutomaticEnv()
	// Unmarshal only sees env values for bound keys.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read parkapp.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.RemoteBaseURL = strings.TrimRight(cfg.RemoteBaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.RemoteBaseURL == "" {
		return errors.New("config: REMOTE_BASE_URL is required")
	}
	if !strings.HasPrefix(c.RemoteBaseURL, "http://") && !strings.HasPrefix(c.RemoteBaseURL, "https://") {
		return fmt.Errorf("config: REMOTE_BASE_URL must be an http(s) URL, got %q", c.RemoteBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
