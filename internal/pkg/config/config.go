// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSpanner  = "spanner"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
	LogMode  string `yaml:"log_mode"`

	Store StoreConfig `yaml:"store"`
	Cache CacheConfig `yaml:"cache"`
	Auth  AuthConfig  `yaml:"auth"`

	CORSOrigins []string `yaml:"cors_origins"`
}

type StoreConfig struct {
	Driver          string `yaml:"driver"`
	PostgresURL     string `yaml:"postgres_url"`
	AllowInsecure   bool   `yaml:"allow_insecure"`
	SQLitePath      string `yaml:"sqlite_path"`
	SpannerDatabase string `yaml:"spanner_database"`
}

type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	Prefix    string `yaml:"prefix"`
}

type AuthConfig struct {
	Secret     string `yaml:"secret"`
	SessionTTL int    `yaml:"session_ttl_seconds"`
}

// TTL returns the session lifetime.
func (a AuthConfig) TTL() time.Duration {
	return time.Duration(a.SessionTTL) * time.Second
}

// Default returns the settings used when neither file nor env say otherwise.
func Default() Config {
	return Config{
		HTTPAddr: ":3000",
		GRPCAddr: ":50051",
		LogMode:  "dev",
		Store: StoreConfig{
			Driver:     DriverPostgres,
			SQLitePath: "invoices.db",
		},
		Cache: CacheConfig{Prefix: "invoices"},
		Auth:  AuthConfig{SessionTTL: 3600},
	}
}

// Load reads the configuration and validates all of it.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read applies CONFIG_FILE (if set) over the defaults, then env overrides.
// Callers validate the parts they use.
func Read() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("GRPC_ADDR", &cfg.GRPCAddr)
	str("LOG_MODE", &cfg.LogMode)
	str("STORE_DRIVER", &cfg.Store.Driver)
	str("POSTGRES_URL", &cfg.Store.PostgresURL)
	str("SQLITE_PATH", &cfg.Store.SQLitePath)
	str("SPANNER_DATABASE", &cfg.Store.SpannerDatabase)
	str("REDIS_ADDR", &cfg.Cache.RedisAddr)
	str("CACHE_PREFIX", &cfg.Cache.Prefix)
	str("AUTH_SECRET", &cfg.Auth.Secret)

	if v, ok := os.LookupEnv("DB_ALLOW_INSECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DB_ALLOW_INSECURE: %w", err)
		}
		cfg.Store.AllowInsecure = b
	}
	if v, ok := os.LookupEnv("SESSION_TTL_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL_SECONDS: %w", err)
		}
		cfg.Auth.SessionTTL = n
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_SECONDS must be positive")
	}
	return nil
}

// Validate checks the keys each store driver needs.
func (s StoreConfig) Validate() error {
	switch s.Driver {
	case DriverPostgres:
		if s.PostgresURL == "" {
			return errors.New("POSTGRES_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if s.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverSpanner:
		if s.SpannerDatabase == "" {
			return errors.New("SPANNER_DATABASE is required for the spanner driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", s.Driver)
	}
	return nil
}
