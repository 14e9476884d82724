package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "SIMPLEGUIDE_"

const (
	StorageDisk = "disk"
	StorageS3   = "s3"
)

type Config struct {
	Env       string `koanf:"env"`
	Port      int    `koanf:"port"`
	BodyLimit string `koanf:"body_limit"`

	DBDriver string `koanf:"db_driver"`
	DBDSN    string `koanf:"db_dsn"`
	DBDebug  bool   `koanf:"db_debug"`

	StorageDriver string `koanf:"storage_driver"`
	StorageDir    string `koanf:"storage_dir"`
	S3Bucket      string `koanf:"s3_bucket"`
	S3Region      string `koanf:"s3_region"`
	MediaBaseURL  string `koanf:"media_base_url"`

	CognitoRegion   string `koanf:"cognito_region"`
	CognitoPoolID   string `koanf:"cognito_pool_id"`
	CognitoClientID string `koanf:"cognito_client_id"`

	RedisAddr      string        `koanf:"redis_addr"`
	RedisPassword  string        `koanf:"redis_password"`
	LookupBaseURL  string        `koanf:"lookup_base_url"`
	LookupCacheTTL time.Duration `koanf:"lookup_cache_ttl"`

	NodeID int64 `koanf:"node_id"`
}

func defaults() map[string]any {
	return map[string]any{
		"env":              "development",
		"port":             7070,
		"body_limit":       "5M",
		"db_driver":        "sqlite",
		"db_dsn":           "database.db",
		"db_debug":         false,
		"storage_driver":   StorageDisk,
		"storage_dir":      "media",
		"s3_region":        "us-east-2",
		"media_base_url":   "/media/",
		"cognito_region":   "us-east-2",
		"lookup_base_url":  "https://minhareceita.org",
		"lookup_cache_ttl": "24h",
		"node_id":          1,
	}
}

// Load reads defaults first, then SIMPLEGUIDE_* environment variables.
// SIMPLEGUIDE_DB_DSN becomes the "db_dsn" key.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}

	switch c.StorageDriver {
	case StorageDisk:
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required when storage_driver is %q", StorageS3)
		}
	default:
		return fmt.Errorf("unsupported storage_driver %q", c.StorageDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("node_id must be in range [0 - 1023], got %d", c.NodeID)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuthEnabled reports whether staff tokens can be verified.
func (c *Config) AuthEnabled() bool {
	return c.CognitoPoolID != "" && c.CognitoClientID != ""
}
