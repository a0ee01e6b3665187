// Package config loads the CLI configuration and opens the configured
// store backend.
package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unalkalkan/dropfs/remote"
	"github.com/unalkalkan/dropfs/remote/dropbox"
	"github.com/unalkalkan/dropfs/remote/local"
	"github.com/unalkalkan/dropfs/remote/s3"
)

// Config selects and parameterizes a store backend.
type Config struct {
	Backend string        `yaml:"backend"`
	Dropbox DropboxConfig `yaml:"dropbox"`
	S3      S3Config      `yaml:"s3"`
	Local   LocalConfig   `yaml:"local"`
}

// DropboxConfig holds Dropbox backend settings.
type DropboxConfig struct {
	Token string `yaml:"token"`
}

// S3Config holds S3 backend settings.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// LocalConfig holds local-directory backend settings.
type LocalConfig struct {
	BasePath string `yaml:"base_path"`
}

// Load reads the configuration file, applies DROPFS_-prefixed environment
// overrides and validates the result. An empty path skips the file and
// builds the configuration from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DROPFS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("DROPFS_DROPBOX_TOKEN"); v != "" {
		cfg.Dropbox.Token = v
	}
	if v := os.Getenv("DROPFS_S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("DROPFS_S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv("DROPFS_S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("DROPFS_S3_ACCESS_KEY_ID"); v != "" {
		cfg.S3.AccessKeyID = v
	}
	if v := os.Getenv("DROPFS_S3_SECRET_ACCESS_KEY"); v != "" {
		cfg.S3.SecretAccessKey = v
	}
	if v := os.Getenv("DROPFS_LOCAL_BASE_PATH"); v != "" {
		cfg.Local.BasePath = v
	}
}

// Validate checks if the configuration is valid.
func Validate(cfg *Config) error {
	if cfg.Backend == "" {
		cfg.Backend = "dropbox" // default
	}

	switch cfg.Backend {
	case "dropbox":
		if cfg.Dropbox.Token == "" {
			return fmt.Errorf("dropbox token is required")
		}
	case "s3":
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
		if cfg.S3.Region == "" {
			return fmt.Errorf("s3 region is required")
		}
	case "local":
		if cfg.Local.BasePath == "" {
			return fmt.Errorf("local base_path is required")
		}
	default:
		return fmt.Errorf("invalid backend: %s (must be 'dropbox', 's3' or 'local')", cfg.Backend)
	}
	return nil
}

// OpenStore creates the store the configuration selects.
func OpenStore(ctx context.Context, cfg *Config) (remote.Store, error) {
	switch cfg.Backend {
	case "dropbox":
		return dropbox.New(cfg.Dropbox.Token), nil
	case "s3":
		return s3.New(ctx, s3.Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	case "local":
		return local.New(cfg.Local.BasePath)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
