// Package config loads imageclean settings from defaults, an optional YAML
// file and IMAGECLEAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the effective configuration for one run.
type Config struct {
	// Keep is how many of the newest images each repository retains.
	Keep int `mapstructure:"keep" yaml:"keep"`

	Docker  DockerConfig  `mapstructure:"docker" yaml:"docker"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// DockerConfig tunes how the runtime is reached. The endpoint itself comes
// from DOCKER_HOST and friends.
type DockerConfig struct {
	// Timeout bounds connecting and listing images. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggingConfig controls the rotated log file.
type LoggingConfig struct {
	FileEnabled *bool `mapstructure:"file_enabled" yaml:"file_enabled"`
	MaxSizeMB   int   `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays  int   `mapstructure:"max_age_days" yaml:"max_age_days"`
	MaxBackups  int   `mapstructure:"max_backups" yaml:"max_backups"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate rejects values that cannot drive a run.
func (c *Config) Validate() error {
	if c.Keep < 0 {
		return fmt.Errorf("%w: keep must be 0 or greater, got %d", ErrInvalidConfig, c.Keep)
	}
	if c.Docker.Timeout < 0 {
		return fmt.Errorf("%w: docker.timeout must not be negative, got %s", ErrInvalidConfig, c.Docker.Timeout)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxAgeDays < 0 || c.Logging.MaxBackups < 0 {
		return fmt.Errorf("%w: logging limits must not be negative", ErrInvalidConfig)
	}
	return nil
}
