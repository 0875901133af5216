package config

import (
	"time"

	"github.com/spf13/viper"
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	fileEnabled := true
	return &Config{
		Keep: 2,
		Docker: DockerConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			FileEnabled: &fileEnabled,
			MaxSizeMB:   10,
			MaxAgeDays:  14,
			MaxBackups:  3,
		},
	}
}

// SetDefaults registers DefaultConfig on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("keep", d.Keep)
	v.SetDefault("docker.timeout", d.Docker.Timeout)
	v.SetDefault("logging.file_enabled", *d.Logging.FileEnabled)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}
