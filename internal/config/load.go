package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads the config file from ConfigDir, if present, and applies
// environment overrides on top of defaults.
func Load() (*Config, error) {
	return LoadFrom(ConfigDir())
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads one config file. A missing file yields defaults plus
// environment overrides.
func LoadFile(path string) (*Config, error) {
	v := newViperConfig()

	if _, err := os.Stat(path); err == nil {
		if err := validateConfigFileExact(path, &Config{}); err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config %s: %w", path, err)
	}

	return decode(v)
}

// ReadFromString parses YAML content the same way LoadFrom parses a file.
// Environment overrides still apply.
func ReadFromString(content string) (*Config, error) {
	if err := validateYAMLStrict(content, &Config{}); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	v := newViperConfig()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return decode(v)
}

func newViperConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvKeysFromSchema(v)
	SetDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindEnvKeysFromSchema binds an IMAGECLEAN_* variable for every leaf
// mapstructure path of Config, so new fields pick up env support for free.
func bindEnvKeysFromSchema(v *viper.Viper) {
	for _, path := range collectLeafPaths(reflect.TypeOf(Config{}), "") {
		_ = v.BindEnv(path)
	}
}

func collectLeafPaths(t reflect.Type, prefix string) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var paths []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		fullPath := tag
		if prefix != "" {
			fullPath = prefix + "." + tag
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(time.Duration(0)) {
			paths = append(paths, collectLeafPaths(ft, fullPath)...)
		} else {
			paths = append(paths, fullPath)
		}
	}
	return paths
}

// validateYAMLStrict rejects unknown keys and type mismatches before viper
// sees the content, since viper silently ignores both.
func validateYAMLStrict(content string, schema any) error {
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(schema); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func validateConfigFileExact(path string, schema any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := validateYAMLStrict(string(content), schema); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}
