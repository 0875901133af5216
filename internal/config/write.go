package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when the file is already there
// and force was not requested.
var ErrConfigExists = errors.New("config file already exists")

const configHeader = "# imageclean configuration. Environment variables (IMAGECLEAN_KEEP, ...)\n" +
	"# and the --keep flag override these values.\n"

// MarshalYAML renders cfg the way WriteDefault stores it.
func MarshalYAML(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// WriteDefault writes DefaultConfig to ConfigFileName inside dir and returns
// the file path. An existing file is kept unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := ConfigFilePathIn(dir)

	body, err := MarshalYAML(DefaultConfig())
	if err != nil {
		return "", err
	}
	content := append([]byte(configHeader), body...)

	err = withFileLock(path, func() error {
		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%w: %s", ErrConfigExists, path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config %s: %w", path, err)
			}
		}
		return atomicWriteFile(path, content, 0o644)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// atomicWriteFile writes through a temp file in the same directory and
// renames it over path, so readers never see a partial file.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".imageclean-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}

// withFileLock holds an advisory lock on path+".lock" while fn runs, so two
// concurrent `config init` invocations cannot interleave.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory for %s: %w", path, err)
	}

	fl := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring file lock for %s", path)
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}
