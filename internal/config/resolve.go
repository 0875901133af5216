package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigDir returns the imageclean config directory.
func ConfigDir() string {
	if a := os.Getenv(configDirEnv); a != "" {
		return a
	}
	if b := os.Getenv(xdgConfigHome); b != "" {
		return filepath.Join(b, appName)
	}
	if runtime.GOOS == "windows" {
		if c := os.Getenv(appData); c != "" {
			return filepath.Join(c, appName)
		}
	}
	d, _ := os.UserHomeDir()
	return filepath.Join(d, ".config", appName)
}

func StateDir() string {
	if a := os.Getenv(stateDirEnv); a != "" {
		return a
	}
	if b := os.Getenv(xdgStateHome); b != "" {
		return filepath.Join(b, appName)
	}
	if runtime.GOOS == "windows" {
		if c := os.Getenv(appData); c != "" {
			return filepath.Join(c, appName, "state")
		}
	}
	d, _ := os.UserHomeDir()
	return filepath.Join(d, ".local", "state", appName)
}

// LogsDir is where the rotated log file lives.
func LogsDir() string {
	return filepath.Join(StateDir(), logsSubdir)
}

// ConfigFilePath returns the full path of the user config file, whether or
// not it exists.
func ConfigFilePath() string {
	return ConfigFilePathIn(ConfigDir())
}

// ConfigFilePathIn returns the config file path inside dir.
func ConfigFilePathIn(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
