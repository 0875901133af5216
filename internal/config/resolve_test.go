package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Setenv(configDirEnv, "")
	t.Setenv(xdgConfigHome, "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/config", "imageclean"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/config", "imageclean", "config.yaml"), ConfigFilePath())

	t.Setenv(configDirEnv, "/custom")
	assert.Equal(t, "/custom", ConfigDir())
}

func TestLogsDir(t *testing.T) {
	t.Setenv(stateDirEnv, "")
	t.Setenv(xdgStateHome, "/xdg/state")
	assert.Equal(t, filepath.Join("/xdg/state", "imageclean", "logs"), LogsDir())

	t.Setenv(stateDirEnv, "/state")
	assert.Equal(t, filepath.Join("/state", "logs"), LogsDir())
}
