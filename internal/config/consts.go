package config

const (
	appName = "imageclean"

	configDirEnv = "IMAGECLEAN_CONFIG_DIR"
	stateDirEnv  = "IMAGECLEAN_STATE_DIR"
	envPrefix    = "IMAGECLEAN"

	xdgConfigHome = "XDG_CONFIG_HOME"
	xdgStateHome  = "XDG_STATE_HOME"
	appData       = "AppData"

	// ConfigFileName is the optional user config file inside ConfigDir.
	ConfigFileName = "config.yaml"

	logsSubdir = "logs"
)
