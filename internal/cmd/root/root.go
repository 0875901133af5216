package root

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/schmitthub/imageclean/internal/cmd/clean"
	configcmd "github.com/schmitthub/imageclean/internal/cmd/config"
	versioncmd "github.com/schmitthub/imageclean/internal/cmd/version"
	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/logger"
)

// NewCmdRoot creates the root command for the imageclean CLI. Running it
// without a subcommand performs the cleanup.
func NewCmdRoot(f *cmdutil.Factory) *cobra.Command {
	var debug bool

	cmd := clean.NewCmdClean(f, nil)
	cmd.Use = "imageclean [OPTIONS]"
	cmd.Short = "Delete old and untagged local container images"
	cmd.Long = `imageclean frees disk space by deleting local images you no longer need.

Every untagged image is deleted. For each repository only the newest
images are kept (2 by default, see --keep). The plan is listed and must be
confirmed with "y" unless --yes is given.

Configuration is read from $XDG_CONFIG_HOME/imageclean/config.yaml and
IMAGECLEAN_* environment variables. The runtime is located through the
usual DOCKER_HOST environment.`
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Version = versioncmd.Format(f.Version, f.Commit)
	cmd.SetVersionTemplate("{{.Version}}")

	// Parse failures (unknown flag, bad value) are usage errors like any
	// other FlagError. Subcommands inherit this.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmdutil.FlagErrorWrap(err)
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initializeLogger(f, debug)
		logger.SetRunID(uuid.NewString())

		logger.Debug().
			Str("version", f.Version).
			Bool("debug", debug).
			Msg("imageclean starting")

		return nil
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	cmd.AddCommand(configcmd.NewCmdConfig(f))
	cmd.AddCommand(versioncmd.NewCmdVersion(f))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any errors.
func initializeLogger(f *cmdutil.Factory, debug bool) {
	cfg, err := f.Config()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load config")
		return
	}

	logCfg := &logger.LoggingConfig{
		FileEnabled: cfg.Logging.FileEnabled,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
		MaxBackups:  cfg.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug, config.LogsDir(), logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}
