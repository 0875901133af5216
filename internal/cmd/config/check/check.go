package check

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	internalconfig "github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/logger"
)

// CheckOptions holds options for the config check command.
type CheckOptions struct {
	IOStreams *iostreams.IOStreams
	ConfigDir func() string

	File string
}

// NewCmdCheck creates the config check command.
func NewCmdCheck(f *cmdutil.Factory, runF func(context.Context, *CheckOptions) error) *cobra.Command {
	opts := &CheckOptions{
		IOStreams: f.IOStreams,
		ConfigDir: internalconfig.ConfigDir,
	}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the imageclean config file",
		Long: `Validates the config file and prints the effective settings.

Unknown keys, wrong value types and negative limits are reported.
IMAGECLEAN_* environment variables are applied on top of the file,
exactly as they are for a cleanup run.`,
		Example: `  # Validate the default config file
  imageclean config check

  # Validate another file
  imageclean config check --file ./config.yaml`,
		Args: cmdutil.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return checkRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Path to the config file to validate")

	return cmd
}

func checkRun(_ context.Context, opts *CheckOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	path := opts.File
	if path == "" {
		path = internalconfig.ConfigFilePathIn(opts.ConfigDir())
	}
	logger.Debug().Str("file", path).Msg("checking configuration")

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking config %s: %w", path, err)
		}
		if opts.File != "" {
			ios.PrintFailure("%s not found", path)
			return cmdutil.SilentError
		}
		ios.PrintInfo("No config file at %s, using defaults", path)
	}

	cfg, err := internalconfig.LoadFile(path)
	if err != nil {
		ios.PrintFailure("Configuration is invalid")
		fmt.Fprintf(ios.ErrOut, "  %s\n", err)
		return cmdutil.SilentError
	}

	ios.PrintSuccess("Configuration is valid")
	fmt.Fprintln(ios.Out)
	fmt.Fprintf(ios.Out, "  %s %d\n", cs.Bold("keep:"), cfg.Keep)
	fmt.Fprintf(ios.Out, "  %s %s\n", cs.Bold("docker.timeout:"), cfg.Docker.Timeout)
	fmt.Fprintf(ios.Out, "  %s %t\n", cs.Bold("logging.file_enabled:"), cfg.Logging.FileEnabled == nil || *cfg.Logging.FileEnabled)
	fmt.Fprintf(ios.Out, "  %s %d MB, %d days, %d backups\n", cs.Bold("logging.rotation:"),
		cfg.Logging.MaxSizeMB, cfg.Logging.MaxAgeDays, cfg.Logging.MaxBackups)

	return nil
}
