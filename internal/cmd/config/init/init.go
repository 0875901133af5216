package init

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/logger"
	prompterpkg "github.com/schmitthub/imageclean/internal/prompter"
)

// InitOptions contains the options for the config init command.
type InitOptions struct {
	IOStreams *iostreams.IOStreams
	Prompter  func() *prompterpkg.Prompter
	ConfigDir func() string

	Force bool
}

// NewCmdInit creates the config init command.
func NewCmdInit(f *cmdutil.Factory, runF func(context.Context, *InitOptions) error) *cobra.Command {
	opts := &InitOptions{
		IOStreams: f.IOStreams,
		Prompter:  f.Prompter,
		ConfigDir: config.ConfigDir,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Creates config.yaml in the imageclean config directory
($IMAGECLEAN_CONFIG_DIR, or $XDG_CONFIG_HOME/imageclean) holding the
default settings, ready to edit.

An existing file is only replaced after confirmation, or with --force.`,
		Example: `  # Create the default config file
  imageclean config init

  # Replace an existing file without asking
  imageclean config init --force`,
		Args: cmdutil.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return initRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing config file")

	return cmd
}

func initRun(_ context.Context, opts *InitOptions) error {
	ios := opts.IOStreams
	dir := opts.ConfigDir()

	path, err := config.WriteDefault(dir, opts.Force)
	if errors.Is(err, config.ErrConfigExists) {
		existing := config.ConfigFilePathIn(dir)
		overwrite, perr := opts.Prompter().YesNo(fmt.Sprintf("%s already exists. Overwrite? (y/n) ", existing))
		if perr != nil && !errors.Is(perr, prompterpkg.ErrNoAnswer) {
			return perr
		}
		if !overwrite {
			ios.PrintInfo("Kept existing config %s", existing)
			return nil
		}
		path, err = config.WriteDefault(dir, true)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	logger.Info().Str("file", path).Msg("wrote default config")
	ios.PrintSuccess("Created: %s", path)
	return nil
}
