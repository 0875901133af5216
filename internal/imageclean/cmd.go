package imageclean

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/imageclean/internal/cmd/factory"
	"github.com/schmitthub/imageclean/internal/cmd/root"
	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/logger"
	"github.com/schmitthub/imageclean/internal/signals"
)

// Build-time variables injected via ldflags
var (
	Version = "dev"
	Commit  = ""
)

// userFormattedError is satisfied by errors that render their own
// remediation text, such as docker.DockerError.
type userFormattedError interface {
	FormatUserError() string
}

// Main is the entry point for the imageclean CLI.
// It initializes the Factory, creates the root command, executes it and
// returns the process exit code.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := factory.New(Version, Commit)
	rootCmd := root.NewCmdRoot(f)

	ctx, cancel := signals.SetupSignalContext(context.Background())
	defer cancel()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	f.CloseClient()

	switch {
	case errors.Is(err, cmdutil.ErrCancelled):
		logger.Info().Int("exit_code", exitCode(err)).Msg("imageclean cancelled")
	case err != nil:
		logger.Error().Err(err).Int("exit_code", exitCode(err)).Msg("imageclean failed")
		printError(f.IOStreams, cmd, err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if errors.Is(err, signals.ErrInterrupted) {
		return cmdutil.ExitInterrupted
	}
	return cmdutil.ExitCode(err)
}

// printError renders err for the user. ExitError, SilentError and
// ErrCancelled have already been reported by the command.
func printError(ios *iostreams.IOStreams, cmd *cobra.Command, err error) {
	var exitErr *cmdutil.ExitError
	if errors.As(err, &exitErr) || errors.Is(err, cmdutil.SilentError) || errors.Is(err, cmdutil.ErrCancelled) {
		return
	}

	var ufErr userFormattedError
	if errors.As(err, &ufErr) {
		fmt.Fprint(ios.ErrOut, ufErr.FormatUserError())
		return
	}

	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "%s %s\n", cs.Red("Error:"), err)

	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) && cmd != nil {
		fmt.Fprintf(ios.ErrOut, "\n%s", cmd.UsageString())
	}
}
