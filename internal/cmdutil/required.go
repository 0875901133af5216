package cmdutil

import (
	"github.com/spf13/cobra"
)

// NoArgs rejects positional arguments with a usage error.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	if cmd.HasSubCommands() {
		return FlagErrorf(
			"%[1]s: unknown command: %[2]s %[3]s\n\nRun '%[2]s --help' for more information",
			binName(cmd),
			cmd.CommandPath(),
			args[0],
		)
	}

	return FlagErrorf(
		"%[1]s: '%[2]s' accepts no arguments\n\nRun '%[2]s --help' for more information",
		binName(cmd),
		cmd.CommandPath(),
	)
}

func binName(cmd *cobra.Command) string {
	return cmd.Root().Name()
}
