package cmdutil

import (
	"context"

	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/docker"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/prompter"
)

// Factory provides shared dependencies for CLI commands.
// It is a dependency injection container: the struct defines what
// dependencies exist, while internal/cmd/factory wires the real
// implementations.
//
// Closure fields are set by the factory constructor and use lazy
// initialization internally. Commands extract only the fields they
// need into per-command Options structs.
type Factory struct {
	// Version info (set at build time via ldflags)
	Version string
	Commit  string

	IOStreams *iostreams.IOStreams

	// Client connects to the container runtime on first use.
	Client      func(context.Context) (*docker.Client, error)
	CloseClient func()

	Config   func() (*config.Config, error)
	Prompter func() *prompter.Prompter
}
