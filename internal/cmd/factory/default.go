package factory

import (
	"context"
	"sync"

	"github.com/muesli/termenv"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/docker"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/logger"
	"github.com/schmitthub/imageclean/internal/prompter"
)

// New creates a fully-wired Factory with lazy-initialized dependency closures.
// Called exactly once at the CLI entry point (internal/imageclean/cmd.go).
// Tests should NOT import this package; construct &cmdutil.Factory{} directly.
func New(version, commit string) *cmdutil.Factory {
	ios := iostreams.NewIOStreams()
	ios.Logger = &logger.Log

	// NO_COLOR and CLICOLOR=0 switch colors off even on a terminal.
	if !ios.IsOutputTTY() || termenv.EnvNoColor() {
		ios.SetColorEnabled(false)
	}

	f := &cmdutil.Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: ios,
	}

	// Docker client
	var (
		clientOnce sync.Once
		client     *docker.Client
		clientErr  error
	)
	f.Client = func(ctx context.Context) (*docker.Client, error) {
		clientOnce.Do(func() {
			client, clientErr = docker.NewClient(ctx)
		})
		return client, clientErr
	}
	f.CloseClient = func() {
		if client != nil {
			if err := client.Close(); err != nil {
				logger.Debug().Err(err).Msg("closing docker client")
			}
		}
	}

	// Config
	var (
		configOnce sync.Once
		configData *config.Config
		configErr  error
	)
	f.Config = func() (*config.Config, error) {
		configOnce.Do(func() {
			configData, configErr = config.Load()
		})
		return configData, configErr
	}

	// Prompter
	var (
		prompterOnce sync.Once
		p            *prompter.Prompter
	)
	f.Prompter = func() *prompter.Prompter {
		prompterOnce.Do(func() {
			p = prompter.NewPrompter(ios)
		})
		return p
	}

	return f
}
