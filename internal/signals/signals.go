// Package signals turns SIGINT/SIGTERM into context cancellation. This is a
// leaf package: stdlib only, no internal imports, no logging.
package signals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is the cancellation cause when a signal arrives.
var ErrInterrupted = errors.New("interrupted")

// SetupSignalContext creates a context that's canceled on SIGINT/SIGTERM.
// context.Cause on the result wraps ErrInterrupted and names the signal.
func SetupSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return notify(parent, syscall.SIGINT, syscall.SIGTERM)
}

func notify(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case sig := <-sigChan:
			cancel(fmt.Errorf("%w by %s", ErrInterrupted, sig))
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, func() { cancel(nil) }
}
