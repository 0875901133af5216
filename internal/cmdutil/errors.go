package cmdutil

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitCancelled = 1
	ExitUsage     = 2
	ExitRuntime   = 3

	// ExitInterrupted follows the shell convention of 128+SIGINT.
	ExitInterrupted = 130
)

// ExitError carries a specific process exit status.
// Commands should return this instead of calling os.Exit() directly,
// allowing deferred cleanup to run. Main() handles os.Exit().
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// FlagError indicates bad flags or arguments. When Main() encounters this error
// type, it prints the error message followed by the command's usage string.
type FlagError struct {
	err error
}

func (e *FlagError) Error() string { return e.err.Error() }
func (e *FlagError) Unwrap() error { return e.err }

// FlagErrorf creates a FlagError with a formatted message.
func FlagErrorf(format string, args ...any) error {
	return &FlagError{err: fmt.Errorf(format, args...)}
}

// FlagErrorWrap wraps an existing error as a FlagError.
func FlagErrorWrap(err error) error {
	return &FlagError{err: err}
}

// SilentError signals that the error has already been displayed to the user.
// Main() will exit non-zero but not print anything additional.
var SilentError = errors.New("SilentError")

// ErrCancelled is returned when the user declines the deletion. The command
// reports the decline itself, so Main prints nothing more.
var ErrCancelled = errors.New("cancelled by user")

// ExitCode maps an error returned from command execution to a process
// exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrCancelled) {
		return ExitCancelled
	}
	var flagErr *FlagError
	if errors.As(err, &flagErr) {
		return ExitUsage
	}
	return ExitRuntime
}
