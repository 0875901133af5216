package cmdutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagErrorf(t *testing.T) {
	err := FlagErrorf("invalid keep: %d", -1)
	assert.Equal(t, "invalid keep: -1", err.Error())

	var flagErr *FlagError
	require.True(t, errors.As(err, &flagErr))
}

func TestFlagErrorWrap(t *testing.T) {
	inner := fmt.Errorf("bad value")
	err := FlagErrorWrap(inner)
	assert.Equal(t, "bad value", err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestSilentError(t *testing.T) {
	err := fmt.Errorf("something failed: %w", SilentError)
	assert.True(t, errors.Is(err, SilentError))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"explicit exit", &ExitError{Code: 7}, 7},
		{"wrapped exit", fmt.Errorf("run: %w", &ExitError{Code: ExitCancelled}), ExitCancelled},
		{"cancelled", ErrCancelled, ExitCancelled},
		{"flag error", FlagErrorf("bad flag"), ExitUsage},
		{"runtime", errors.New("daemon went away"), ExitRuntime},
		{"silent", SilentError, ExitRuntime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
