package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/iostreams/iostreamstest"
)

func TestNewCmdCheck(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFile string
		wantErr  bool
	}{
		{name: "no flags", input: ""},
		{name: "file flag", input: "--file /some/path.yaml", wantFile: "/some/path.yaml"},
		{name: "file shorthand", input: "-f /some/path.yaml", wantFile: "/some/path.yaml"},
		{name: "positional arg", input: "extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tio := iostreamstest.New()
			f := &cmdutil.Factory{IOStreams: tio.IOStreams}

			var gotOpts *CheckOptions
			cmd := NewCmdCheck(f, func(_ context.Context, opts *CheckOptions) error {
				gotOpts = opts
				return nil
			})

			argv, err := shlex.Split(tt.input)
			require.NoError(t, err)
			cmd.SetArgs(argv)
			cmd.SetOut(tio.OutBuf)
			cmd.SetErr(tio.ErrBuf)

			err = cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, cmdutil.ExitUsage, cmdutil.ExitCode(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, gotOpts)
			assert.Equal(t, tt.wantFile, gotOpts.File)
		})
	}
}

func runCheck(t *testing.T, dir, file string) (*iostreamstest.TestIOStreams, error) {
	t.Helper()
	tio := iostreamstest.New()
	opts := &CheckOptions{
		IOStreams: tio.IOStreams,
		ConfigDir: func() string { return dir },
		File:      file,
	}
	return tio, checkRun(context.Background(), opts)
}

func TestCheckRun_Valid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("keep: 4\n"), 0o644))

	tio, err := runCheck(t, dir, "")
	require.NoError(t, err)
	assert.Contains(t, tio.ErrBuf.String(), "Configuration is valid")
	assert.Contains(t, tio.OutBuf.String(), "keep: 4")
	assert.Contains(t, tio.OutBuf.String(), "docker.timeout: 30s")
}

func TestCheckRun_NoFileUsesDefaults(t *testing.T) {
	tio, err := runCheck(t, t.TempDir(), "")
	require.NoError(t, err)
	assert.Contains(t, tio.ErrBuf.String(), "using defaults")
	assert.Contains(t, tio.OutBuf.String(), "keep: 2")
}

func TestCheckRun_ExplicitFileMissing(t *testing.T) {
	tio, err := runCheck(t, t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, cmdutil.SilentError)
	assert.Contains(t, tio.ErrBuf.String(), "not found")
}

func TestCheckRun_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "keep: 2\nretain: 3\n", want: "retain"},
		{name: "wrong type", content: "keep: lots\n", want: "cannot unmarshal"},
		{name: "negative keep", content: "keep: -1\n", want: "keep must be 0 or greater"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			tio, err := runCheck(t, t.TempDir(), path)
			require.ErrorIs(t, err, cmdutil.SilentError)
			assert.Contains(t, tio.ErrBuf.String(), "Configuration is invalid")
			assert.Contains(t, tio.ErrBuf.String(), tt.want)
		})
	}
}
