package clean

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/docker"
	"github.com/schmitthub/imageclean/internal/docker/dockertest"
	"github.com/schmitthub/imageclean/internal/iostreams/iostreamstest"
	"github.com/schmitthub/imageclean/internal/prompter"
	"github.com/schmitthub/imageclean/internal/prune"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewCmdClean(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantYes     bool
		wantKeep    int
		wantKeepSet bool
		wantDryRun  bool
		wantJSON    bool
		wantErr     bool
		wantErrMsg  string
	}{
		{
			name:     "no flags",
			input:    "",
			wantKeep: prune.DefaultKeep,
		},
		{
			name:     "yes short",
			input:    "-y",
			wantYes:  true,
			wantKeep: prune.DefaultKeep,
		},
		{
			name:        "keep long",
			input:       "--keep 5",
			wantKeep:    5,
			wantKeepSet: true,
		},
		{
			name:        "keep zero",
			input:       "-k 0 --yes",
			wantYes:     true,
			wantKeep:    0,
			wantKeepSet: true,
		},
		{
			name:       "dry run json",
			input:      "--dry-run --json",
			wantKeep:   prune.DefaultKeep,
			wantDryRun: true,
			wantJSON:   true,
		},
		{
			name:       "negative keep",
			input:      "--keep -1",
			wantErr:    true,
			wantErrMsg: "invalid value for --keep: -1 (must be 0 or greater)",
		},
		{
			name:       "json without dry run",
			input:      "--json",
			wantErr:    true,
			wantErrMsg: "--json can only be used with --dry-run",
		},
		{
			name:    "non-numeric keep",
			input:   "--keep many",
			wantErr: true,
		},
		{
			name:    "positional argument",
			input:   "myimage",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tio := iostreamstest.New()
			f := &cmdutil.Factory{IOStreams: tio.IOStreams}

			var gotOpts *CleanOptions
			cmd := NewCmdClean(f, func(_ context.Context, opts *CleanOptions) error {
				gotOpts = opts
				return nil
			})

			cmd.Flags().BoolP("help", "x", false, "")

			argv, err := shlex.Split(tt.input)
			require.NoError(t, err)
			cmd.SetArgs(argv)
			cmd.SetIn(&bytes.Buffer{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			_, err = cmd.ExecuteC()
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrMsg != "" {
					require.EqualError(t, err, tt.wantErrMsg)
					var flagErr *cmdutil.FlagError
					require.True(t, errors.As(err, &flagErr))
					require.Equal(t, cmdutil.ExitUsage, cmdutil.ExitCode(err))
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, gotOpts)
			require.Equal(t, tt.wantYes, gotOpts.Yes)
			require.Equal(t, tt.wantKeep, gotOpts.Keep)
			require.Equal(t, tt.wantKeepSet, gotOpts.keepSet)
			require.Equal(t, tt.wantDryRun, gotOpts.DryRun)
			require.Equal(t, tt.wantJSON, gotOpts.JSON)
		})
	}
}

func TestCmdClean_Properties(t *testing.T) {
	cmd := NewCmdClean(&cmdutil.Factory{}, nil)

	require.Equal(t, "clean [OPTIONS]", cmd.Use)
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Long)
	require.NotEmpty(t, cmd.Example)
	require.NotNil(t, cmd.RunE)

	for _, name := range []string{"yes", "keep", "dry-run", "json"} {
		require.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	require.NotNil(t, cmd.Flags().ShorthandLookup("y"))
	require.NotNil(t, cmd.Flags().ShorthandLookup("k"))
}

// harness runs the real command against a fake runtime.
type harness struct {
	tio  *iostreamstest.TestIOStreams
	fake *dockertest.FakeClient
	cfg  *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		tio:  iostreamstest.New(),
		fake: dockertest.NewFakeClient(),
		cfg:  config.DefaultConfig(),
	}
	h.fake.SetupImageRemove(nil)
	return h
}

func (h *harness) run(t *testing.T, args string) error {
	t.Helper()
	f := &cmdutil.Factory{
		IOStreams: h.tio.IOStreams,
		Client: func(context.Context) (*docker.Client, error) {
			return h.fake.Client, nil
		},
		Config:   func() (*config.Config, error) { return h.cfg, nil },
		Prompter: func() *prompter.Prompter { return prompter.NewPrompter(h.tio.IOStreams) },
	}

	cmd := NewCmdClean(f, func(ctx context.Context, opts *CleanOptions) error {
		opts.Now = func() time.Time { return testNow }
		return cleanRun(ctx, opts)
	})
	argv, err := shlex.Split(args)
	require.NoError(t, err)
	cmd.SetArgs(argv)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	_, err = cmd.ExecuteC()
	return err
}

func daysAgo(d int) int64 {
	return testNow.AddDate(0, 0, -d).Unix()
}

// fourVersions is one repository with four images plus one dangling image.
func (h *harness) fourVersions() {
	h.fake.SetupImageList(
		dockertest.ImageFixture("sha256:v4", daysAgo(1), "web:4"),
		dockertest.ImageFixture("sha256:v3", daysAgo(2), "web:3"),
		dockertest.ImageFixture("sha256:v2", daysAgo(3), "web:2"),
		dockertest.ImageFixture("sha256:v1", daysAgo(4), "web:1"),
		dockertest.ImageFixture("sha256:dangling", daysAgo(9)),
	)
}

func TestClean_NothingToDelete(t *testing.T) {
	h := newHarness(t)
	h.fake.SetupImageList(
		dockertest.ImageFixture("sha256:a", daysAgo(1), "web:1"),
		dockertest.ImageFixture("sha256:b", daysAgo(2), "web:2"),
		dockertest.ImageFixture("sha256:c", daysAgo(3), "api:1"),
	)

	err := h.run(t, "")
	require.NoError(t, err)

	assert.Contains(t, h.tio.OutBuf.String(), "Nothing to delete: no repository contains more than 2 images")
	assert.NotContains(t, h.tio.ErrBuf.String(), "(y/n)", "no prompt for an empty plan")
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_ConfirmYes(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.tio.InBuf.SetInput("y\n")

	err := h.run(t, "")
	require.NoError(t, err)

	out := h.tio.OutBuf.String()
	assert.Contains(t, out, "sha256:dangling")
	assert.Contains(t, out, "Total: 3 images")
	assert.Contains(t, h.tio.ErrBuf.String(), "Delete these 3 images? (y/n) ")
	assert.Contains(t, out, "Deleting 3/3: ")
	assert.Contains(t, h.tio.ErrBuf.String(), "Deleted 3 of 3 images (0 skipped)")

	assert.Equal(t, []string{"sha256:dangling", "sha256:v2", "sha256:v1"}, h.fake.FakeAPI.Removed)
}

func TestClean_Declined(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.tio.InBuf.SetInput("n\n")

	err := h.run(t, "")
	require.ErrorIs(t, err, cmdutil.ErrCancelled)
	assert.Equal(t, cmdutil.ExitCancelled, cmdutil.ExitCode(err))
	assert.Contains(t, h.tio.ErrBuf.String(), "Cancelled by user")
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_InputClosedIsDecline(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()

	err := h.run(t, "")
	require.ErrorIs(t, err, cmdutil.ErrCancelled)
	assert.Equal(t, cmdutil.ExitCancelled, cmdutil.ExitCode(err))
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_RepromptsUntilValidAnswer(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.tio.InBuf.SetInput("maybe\nYES\ny\n")

	err := h.run(t, "")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(h.tio.ErrBuf.String(), "Delete these 3 images? (y/n) "))
	assert.Equal(t, 3, h.fake.FakeAPI.CallCount("ImageRemove"))
}

func TestClean_YesSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()

	err := h.run(t, "--yes")
	require.NoError(t, err)
	assert.NotContains(t, h.tio.ErrBuf.String(), "(y/n)")
	assert.NotContains(t, h.tio.OutBuf.String(), "Total:")
	assert.Equal(t, 3, h.fake.FakeAPI.CallCount("ImageRemove"))
}

func TestClean_InUseImageSkipped(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.fake.SetupImageRemove(map[string]error{
		"sha256:v2": dockertest.InUseError("sha256:v2"),
	})

	err := h.run(t, "-y")
	require.NoError(t, err)
	assert.Contains(t, h.tio.OutBuf.String(), "skipped: being used by running container")
	assert.Contains(t, h.tio.ErrBuf.String(), "Deleted 2 of 3 images (1 skipped)")
	assert.Equal(t, []string{"sha256:dangling", "sha256:v2", "sha256:v1"}, h.fake.FakeAPI.Removed)
}

func TestClean_FatalRemovalError(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.fake.SetupImageRemove(map[string]error{
		"sha256:v2": dockertest.ChildImagesError("sha256:v2"),
	})

	err := h.run(t, "-y")
	require.Error(t, err)
	assert.Equal(t, cmdutil.ExitRuntime, cmdutil.ExitCode(err))
	assert.Contains(t, h.tio.ErrBuf.String(), "Stopped after deleting 1 of 3 images")
	assert.Equal(t, 2, h.fake.FakeAPI.CallCount("ImageRemove"))
}

func TestClean_RuntimeUnavailable(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{
		IOStreams: tio.IOStreams,
		Client: func(context.Context) (*docker.Client, error) {
			return nil, docker.ErrDockerNotRunning(errors.New("dial unix /var/run/docker.sock: connect: no such file or directory"))
		},
		Config: func() (*config.Config, error) { return config.DefaultConfig(), nil },
	}
	cmd := NewCmdClean(f, nil)
	cmd.SetArgs([]string{"--yes"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	_, err := cmd.ExecuteC()
	require.Error(t, err)
	assert.True(t, errors.Is(err, docker.ErrRuntimeUnavailable))
	assert.Equal(t, cmdutil.ExitRuntime, cmdutil.ExitCode(err))
}

func TestClean_ListUnavailable(t *testing.T) {
	h := newHarness(t)
	h.fake.SetupImageListError(dockertest.UnavailableError())

	err := h.run(t, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, docker.ErrRuntimeUnavailable))
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_KeepFromConfig(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.cfg.Keep = 3

	err := h.run(t, "--yes")
	require.NoError(t, err)
	assert.Equal(t, []string{"sha256:dangling", "sha256:v1"}, h.fake.FakeAPI.Removed)
}

func TestClean_KeepFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()
	h.cfg.Keep = 3

	err := h.run(t, "--yes --keep 0")
	require.NoError(t, err)
	assert.Equal(t, 5, h.fake.FakeAPI.CallCount("ImageRemove"))
}

func TestClean_DryRun(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()

	err := h.run(t, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, h.tio.OutBuf.String(), "web:2")
	assert.Contains(t, h.tio.OutBuf.String(), "Total: 3 images")
	assert.NotContains(t, h.tio.ErrBuf.String(), "(y/n)")
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_DryRunJSON(t *testing.T) {
	h := newHarness(t)
	h.fourVersions()

	err := h.run(t, "--dry-run --json")
	require.NoError(t, err)

	var rows []prune.Row
	require.NoError(t, json.Unmarshal([]byte(h.tio.OutBuf.String()), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "sha256:dangling", rows[0].ID)
	assert.Equal(t, "UNTAGGED", rows[0].Tag)
	assert.Equal(t, 9, rows[0].AgeDays)
	h.fake.AssertNotCalled(t, "ImageRemove")
}

func TestClean_DryRunJSONEmpty(t *testing.T) {
	h := newHarness(t)
	h.fake.SetupImageList()

	err := h.run(t, "--dry-run --json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", h.tio.OutBuf.String())
}
