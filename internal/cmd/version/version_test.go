package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/iostreams/iostreamstest"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{
			name:    "version only",
			version: "1.2.3",
			want:    "imageclean version 1.2.3\n",
		},
		{
			name:    "leading v trimmed",
			version: "v1.2.3",
			commit:  "abc123",
			want:    "imageclean version 1.2.3 (commit abc123)\n",
		},
		{
			name: "unset version",
			want: "imageclean version DEV\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.version, tt.commit); got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.version, tt.commit, got, tt.want)
			}
		})
	}
}

func TestNewCmdVersion(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: tio.IOStreams, Version: "0.3.0", Commit: "deadbeef"}

	cmd := NewCmdVersion(f)
	cmd.SetArgs([]string{})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
	assert.Equal(t, "imageclean version 0.3.0 (commit deadbeef)\n", tio.OutBuf.String())
}
