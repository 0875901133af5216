package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/iostreams/iostreamstest"
)

func TestNewCmdConfig(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: tio.IOStreams}
	cmd := NewCmdConfig(f)

	assert.Equal(t, "config", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"check", "init"}, names)
}
