package prune

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/imageclean/internal/docker"
)

func TestAgeDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, AgeDays(now, now))
	assert.Equal(t, 0, AgeDays(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, AgeDays(now.Add(-25*time.Hour), now))
	assert.Equal(t, 30, AgeDays(now.AddDate(0, 0, -30), now))
	assert.Equal(t, 0, AgeDays(now.Add(time.Hour), now), "future timestamps clamp to zero")
}

func TestFormatCandidate(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local)
	now := created.AddDate(0, 0, 12)

	line := FormatCandidate(docker.Image{
		ID:      "sha256:0123456789abcdef0123456789abcdef",
		Created: created.Unix(),
		Tags:    []string{"web:1.2", "web:latest"},
	}, now)

	assert.Equal(t, "sha256:0123456789ab     12 days (2024-01-01 08:30:00) web:1.2", line)
}

func TestFormatCandidate_Untagged(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	line := FormatCandidate(docker.Image{ID: "short", Created: created.Unix()}, created)

	assert.True(t, strings.HasPrefix(line, "short "))
	assert.True(t, strings.HasSuffix(line, " UNTAGGED"))
	assert.Contains(t, line, "     0 days")
}

func TestConfirmMessage(t *testing.T) {
	assert.Equal(t, "Delete these 3 images? (y/n) ", ConfirmMessage(3))
}

func TestNothingToDeleteMessage(t *testing.T) {
	assert.Equal(t, "Nothing to delete: no repository contains more than 2 images", NothingToDeleteMessage(2))
}

func TestPlanRows(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	plan := &Plan{Candidates: []docker.Image{
		{ID: "sha256:aaa", Created: created.Unix(), Tags: []string{"app:1"}, Size: 42},
		{ID: "sha256:bbb", Created: created.Unix()},
	}}

	rows := plan.Rows(created.AddDate(0, 0, 3))
	require.Len(t, rows, 2)
	assert.Equal(t, "sha256:aaa", rows[0].ID)
	assert.Equal(t, "app:1", rows[0].Tag)
	assert.Equal(t, 3, rows[0].AgeDays)
	assert.Equal(t, int64(42), rows[0].Size)
	assert.Equal(t, "UNTAGGED", rows[1].Tag)

	parsed, err := time.Parse(time.RFC3339, rows[0].Created)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(created))
}
