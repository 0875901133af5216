package prune

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/schmitthub/imageclean/internal/docker"
)

// DefaultKeep is the number of newest images retained per repository.
const DefaultKeep = 2

// ErrNegativeKeep is returned when the retention count is below zero.
var ErrNegativeKeep = errors.New("keep count must not be negative")

// Plan is the set of images selected for deletion in one run.
type Plan struct {
	// Keep is the retention count the plan was built with.
	Keep int

	// Candidates are untagged images first, then each repository's
	// overflow in repository first-seen order. No ID appears twice.
	Candidates []docker.Image

	// Repositories is the number of repository groups seen.
	Repositories int

	// Untagged is how many candidates were selected for having no tags.
	Untagged int
}

// Empty reports whether there is nothing to delete.
func (p *Plan) Empty() bool {
	return len(p.Candidates) == 0
}

// Len returns the number of candidates.
func (p *Plan) Len() int {
	return len(p.Candidates)
}

// TotalSize sums the reported sizes of all candidates. Layers shared with
// retained images are counted, so this is an upper bound on reclaimed space.
func (p *Plan) TotalSize() int64 {
	return lo.SumBy(p.Candidates, func(img docker.Image) int64 { return img.Size })
}

// SelectUntagged returns every image that carries no tags.
func SelectUntagged(images []docker.Image) []docker.Image {
	return lo.Filter(images, func(img docker.Image, _ int) bool {
		return img.Untagged()
	})
}

// BuildPlan selects every untagged image plus, for each repository, every
// image beyond the newest keep by creation time.
func BuildPlan(images []docker.Image, keep int) (*Plan, error) {
	if keep < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeKeep, keep)
	}

	untagged := SelectUntagged(images)
	candidates := append([]docker.Image(nil), untagged...)

	groups := GroupByRepository(images)
	for _, key := range groups.Keys() {
		candidates = append(candidates, SelectOverflow(groups.Images(key), keep)...)
	}

	candidates = lo.UniqBy(candidates, func(img docker.Image) string { return img.ID })

	return &Plan{
		Keep:         keep,
		Candidates:   candidates,
		Repositories: groups.Len(),
		Untagged:     len(untagged),
	}, nil
}
