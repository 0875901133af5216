package prune

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-units"

	"github.com/schmitthub/imageclean/internal/docker"
	"github.com/schmitthub/imageclean/internal/iostreams"
)

// Remover deletes a single image by ID. *docker.Client satisfies it.
type Remover interface {
	RemoveImage(ctx context.Context, id string) error
}

// Result summarises an execution.
type Result struct {
	Total   int
	Deleted []docker.Image
	Skipped []docker.Image
}

// Executor removes plan candidates one at a time, reporting progress.
type Executor struct {
	Remover   Remover
	IOStreams *iostreams.IOStreams

	// Now supplies the reference time for age display. Defaults to time.Now.
	Now func() time.Time
}

// Execute deletes every candidate in order. An image in use by a running
// container is reported and skipped; any other failure stops the batch and
// is returned alongside the partial result. Completed deletions are not
// rolled back.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (Result, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ios := e.IOStreams
	cs := ios.ColorScheme()

	res := Result{Total: plan.Len()}
	for i, img := range plan.Candidates {
		if ctx.Err() != nil {
			return res, context.Cause(ctx)
		}

		fmt.Fprintf(ios.Out, "Deleting %d/%d: %s ... ", i+1, res.Total, FormatCandidate(img, now()))

		err := e.Remover.RemoveImage(ctx, img.ID)
		switch {
		case err == nil:
			fmt.Fprintln(ios.Out, cs.Green("OK"))
			res.Deleted = append(res.Deleted, img)
			ios.Logger.Debug().
				Str("image", img.ID).
				Str("age", units.HumanDuration(now().Sub(img.CreatedAt()))).
				Msg("image removed")
		case docker.IsImageInUse(err):
			fmt.Fprintln(ios.Out, cs.Yellow("skipped: being used by running container"))
			res.Skipped = append(res.Skipped, img)
			ios.Logger.Warn().Err(err).Str("image", img.ID).Msg("image in use, skipped")
		default:
			if ctx.Err() != nil {
				err = context.Cause(ctx)
			}
			fmt.Fprintln(ios.Out, cs.Red("FAILED"))
			ios.Logger.Error().Err(err).Str("image", img.ID).Msg("image removal failed")
			return res, fmt.Errorf("deleting image %d/%d: %w", i+1, res.Total, err)
		}
	}
	return res, nil
}
