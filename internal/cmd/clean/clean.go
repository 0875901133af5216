// Package clean provides the image cleanup command: list local images, plan
// which to delete, confirm, and delete them.
package clean

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/schmitthub/imageclean/internal/cmdutil"
	"github.com/schmitthub/imageclean/internal/config"
	"github.com/schmitthub/imageclean/internal/docker"
	"github.com/schmitthub/imageclean/internal/iostreams"
	"github.com/schmitthub/imageclean/internal/prompter"
	"github.com/schmitthub/imageclean/internal/prune"
)

// CleanOptions holds options for the clean command.
type CleanOptions struct {
	IOStreams *iostreams.IOStreams
	Client    func(context.Context) (*docker.Client, error)
	Config    func() (*config.Config, error)
	Prompter  func() *prompter.Prompter

	// Now supplies the reference time for ages. Defaults to time.Now.
	Now func() time.Time

	Yes    bool
	Keep   int
	DryRun bool
	JSON   bool

	// keepSet is true when --keep was given and overrides config.
	keepSet bool
}

// NewCmdClean creates the clean command.
func NewCmdClean(f *cmdutil.Factory, runF func(context.Context, *CleanOptions) error) *cobra.Command {
	opts := &CleanOptions{
		IOStreams: f.IOStreams,
		Client:    f.Client,
		Config:    f.Config,
		Prompter:  f.Prompter,
	}

	cmd := &cobra.Command{
		Use:   "clean [OPTIONS]",
		Short: "Delete old and untagged local images",
		Long: `Deletes local container images that are no longer needed.

Every untagged image is deleted. Images are grouped by repository (the tag
without its final ":suffix") and only the newest images of each repository
are kept, by creation time.

The deletion plan is shown and confirmed before anything is removed.
Images used by a running container are skipped.`,
		Example: `  # Keep the two newest images per repository
  imageclean

  # Keep five per repository and do not ask
  imageclean --keep 5 --yes

  # Show what would be deleted as JSON
  imageclean --dry-run --json`,
		Args: cmdutil.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.keepSet = cmd.Flags().Changed("keep")
			if opts.keepSet && opts.Keep < 0 {
				return cmdutil.FlagErrorf("invalid value for --keep: %d (must be 0 or greater)", opts.Keep)
			}
			if opts.JSON && !opts.DryRun {
				return cmdutil.FlagErrorf("--json can only be used with --dry-run")
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return cleanRun(cmd.Context(), opts)
		},
	}

	AddFlags(cmd.Flags(), opts)

	return cmd
}

// AddFlags registers the clean flags on fs.
func AddFlags(fs *pflag.FlagSet, opts *CleanOptions) {
	fs.BoolVarP(&opts.Yes, "yes", "y", false, "Delete without asking for confirmation")
	fs.IntVarP(&opts.Keep, "keep", "k", prune.DefaultKeep, "Number of newest images to keep per repository")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Show the deletion plan and exit")
	fs.BoolVar(&opts.JSON, "json", false, "Print the plan as JSON (requires --dry-run)")
	fs.SortFlags = false
}

func cleanRun(ctx context.Context, opts *CleanOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	cfg, err := opts.Config()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	keep := cfg.Keep
	if opts.keepSet {
		keep = opts.Keep
	}

	ios.Logger.Info().
		Int("keep", keep).
		Bool("yes", opts.Yes).
		Bool("dry_run", opts.DryRun).
		Msg("starting image cleanup")

	images, err := listImages(ctx, opts, cfg.Docker.Timeout)
	if err != nil {
		return err
	}

	plan, err := prune.BuildPlan(images, keep)
	if err != nil {
		return cmdutil.FlagErrorWrap(err)
	}
	ios.Logger.Info().
		Int("images", len(images)).
		Int("repositories", plan.Repositories).
		Int("candidates", plan.Len()).
		Int64("bytes", plan.TotalSize()).
		Msg("deletion plan built")

	if opts.JSON {
		return cmdutil.WriteJSON(ios.Out, plan.Rows(now()))
	}

	if plan.Empty() {
		fmt.Fprintln(ios.Out, prune.NothingToDeleteMessage(keep))
		return nil
	}

	if !opts.Yes || opts.DryRun {
		for _, img := range plan.Candidates {
			fmt.Fprintln(ios.Out, prune.FormatCandidate(img, now()))
		}
		fmt.Fprintf(ios.Out, "%s %d images, up to %s\n",
			cs.Bold("Total:"), plan.Len(), units.HumanSize(float64(plan.TotalSize())))
	}

	if opts.DryRun {
		return nil
	}

	if !opts.Yes {
		ok, err := opts.Prompter().YesNo(prune.ConfirmMessage(plan.Len()))
		if err != nil && !errors.Is(err, prompter.ErrNoAnswer) {
			return err
		}
		if !ok {
			fmt.Fprintln(ios.ErrOut, "Cancelled by user")
			ios.Logger.Info().Msg("cleanup declined")
			return cmdutil.ErrCancelled
		}
	}

	client, err := opts.Client(ctx)
	if err != nil {
		return err
	}
	executor := &prune.Executor{
		Remover:   client,
		IOStreams: ios,
		Now:       now,
	}
	res, err := executor.Execute(ctx, plan)
	if err != nil {
		ios.PrintFailure("Stopped after deleting %d of %d images", len(res.Deleted), res.Total)
		return err
	}

	ios.PrintSuccess("Deleted %d of %d images (%d skipped)", len(res.Deleted), res.Total, len(res.Skipped))
	ios.Logger.Info().
		Int("deleted", len(res.Deleted)).
		Int("skipped", len(res.Skipped)).
		Msg("image cleanup finished")
	return nil
}

// listImages connects and lists within the configured timeout. Removal is not
// bounded by it, since deleting large images can take a while.
func listImages(ctx context.Context, opts *CleanOptions, timeout time.Duration) ([]docker.Image, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := opts.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.ListImages(ctx)
}
