package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/spf13/cobra"
)

var errSeedFailed = errors.New("seed source could not be loaded")

type seedResult struct {
	Outcome domain.BootstrapOutcome `json:"outcome"`
	Events  int                     `json:"events"`
}

// NewSeedCommand loads the seed document into empty storage and reports
// what happened. Existing events are never overwritten.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty events collection from the seed source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(_ context.Context, _ *Session, boot domain.BootstrapResult) error {
				if boot.Outcome == domain.BootstrapFailed {
					return f.Fail("seed", errSeedFailed)
				}
				res := seedResult{Outcome: boot.Outcome, Events: len(boot.Events)}
				return f.Success(res, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s: %d events\n", res.Outcome, res.Events)
					return err
				})
			})
		},
	}
}
