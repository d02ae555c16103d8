package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/spf13/cobra"
)

type EventService interface {
	Bootstrap(ctx context.Context) domain.BootstrapResult
	List(ctx context.Context, filter domain.EventFilter) []domain.Event
	Get(ctx context.Context, id domain.ID) (*domain.Event, error)
	Categories(ctx context.Context) []string
	Upsert(ctx context.Context, event domain.Event) (*domain.Event, bool, error)
	Delete(ctx context.Context, id domain.ID) error
}

type RegistrationService interface {
	Register(ctx context.Context, input domain.CreateRegistrationInput) (*domain.Registration, error)
	Delete(ctx context.Context, id domain.ID) error
	List(ctx context.Context) []domain.RegistrationView
	ListByEvent(ctx context.Context, eventID domain.ID) []domain.Registration
}

// Session is an open set of services. Close releases the storage behind them.
type Session struct {
	Events        EventService
	Registrations RegistrationService
	Close         func() error
}

type Opener func(ctx context.Context) (*Session, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string

	open Opener
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "eventctl",
		Short: "Manage college events and registrations",
		Long: `eventctl reads and edits the same event and registration collections
the event_board server uses. Storage is selected by the server config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return &ExitError{
					Code:    ExitCommandError,
					Message: fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats),
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewRegistrationsCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// withSession opens the services, loads the events collection the way the
// board does on start and runs fn.
func (o *RootOptions) withSession(
	cmd *cobra.Command,
	fn func(ctx context.Context, s *Session, boot domain.BootstrapResult) error,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := o.open(ctx)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "open storage", Err: err}
	}
	defer func() {
		if s.Close != nil {
			_ = s.Close()
		}
	}()

	boot := s.Events.Bootstrap(ctx)
	return fn(ctx, s, boot)
}
