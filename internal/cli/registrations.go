package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/handler/dto"
	"github.com/spf13/cobra"
)

func NewRegistrationsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"regs"},
		Short:   "List, add and delete registrations",
	}

	cmd.AddCommand(newRegistrationsListCommand(opts))
	cmd.AddCommand(newRegistrationsAddCommand(opts))
	cmd.AddCommand(newRegistrationsDeleteCommand(opts))

	return cmd
}

func newRegistrationsListCommand(opts *RootOptions) *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registrations with their event titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				views := s.Registrations.List(ctx)
				if eventID != "" {
					filtered := views[:0]
					for _, v := range views {
						if v.Registration.EventID == domain.ID(eventID) {
							filtered = append(filtered, v)
						}
					}
					views = filtered
				}

				resp := make([]dto.RegistrationViewResponse, 0, len(views))
				for i := range views {
					resp = append(resp, dto.ToRegistrationViewResponse(&views[i]))
				}
				return f.Success(resp, func(w io.Writer) error {
					return writeRegistrationTable(w, views)
				})
			})
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "only registrations for this event id")

	return cmd
}

func newRegistrationsAddCommand(opts *RootOptions) *cobra.Command {
	var input struct {
		eventID string
		name    string
		email   string
		notes   string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register someone for an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				reg, err := s.Registrations.Register(ctx, domain.CreateRegistrationInput{
					EventID: domain.ID(input.eventID),
					Name:    input.name,
					Email:   input.email,
					Notes:   input.notes,
				})
				if err != nil {
					return f.Fail("add registration", err)
				}
				return f.Success(dto.ToRegistrationResponse(reg), func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "registered %s for event %s as %s\n", reg.Name, reg.EventID, reg.ID)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&input.eventID, "event", "", "event id")
	cmd.Flags().StringVar(&input.name, "name", "", "attendee name")
	cmd.Flags().StringVar(&input.email, "email", "", "attendee email")
	cmd.Flags().StringVar(&input.notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newRegistrationsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				if err := s.Registrations.Delete(ctx, domain.ID(args[0])); err != nil {
					return f.Fail("delete registration "+args[0], err)
				}
				return f.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "deleted registration %s\n", args[0])
					return err
				})
			})
		},
	}
}

func writeRegistrationTable(w io.Writer, views []domain.RegistrationView) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEVENT\tNAME\tEMAIL\tREGISTERED")
	for _, v := range views {
		title := v.EventTitle
		if !v.EventFound {
			title += " (deleted)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			v.Registration.ID, title, v.Registration.Name, v.Registration.Email,
			v.Registration.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
