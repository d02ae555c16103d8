package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/handler/dto"
	"github.com/spf13/cobra"
)

func NewEventsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, show, create, update and delete events",
	}

	cmd.AddCommand(newEventsListCommand(opts))
	cmd.AddCommand(newEventsShowCommand(opts))
	cmd.AddCommand(newEventsPutCommand(opts))
	cmd.AddCommand(newEventsDeleteCommand(opts))

	return cmd
}

func newEventsListCommand(opts *RootOptions) *cobra.Command {
	var filter struct {
		query    string
		category string
		when     string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events sorted by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				events := s.Events.List(ctx, domain.EventFilter{
					Query:    filter.query,
					Category: filter.category,
					When:     domain.ParseDateWindow(filter.when),
				})
				return f.Success(dto.ToEventsResponse(events), func(w io.Writer) error {
					return writeEventTable(w, events)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&filter.query, "query", "q", "", "case-insensitive text search")
	cmd.Flags().StringVar(&filter.category, "category", "", "exact category")
	cmd.Flags().StringVar(&filter.when, "when", "", "date window (upcoming|past)")

	return cmd
}

func newEventsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				event, err := s.Events.Get(ctx, domain.ID(args[0]))
				if err != nil {
					return f.Fail("show event "+args[0], err)
				}
				return f.Success(dto.ToEventResponse(event), func(w io.Writer) error {
					return writeEventDetails(w, event)
				})
			})
		},
	}
}

func newEventsPutCommand(opts *RootOptions) *cobra.Command {
	var (
		event domain.Event
		id    string
		tags  string
	)

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Create an event, or replace the one with --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			event.ID = domain.ID(strings.TrimSpace(id))
			event.Title = strings.TrimSpace(event.Title)
			event.Category = strings.TrimSpace(event.Category)
			event.Location = strings.TrimSpace(event.Location)
			event.Tags = domain.ParseTags(tags)

			if err := validateSchedule(event.Date, event.Time); err != nil {
				return f.Fail("put event", err)
			}

			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				saved, created, err := s.Events.Upsert(ctx, event)
				if err != nil {
					return f.Fail("put event", err)
				}
				verb := "updated"
				if created {
					verb = "created"
				}
				return f.Success(dto.ToEventResponse(saved), func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s event %s\n", verb, saved.ID)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the event to replace")
	cmd.Flags().StringVar(&event.Title, "title", "", "title")
	cmd.Flags().StringVar(&event.Category, "category", "", "category")
	cmd.Flags().StringVar(&event.Location, "location", "", "location")
	cmd.Flags().StringVar(&event.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&event.Time, "time", "", "start time (HH:MM)")
	cmd.Flags().IntVar(&event.Capacity, "capacity", 0, "number of seats")
	cmd.Flags().StringVar(&event.Description, "description", "", "description")
	cmd.Flags().StringVar(&tags, "tags", "", "comma separated tags")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("capacity")

	return cmd
}

func newEventsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				if err := s.Events.Delete(ctx, domain.ID(args[0])); err != nil {
					return f.Fail("delete event "+args[0], err)
				}
				return f.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "deleted event %s\n", args[0])
					return err
				})
			})
		},
	}
}

func NewCategoriesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct event categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withSession(cmd, func(ctx context.Context, s *Session, _ domain.BootstrapResult) error {
				categories := s.Events.Categories(ctx)
				return f.Success(categories, func(w io.Writer) error {
					for _, c := range categories {
						if _, err := fmt.Fprintln(w, c); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func validateSchedule(date, clock string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", domain.ErrValidation, date)
	}
	if clock == "" {
		return nil
	}
	if _, err := time.Parse(domain.TimeLayout, clock); err != nil {
		return fmt.Errorf("%w: invalid time %q, expected HH:MM", domain.ErrValidation, clock)
	}
	return nil
}

func writeEventTable(w io.Writer, events []domain.Event) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tCATEGORY\tTITLE\tLOCATION\tCAPACITY")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Date, e.Time, e.Category, e.Title, e.Location, e.Capacity)
	}
	return tw.Flush()
}

func writeEventDetails(w io.Writer, e *domain.Event) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", e.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", e.Title)
	fmt.Fprintf(tw, "Category:\t%s\n", e.Category)
	fmt.Fprintf(tw, "When:\t%s %s\n", e.Date, e.Time)
	fmt.Fprintf(tw, "Location:\t%s\n", e.Location)
	fmt.Fprintf(tw, "Capacity:\t%d\n", e.Capacity)
	fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(e.Tags, ", "))
	fmt.Fprintf(tw, "Description:\t%s\n", e.Description)
	return tw.Flush()
}
