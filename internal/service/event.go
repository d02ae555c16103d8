package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/query"
	"github.com/Anas-en/College-event-management/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

const (
	eventIDPrefix        = "e_"
	registrationIDPrefix = "r_"
)

type EventService struct {
	store   ports.CollectionStore
	mu      sync.Locker
	loc     *time.Location
	cascade bool
	logger  logger.Logger
	now     func() time.Time
}

// NewEventService builds the event service. mu must be shared with the
// registration service so that cascading deletes cannot interleave with
// new registrations.
func NewEventService(
	store ports.CollectionStore,
	mu sync.Locker,
	loc *time.Location,
	cascade bool,
	logger logger.Logger,
) *EventService {
	if loc == nil {
		loc = time.Local
	}
	return &EventService{
		store:   store,
		mu:      mu,
		loc:     loc,
		cascade: cascade,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *EventService) Bootstrap(ctx context.Context) domain.BootstrapResult {
	return s.store.BootstrapEvents(ctx)
}

func (s *EventService) List(ctx context.Context, filter domain.EventFilter) []domain.Event {
	events := s.store.Events(ctx).Items
	return query.Apply(events, filter, s.now().In(s.loc))
}

func (s *EventService) Get(ctx context.Context, id domain.ID) (*domain.Event, error) {
	events := s.store.Events(ctx).Items
	if i := indexOfEvent(events, id); i >= 0 {
		return &events[i], nil
	}
	return nil, domain.ErrEventNotFound
}

func (s *EventService) Categories(ctx context.Context) []string {
	return query.Categories(s.store.Events(ctx).Items)
}

// Upsert replaces the event with the same id in place or appends it, and
// reports whether it was appended. An empty id gets a freshly generated one.
func (s *EventService) Upsert(ctx context.Context, event domain.Event) (*domain.Event, bool, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, false, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if event.Capacity < 1 {
		return nil, false, fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}
	if event.ID == "" {
		event.ID = newID(eventIDPrefix)
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Events(ctx)
	if snap.Status == domain.LoadUnavailable {
		return nil, false, fmt.Errorf("upsert event: %w", domain.ErrStorageUnavailable)
	}

	events := snap.Items
	created := false
	if i := indexOfEvent(events, event.ID); i >= 0 {
		events[i] = event
	} else {
		events = append(events, event)
		created = true
	}

	if err := s.store.SaveEvents(ctx, events); err != nil {
		return nil, false, fmt.Errorf("upsert event: %w", err)
	}

	s.logger.Info("event saved",
		logger.String("event_id", event.ID.String()),
		logger.Any("created", created),
	)

	return &event, created, nil
}

// Delete removes the event if present. Deleting an unknown id still
// rewrites the unchanged collection. With cascade on, both collections are
// read before anything is written, so an unreadable registrations
// collection leaves the event in place.
func (s *EventService) Delete(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Events(ctx)
	if snap.Status == domain.LoadUnavailable {
		return fmt.Errorf("delete event: %w", domain.ErrStorageUnavailable)
	}

	kept := make([]domain.Event, 0, len(snap.Items))
	for _, e := range snap.Items {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(snap.Items) - len(kept)

	var regs domain.Snapshot[domain.Registration]
	cascade := s.cascade && removed > 0
	if cascade {
		regs = s.store.Registrations(ctx)
		if regs.Status == domain.LoadUnavailable {
			return fmt.Errorf("delete event: registrations: %w", domain.ErrStorageUnavailable)
		}
	}

	if err := s.store.SaveEvents(ctx, kept); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if removed > 0 {
		s.logger.Info("event deleted", logger.String("event_id", id.String()))
	}

	if cascade {
		s.deleteRegistrationsFor(ctx, id, regs.Items)
	}
	return nil
}

// deleteRegistrationsFor runs after the event is gone. A failed write is
// logged, not returned: the caller's delete already happened.
func (s *EventService) deleteRegistrationsFor(ctx context.Context, eventID domain.ID, regs []domain.Registration) {
	kept := make([]domain.Registration, 0, len(regs))
	for _, r := range regs {
		if r.EventID != eventID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(regs) {
		return
	}

	if err := s.store.SaveRegistrations(ctx, kept); err != nil {
		s.logger.Error("failed to remove registrations with event",
			logger.String("event_id", eventID.String()),
			logger.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("registrations removed with event",
		logger.String("event_id", eventID.String()),
		logger.Int("count", len(regs)-len(kept)),
	)
}

func indexOfEvent(events []domain.Event, id domain.ID) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}

func newID(prefix string) domain.ID {
	return domain.ID(prefix + uuid.New().String())
}
