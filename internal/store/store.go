// Package store keeps the event and registration collections in a key-value
// backend. Every collection is read and written as a whole JSON array under a
// single key, and every read returns a freshly decoded copy.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/wb-go/wbf/logger"
)

const (
	EventsKey        = "cem_events"
	RegistrationsKey = "cem_registrations"
)

const (
	EventsCollection        = "events"
	RegistrationsCollection = "registrations"
)

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type SeedSource interface {
	Fetch(ctx context.Context) ([]domain.Event, error)
}

// Observer receives the outcome of every load, save and bootstrap.
type Observer interface {
	ObserveLoad(collection string, status domain.LoadStatus, size int)
	ObserveSave(collection string, size int)
	ObserveBootstrap(outcome domain.BootstrapOutcome)
}

type Store struct {
	backend  Backend
	seed     SeedSource
	observer Observer
	logger   logger.Logger
}

func New(backend Backend, seed SeedSource, observer Observer, logger logger.Logger) *Store {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Store{
		backend:  backend,
		seed:     seed,
		observer: observer,
		logger:   logger,
	}
}

// BootstrapEvents returns the stored events, seeding the collection first if
// nothing usable is stored. A failed seed is not persisted so that a later
// call can try again.
func (s *Store) BootstrapEvents(ctx context.Context) domain.BootstrapResult {
	current := s.Events(ctx)

	switch current.Status {
	case domain.LoadOK:
		s.observer.ObserveBootstrap(domain.BootstrapExisting)
		return domain.BootstrapResult{Events: current.Items, Outcome: domain.BootstrapExisting}
	case domain.LoadUnavailable:
		return s.bootstrapFailed()
	case domain.LoadRecovered:
		s.logger.Warn("stored events are unreadable, reseeding")
	}

	events, err := s.seed.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to load seed events",
			logger.String("error", err.Error()),
		)
		return s.bootstrapFailed()
	}

	if err = s.SaveEvents(ctx, events); err != nil {
		s.logger.Error("failed to persist seed events",
			logger.String("error", err.Error()),
		)
		return s.bootstrapFailed()
	}

	s.logger.Info("events seeded", logger.Int("count", len(events)))
	s.observer.ObserveBootstrap(domain.BootstrapSeeded)

	return domain.BootstrapResult{Events: events, Outcome: domain.BootstrapSeeded}
}

func (s *Store) bootstrapFailed() domain.BootstrapResult {
	s.observer.ObserveBootstrap(domain.BootstrapFailed)
	return domain.BootstrapResult{Events: []domain.Event{}, Outcome: domain.BootstrapFailed}
}

func (s *Store) Events(ctx context.Context) domain.Snapshot[domain.Event] {
	return load[domain.Event](ctx, s, EventsCollection, EventsKey)
}

func (s *Store) Registrations(ctx context.Context) domain.Snapshot[domain.Registration] {
	return load[domain.Registration](ctx, s, RegistrationsCollection, RegistrationsKey)
}

func (s *Store) SaveEvents(ctx context.Context, events []domain.Event) error {
	return save(ctx, s, EventsCollection, EventsKey, events)
}

func (s *Store) SaveRegistrations(ctx context.Context, registrations []domain.Registration) error {
	return save(ctx, s, RegistrationsCollection, RegistrationsKey, registrations)
}

func load[T any](ctx context.Context, s *Store, collection, key string) domain.Snapshot[T] {
	snap := domain.Snapshot[T]{Items: []T{}}

	raw, ok, err := s.backend.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.LogAttrs(ctx, logger.ErrorLevel, "collection read failed",
			logger.String("collection", collection),
			logger.String("error", err.Error()),
		)
		snap.Status = domain.LoadUnavailable
	case !ok || len(raw) == 0:
		snap.Status = domain.LoadAbsent
	default:
		var elems []json.RawMessage
		if err = json.Unmarshal(raw, &elems); err != nil {
			s.logger.LogAttrs(ctx, logger.WarnLevel, "collection corrupt, using empty",
				logger.String("collection", collection),
				logger.String("error", err.Error()),
			)
			snap.Status = domain.LoadRecovered
			break
		}
		snap.Items = decodeItems[T](ctx, s, collection, elems)
		snap.Status = domain.LoadOK
	}

	s.observer.ObserveLoad(collection, snap.Status, len(snap.Items))
	return snap
}

// decodeItems decodes each element on its own so one unreadable record
// does not hide the rest. Elements that are not objects are dropped.
func decodeItems[T any](ctx context.Context, s *Store, collection string, elems []json.RawMessage) []T {
	items := make([]T, 0, len(elems))
	skipped := 0
	for _, raw := range elems {
		if !isObject(raw) {
			skipped++
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}

	if skipped > 0 {
		s.logger.LogAttrs(ctx, logger.WarnLevel, "skipped unreadable records",
			logger.String("collection", collection),
			logger.Int("skipped", skipped),
		)
	}
	return items
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func save[T any](ctx context.Context, s *Store, collection, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	if err = s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}

	s.observer.ObserveSave(collection, len(items))
	return nil
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(string, domain.LoadStatus, int) {}
func (nopObserver) ObserveSave(string, int)                    {}
func (nopObserver) ObserveBootstrap(domain.BootstrapOutcome)   {}
