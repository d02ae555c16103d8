package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type RegistrationService struct {
	store    ports.CollectionStore
	mu       sync.Locker
	notifier ports.RegistrationNotifier
	logger   logger.Logger
	now      func() time.Time
}

func NewRegistrationService(
	store ports.CollectionStore,
	mu sync.Locker,
	notifier ports.RegistrationNotifier,
	logger logger.Logger,
) *RegistrationService {
	return &RegistrationService{
		store:    store,
		mu:       mu,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RegistrationService) Register(ctx context.Context, input domain.CreateRegistrationInput) (*domain.Registration, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	reg, event, err := s.add(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("registration created",
		logger.String("registration_id", reg.ID.String()),
		logger.String("event_id", reg.EventID.String()),
	)

	if s.notifier != nil {
		go s.notifier.NotifyRegistrationCreated(context.WithoutCancel(ctx), reg, event)
	}

	return reg, nil
}

func (s *RegistrationService) add(ctx context.Context, input domain.CreateRegistrationInput) (*domain.Registration, *domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evSnap := s.store.Events(ctx)
	if evSnap.Status == domain.LoadUnavailable {
		return nil, nil, fmt.Errorf("add registration: %w", domain.ErrStorageUnavailable)
	}
	events := evSnap.Items
	i := indexOfEvent(events, input.EventID)
	if i < 0 {
		return nil, nil, domain.ErrEventNotFound
	}
	event := events[i]

	snap := s.store.Registrations(ctx)
	if snap.Status == domain.LoadUnavailable {
		return nil, nil, fmt.Errorf("add registration: %w", domain.ErrStorageUnavailable)
	}

	reg := domain.Registration{
		ID:        newID(registrationIDPrefix),
		EventID:   event.ID,
		Name:      input.Name,
		Email:     input.Email,
		Notes:     input.Notes,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.SaveRegistrations(ctx, append(snap.Items, reg)); err != nil {
		return nil, nil, fmt.Errorf("add registration: %w", err)
	}

	return &reg, &event, nil
}

// Delete removes the registration if present; unknown ids are a no-op.
func (s *RegistrationService) Delete(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Registrations(ctx)
	if snap.Status == domain.LoadUnavailable {
		return fmt.Errorf("delete registration: %w", domain.ErrStorageUnavailable)
	}

	kept := make([]domain.Registration, 0, len(snap.Items))
	for _, r := range snap.Items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if err := s.store.SaveRegistrations(ctx, kept); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	if len(kept) < len(snap.Items) {
		s.logger.Info("registration deleted", logger.String("registration_id", id.String()))
	}

	return nil
}

// List resolves every registration against the current events. Dangling
// references keep the raw event id as the title.
func (s *RegistrationService) List(ctx context.Context) []domain.RegistrationView {
	titles := make(map[domain.ID]string)
	for _, e := range s.store.Events(ctx).Items {
		titles[e.ID] = e.Title
	}

	regs := s.store.Registrations(ctx).Items
	res := make([]domain.RegistrationView, 0, len(regs))
	for _, r := range regs {
		view := domain.RegistrationView{Registration: r, EventTitle: r.EventID.String()}
		if title, ok := titles[r.EventID]; ok {
			view.EventTitle = title
			view.EventFound = true
		}
		res = append(res, view)
	}

	return res
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID domain.ID) []domain.Registration {
	res := make([]domain.Registration, 0)
	for _, r := range s.store.Registrations(ctx).Items {
		if r.EventID == eventID {
			res = append(res, r)
		}
	}
	return res
}
