package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/repository"
	"github.com/Anas-en/College-event-management/internal/store"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type staticSource []domain.Event

func (s staticSource) Fetch(context.Context) ([]domain.Event, error) {
	return s, nil
}

type downBackend struct{}

func (downBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection reset")
}

func (downBackend) Set(context.Context, string, []byte) error {
	return errors.New("connection reset")
}

// keyDownBackend fails reads of one key and delegates the rest.
type keyDownBackend struct {
	*repository.MemoryRepository
	down string
}

func (b keyDownBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == b.down {
		return nil, false, errors.New("connection reset")
	}
	return b.MemoryRepository.Get(ctx, key)
}

func newStore(t *testing.T, events ...domain.Event) *store.Store {
	t.Helper()
	s := store.New(repository.NewMemoryRepo(), staticSource(nil), nil, newTestLogger(t))
	if events != nil {
		require.NoError(t, s.SaveEvents(context.Background(), events))
	}
	return s
}

func newDownStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(downBackend{}, staticSource(nil), nil, newTestLogger(t))
}

func sampleEvents() []domain.Event {
	return []domain.Event{
		{ID: "1", Title: "Jazz Night", Category: "Music", Location: "Hall A", Date: "2099-03-01", Time: "19:00", Capacity: 80, Tags: []string{"live"}},
		{ID: "2", Title: "Hackathon", Category: "Tech", Location: "Lab 3", Date: "2099-01-20", Time: "09:00", Capacity: 50, Tags: []string{}},
		{ID: "3", Title: "Alumni Choir", Category: "Music", Location: "Chapel", Date: "2001-12-10", Time: "18:00", Capacity: 30, Tags: []string{}},
	}
}

func newEventService(t *testing.T, s *store.Store, cascade bool) *EventService {
	t.Helper()
	return NewEventService(s, &sync.Mutex{}, nil, cascade, newTestLogger(t))
}
