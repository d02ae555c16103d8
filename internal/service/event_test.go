package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/repository"
	"github.com/Anas-en/College-event-management/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_Upsert_NewRecord(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	svc := newEventService(t, st, false)

	e := domain.Event{ID: "e_new", Title: "Film Club", Category: "Film", Location: "Room 9", Date: "2099-05-05", Time: "20:00", Capacity: 25, Description: "Noir double bill", Tags: []string{"film"}}

	saved, created, err := svc.Upsert(ctx, e)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, e, *saved)

	events := st.Events(ctx).Items
	require.Len(t, events, 4)
	matches := 0
	for _, got := range events {
		if got.ID == e.ID {
			matches++
			assert.Equal(t, e, got)
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, e, events[3], "new events are appended")
}

func TestEventService_Upsert_ReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	svc := newEventService(t, st, false)

	edited := sampleEvents()[1]
	edited.Title = "Hackathon 2099"
	edited.Capacity = 75

	_, created, err := svc.Upsert(ctx, edited)

	require.NoError(t, err)
	assert.False(t, created)
	events := st.Events(ctx).Items
	require.Len(t, events, 3)
	assert.Equal(t, edited, events[1])
}

func TestEventService_Upsert_GeneratesID(t *testing.T) {
	svc := newEventService(t, newStore(t), false)

	first, _, err := svc.Upsert(context.Background(), domain.Event{Title: "A", Capacity: 1})
	require.NoError(t, err)
	second, _, err := svc.Upsert(context.Background(), domain.Event{Title: "B", Capacity: 1})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.ID.String(), "e_"))
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotNil(t, first.Tags)
}

func TestEventService_Upsert_Validation(t *testing.T) {
	svc := newEventService(t, newStore(t), false)

	_, _, err := svc.Upsert(context.Background(), domain.Event{Title: "  ", Capacity: 10})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.Upsert(context.Background(), domain.Event{Title: "Talk", Capacity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventService_Upsert_StorageUnavailable(t *testing.T) {
	svc := newEventService(t, newDownStore(t), false)

	_, _, err := svc.Upsert(context.Background(), domain.Event{Title: "Talk", Capacity: 10})

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestEventService_Upsert_OverwritesCorruptCollection(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryRepo()
	require.NoError(t, backend.Set(ctx, store.EventsKey, []byte(`{oops`)))
	st := store.New(backend, staticSource(nil), nil, newTestLogger(t))
	svc := newEventService(t, st, false)

	_, _, err := svc.Upsert(ctx, domain.Event{ID: "1", Title: "Talk", Capacity: 10})

	require.NoError(t, err)
	assert.Len(t, st.Events(ctx).Items, 1)
}

func TestEventService_Upsert_KeepsRecordsWithMistypedFields(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryRepo()
	require.NoError(t, backend.Set(ctx, store.EventsKey, []byte(`[
		{"id":"1","title":"Jazz Night","date":"2099-03-01","capacity":10},
		{"id":"2","title":"Hackathon","date":"2099-01-20","capacity":"10"}
	]`)))
	st := store.New(backend, staticSource(nil), nil, newTestLogger(t))
	svc := newEventService(t, st, false)

	_, created, err := svc.Upsert(ctx, domain.Event{ID: "3", Title: "Talk", Capacity: 5})

	require.NoError(t, err)
	assert.True(t, created)
	events := st.Events(ctx).Items
	require.Len(t, events, 3)
	assert.Equal(t, domain.ID("1"), events[0].ID)
	assert.Equal(t, domain.ID("2"), events[1].ID)
	assert.Equal(t, 10, events[1].Capacity)
	assert.Equal(t, domain.ID("3"), events[2].ID)
}

func TestEventService_Delete_Present(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	svc := newEventService(t, st, false)

	require.NoError(t, svc.Delete(ctx, "2"))

	events := st.Events(ctx).Items
	assert.Len(t, events, 2)
	for _, e := range events {
		assert.NotEqual(t, domain.ID("2"), e.ID)
	}
}

func TestEventService_Delete_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	svc := newEventService(t, st, false)

	require.NoError(t, svc.Delete(ctx, "missing"))
	require.NoError(t, svc.Delete(ctx, "missing"))

	assert.Equal(t, sampleEvents(), st.Events(ctx).Items)
}

func TestEventService_Delete_KeepsRegistrationsByDefault(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	require.NoError(t, st.SaveRegistrations(ctx, []domain.Registration{
		{ID: "r_1", EventID: "1", Name: "Ada"},
		{ID: "r_2", EventID: "2", Name: "Grace"},
	}))
	svc := newEventService(t, st, false)

	require.NoError(t, svc.Delete(ctx, "1"))

	assert.Len(t, st.Registrations(ctx).Items, 2)
}

func TestEventService_Delete_Cascade(t *testing.T) {
	ctx := context.Background()
	st := newStore(t, sampleEvents()...)
	require.NoError(t, st.SaveRegistrations(ctx, []domain.Registration{
		{ID: "r_1", EventID: "1", Name: "Ada"},
		{ID: "r_2", EventID: "2", Name: "Grace"},
		{ID: "r_3", EventID: "1", Name: "Linus"},
	}))
	svc := newEventService(t, st, true)

	require.NoError(t, svc.Delete(ctx, "1"))

	regs := st.Registrations(ctx).Items
	require.Len(t, regs, 1)
	assert.Equal(t, domain.ID("r_2"), regs[0].ID)
}

func TestEventService_Delete_CascadeKeepsEventWhenRegistrationsUnreadable(t *testing.T) {
	ctx := context.Background()
	backend := keyDownBackend{MemoryRepository: repository.NewMemoryRepo(), down: store.RegistrationsKey}
	st := store.New(backend, staticSource(nil), nil, newTestLogger(t))
	require.NoError(t, st.SaveEvents(ctx, sampleEvents()))
	svc := newEventService(t, st, true)

	err := svc.Delete(ctx, "1")

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, sampleEvents(), st.Events(ctx).Items)
}

func TestEventService_Delete_StorageUnavailable(t *testing.T) {
	svc := newEventService(t, newDownStore(t), false)

	assert.ErrorIs(t, svc.Delete(context.Background(), "1"), domain.ErrStorageUnavailable)
}

func TestEventService_List_EmptyFilterSortedByDate(t *testing.T) {
	svc := newEventService(t, newStore(t, sampleEvents()...), false)

	res := svc.List(context.Background(), domain.EventFilter{})

	require.Len(t, res, 3)
	assert.Equal(t, []domain.ID{"3", "2", "1"}, []domain.ID{res[0].ID, res[1].ID, res[2].ID})
}

func TestEventService_List_Music(t *testing.T) {
	svc := newEventService(t, newStore(t, sampleEvents()...), false)

	res := svc.List(context.Background(), domain.EventFilter{Category: "Music"})

	require.Len(t, res, 2)
	assert.Equal(t, domain.ID("3"), res[0].ID)
	assert.Equal(t, domain.ID("1"), res[1].ID)
}

func TestEventService_List_UpcomingUsesClock(t *testing.T) {
	svc := newEventService(t, newStore(t, sampleEvents()...), false)
	svc.now = func() time.Time { return time.Date(2099, 2, 1, 8, 0, 0, 0, time.UTC) }

	res := svc.List(context.Background(), domain.EventFilter{When: domain.WindowUpcoming})

	require.Len(t, res, 1)
	assert.Equal(t, domain.ID("1"), res[0].ID)
}

func TestEventService_List_NoData(t *testing.T) {
	svc := newEventService(t, newStore(t), false)

	res := svc.List(context.Background(), domain.EventFilter{Query: "jazz"})

	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestEventService_Get(t *testing.T) {
	svc := newEventService(t, newStore(t, sampleEvents()...), false)

	e, err := svc.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Hackathon", e.Title)

	_, err = svc.Get(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_Categories(t *testing.T) {
	svc := newEventService(t, newStore(t, sampleEvents()...), false)

	assert.Equal(t, []string{"Music", "Tech"}, svc.Categories(context.Background()))
}

func TestEventService_Bootstrap(t *testing.T) {
	st := newStore(t)
	svc := NewEventService(st, &sync.Mutex{}, time.UTC, false, newTestLogger(t))

	res := svc.Bootstrap(context.Background())

	assert.Equal(t, domain.BootstrapSeeded, res.Outcome)
	assert.Equal(t, domain.BootstrapExisting, svc.Bootstrap(context.Background()).Outcome)
}
