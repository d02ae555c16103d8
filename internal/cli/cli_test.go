package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/repository"
	"github.com/Anas-en/College-event-management/internal/service"
	"github.com/Anas-en/College-event-management/internal/store"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
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

type staticSource struct {
	events []domain.Event
	err    error
}

func (s staticSource) Fetch(context.Context) ([]domain.Event, error) {
	return s.events, s.err
}

func fixtureEvents() []domain.Event {
	return []domain.Event{
		{ID: "1", Title: "Jazz Night", Category: "Music", Location: "Hall A", Date: "2099-05-01", Time: "19:00", Capacity: 80, Description: "Live quartet", Tags: []string{"jazz", "live"}},
		{ID: "2", Title: "Robotics Expo", Category: "Tech", Location: "Lab 3", Date: "2001-02-10", Time: "10:00", Capacity: 120, Description: "Student robots"},
		{ID: "3", Title: "Choir Concert", Category: "Music", Location: "Chapel", Date: "2099-01-15", Time: "18:30", Capacity: 60, Description: "Winter program", Tags: []string{"choir"}},
	}
}

// newTestOpener returns an opener over one shared in-memory backend so that
// consecutive commands see each other's writes.
func newTestOpener(t *testing.T, src staticSource) Opener {
	t.Helper()
	repo := repository.NewMemoryRepo()
	log := newTestLogger(t)

	return func(ctx context.Context) (*Session, error) {
		st := store.New(repo, src, nil, log)
		var mu sync.Mutex
		return &Session{
			Events:        service.NewEventService(st, &mu, time.UTC, false, log),
			Registrations: service.NewRegistrationService(st, &mu, nil, log),
			Close:         repo.Close,
		}, nil
	}
}

func run(open Opener, args ...string) (string, error) {
	cmd := NewRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, "eventctl", cmd.Use)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	commands := [][]string{
		{"events", "list"},
		{"events", "show"},
		{"events", "put"},
		{"events", "delete"},
		{"categories"},
		{"registrations", "list"},
		{"registrations", "add"},
		{"registrations", "delete"},
		{"seed"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(newTestOpener(t, staticSource{}), "--format", "xml", "categories")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEventsList_Golden(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}), "events", "list")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "events_list", []byte(out))
}

func TestEventsList_JSONGolden(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}), "--format", "json", "events", "list")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "events_list_json", []byte(out))
}

func TestEventsList_Filters(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	out, err := run(open, "--format", "json", "events", "list", "--category", "Music", "--when", "upcoming")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "3", resp.Data[0].ID)
	assert.Equal(t, "1", resp.Data[1].ID)

	out, err = run(open, "--format", "json", "events", "list", "-q", "ROBOT")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2", resp.Data[0].ID)
}

func TestEventsShow_Golden(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}), "events", "show", "1")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "events_show", []byte(out))
}

func TestEventsShow_NotFound(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}), "--format", "json", "events", "show", "404")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCategories_Golden(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}), "categories")
	require.NoError(t, err)

	newGoldie(t).Assert(t, "categories", []byte(out))
}

func TestEventsPut_CreateThenReplace(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	out, err := run(open, "--format", "json", "events", "put",
		"--title", "Poetry Slam", "--category", "Arts", "--location", "Cafe",
		"--date", "2099-09-09", "--time", "20:00", "--capacity", "30",
		"--tags", "words, , mic")
	require.NoError(t, err)

	var created struct {
		Data struct {
			ID   string   `json:"id"`
			Tags []string `json:"tags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Regexp(t, `^e_`, created.Data.ID)
	assert.Equal(t, []string{"words", "mic"}, created.Data.Tags)

	out, err = run(open, "events", "put", "--id", created.Data.ID,
		"--title", "Poetry Slam II", "--date", "2099-09-10", "--capacity", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "updated event "+created.Data.ID)

	out, err = run(open, "events", "show", created.Data.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Poetry Slam II")

	out, err = run(open, "--format", "json", "events", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte(created.Data.ID)))
}

func TestEventsPut_InvalidDate(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}),
		"events", "put", "--title", "X", "--date", "09/09/2099", "--capacity", "3")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [validation]")
}

func TestEventsDelete(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	_, err := run(open, "events", "delete", "2")
	require.NoError(t, err)

	out, err := run(open, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Music\n", out)
}

func TestRegistrations_AddListDelete(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	out, err := run(open, "--format", "json", "registrations", "add",
		"--event", "1", "--name", "Ada", "--email", "ada@college.edu")
	require.NoError(t, err)

	var added struct {
		Data struct {
			ID      string `json:"id"`
			EventID string `json:"event_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Regexp(t, `^r_`, added.Data.ID)
	assert.Equal(t, "1", added.Data.EventID)

	out, err = run(open, "registrations", "list", "--event", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Jazz Night")
	assert.Contains(t, out, "ada@college.edu")

	_, err = run(open, "registrations", "delete", added.Data.ID)
	require.NoError(t, err)

	out, err = run(open, "--format", "json", "registrations", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, out)
}

func TestRegistrations_DanglingEventShowsPlaceholder(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	_, err := run(open, "registrations", "add", "--event", "3", "--name", "Bo", "--email", "bo@college.edu")
	require.NoError(t, err)
	_, err = run(open, "events", "delete", "3")
	require.NoError(t, err)

	out, err := run(open, "registrations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3 (deleted)")
}

func TestRegistrationsAdd_UnknownEvent(t *testing.T) {
	_, err := run(newTestOpener(t, staticSource{events: fixtureEvents()}),
		"registrations", "add", "--event", "nope", "--name", "Ada", "--email", "ada@college.edu")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSeed(t *testing.T) {
	open := newTestOpener(t, staticSource{events: fixtureEvents()})

	out, err := run(open, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded: 3 events\n", out)

	out, err = run(open, "seed")
	require.NoError(t, err)
	assert.Equal(t, "existing: 3 events\n", out)
}

func TestSeed_SourceDown(t *testing.T) {
	out, err := run(newTestOpener(t, staticSource{err: errors.New("offline")}), "--format", "json", "seed")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeInternal, resp.Error.Code)
}

func TestOpenFailure(t *testing.T) {
	open := func(context.Context) (*Session, error) {
		return nil, errors.New("no database")
	}

	_, err := run(open, "categories")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError, Message: "x"}))
}
