package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/Anas-en/College-event-management/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
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

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

var (
	testEvent = &domain.Event{ID: "e_1", Title: "Open_Mic", Date: "2099-01-01", Time: "19:00"}
	testReg   = &domain.Registration{ID: "r_1", EventID: "e_1", Name: "Ada", Email: "ada@college.edu"}
)

func TestNewTelegramNotifier_DisabledWithoutToken(t *testing.T) {
	n, err := NewTelegramNotifier("", 42, newTestLogger(t))
	require.NoError(t, err)
	assert.False(t, n.Enabled())

	n.NotifyRegistrationCreated(context.Background(), testReg, testEvent)
}

func TestNewTelegramNotifier_DisabledWithoutChat(t *testing.T) {
	n, err := NewTelegramNotifier("token", 0, newTestLogger(t))
	require.NoError(t, err)
	assert.False(t, n.Enabled())
}

func TestTelegramNotifier_Sends(t *testing.T) {
	fs := &fakeSender{}
	n := &TelegramNotifier{bot: fs, chatID: 42, logger: newTestLogger(t)}

	n.NotifyRegistrationCreated(context.Background(), testReg, testEvent)

	require.Len(t, fs.sent, 1)
	assert.Equal(t, int64(42), fs.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, fs.sent[0].ParseMode)
	assert.Contains(t, fs.sent[0].Text, `Open\_Mic`)
}

func TestTelegramNotifier_SkipsCancelledContext(t *testing.T) {
	fs := &fakeSender{}
	n := &TelegramNotifier{bot: fs, chatID: 42, logger: newTestLogger(t)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.NotifyRegistrationCreated(ctx, testReg, testEvent)

	assert.Empty(t, fs.sent)
}

func TestTelegramNotifier_SendErrorIsLogged(t *testing.T) {
	fs := &fakeSender{err: errors.New("telegram down")}
	n := &TelegramNotifier{bot: fs, chatID: 42, logger: newTestLogger(t)}

	assert.NotPanics(t, func() {
		n.NotifyRegistrationCreated(context.Background(), testReg, testEvent)
	})
	assert.Len(t, fs.sent, 1)
}

func TestFormatRegistration_IncludesNotes(t *testing.T) {
	reg := *testReg
	reg.Notes = "vegetarian"

	text := FormatRegistration(&reg, testEvent)

	assert.Contains(t, text, "Notes: vegetarian")
	assert.Contains(t, text, "Date: 2099-01-01 19:00")
}
