package notification

import (
	"context"
	"fmt"

	"github.com/Anas-en/College-event-management/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts new registrations to an organiser chat.
type TelegramNotifier struct {
	bot    sender
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		logger.Warn("telegram bot token or chat id is empty, notifications disabled")
		return &TelegramNotifier{logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) Enabled() bool {
	return n.bot != nil
}

func (n *TelegramNotifier) NotifyRegistrationCreated(ctx context.Context, reg *domain.Registration, event *domain.Event) {
	n.send(ctx, FormatRegistration(reg, event))
}

// FormatRegistration renders the organiser message for a new registration.
func FormatRegistration(reg *domain.Registration, event *domain.Event) string {
	text := fmt.Sprintf(
		"*New registration*\n\n"+"Event: %s\n"+"Date: %s %s\n"+"Name: %s\n"+"Email: %s",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, event.Title),
		event.Date, event.Time,
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, reg.Name),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, reg.Email),
	)
	if reg.Notes != "" {
		text += "\nNotes: " + tgbotapi.EscapeText(tgbotapi.ModeMarkdown, reg.Notes)
	}
	return text
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
	}
}
