package main

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"memtrack/internal/format"
)

// Notifier is the outbound alert sink. Delivery is fire-and-forget; a failed
// send is logged and never fails the classification cycle that emitted it.
type Notifier interface {
	Notify(title, message string) error
}

// safeNotify sends a notification and logs any error.
func safeNotify(n Notifier, title, message string) {
	if n == nil {
		return
	}
	if err := n.Notify(title, message); err != nil {
		slog.Error("Notification send failed", "title", title, "err", err)
	}
}

// highMemoryMessage renders the body shared by both notification kinds.
func highMemoryMessage(name string, memoryMB float64, recommendation string) string {
	return fmt.Sprintf("%s is using %s of memory.\n%s", name, format.FormatMB(memoryMB), recommendation)
}

// telegramNotifier delivers alerts through a Telegram bot chat.
type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects the bot and returns the sink.
func NewTelegramNotifier(token string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	slog.Info("Telegram notifier ready", "bot", bot.Self.UserName)
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *telegramNotifier) Notify(title, message string) error {
	m := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("*%s*\n\n%s", title, message))
	m.ParseMode = "Markdown"
	_, err := t.bot.Send(m)
	return err
}

// logNotifier writes alerts to the structured log. It is the fallback sink
// when no Telegram bot is configured.
type logNotifier struct{}

func (logNotifier) Notify(title, message string) error {
	slog.Warn(title, "detail", message)
	return nil
}
