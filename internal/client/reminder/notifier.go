package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers a reminder text somewhere the user will see it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// ConsoleNotifier prints reminders to w (the REPL output).
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Notify(ctx context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "\n[reminder] %s\n", text)
	return err
}

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// newBotAPI is swapped in tests; the real constructor calls getMe.
var newBotAPI = func(token string) (botSender, error) {
	return tgbotapi.NewBotAPI(token)
}

// TelegramNotifier sends reminders to one chat through a bot.
type TelegramNotifier struct {
	bot    botSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := newBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
