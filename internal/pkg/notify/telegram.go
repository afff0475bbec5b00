// internal/pkg/notify/telegram.go
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Telegram sends merchant alerts through a Telegram bot to a fixed chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram creates a Telegram notifier from config.
func NewTelegram(cfg *config.Config) (*Telegram, error) {
	if cfg.Notify.TelegramToken == "" {
		return nil, fmt.Errorf("telegram token is not configured")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Notify.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: cfg.Notify.TelegramChatID}, nil
}

// NotifyNewOrder posts a short order alert to the merchant chat.
func (t *Telegram) NotifyNewOrder(ctx context.Context, storeName string, orderID uint, customerName, total string) error {
	text := fmt.Sprintf("🛎 New order #%d at %s\nCustomer: %s\nTotal: %s",
		orderID, storeName, customerName, total)

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		metrics.NotificationsSentTotal.WithLabelValues("telegram", "error").Inc()
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	metrics.NotificationsSentTotal.WithLabelValues("telegram", "ok").Inc()
	return nil
}
