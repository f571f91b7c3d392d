package handoff

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gateway sends a message to the fixed operator channel and returns the
// channel-assigned message identifier used for reply correlation.
type Gateway interface {
	Send(text string) (messageID int, err error)
}

// TelegramGateway implements Gateway against the Telegram Bot API, posting
// into a fixed agent group chat.
type TelegramGateway struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramGateway authorizes the bot. The HTTP client carries a bounded
// timeout so an unreachable Telegram API degrades a forward instead of
// hanging the request.
func NewTelegramGateway(token string, chatID int64, timeout time.Duration) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}

	slog.Info("telegram gateway authorized", "account", bot.Self.UserName, "chat_id", chatID)
	return &TelegramGateway{bot: bot, chatID: chatID}, nil
}

// Send posts text to the agent chat and returns Telegram's message id.
func (g *TelegramGateway) Send(text string) (int, error) {
	msg := tgbotapi.NewMessage(g.chatID, text)
	msg.DisableWebPagePreview = true

	sent, err := g.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send to agent chat: %w", err)
	}
	return sent.MessageID, nil
}

// Health reports bot identity and webhook registration, for the diagnostics
// endpoint.
func (g *TelegramGateway) Health() (map[string]any, error) {
	me, err := g.bot.GetMe()
	if err != nil {
		return nil, fmt.Errorf("getMe: %w", err)
	}
	info, err := g.bot.GetWebhookInfo()
	if err != nil {
		return nil, fmt.Errorf("getWebhookInfo: %w", err)
	}
	return map[string]any{
		"bot":             me.UserName,
		"webhook_url":     info.URL,
		"pending_updates": info.PendingUpdateCount,
	}, nil
}
