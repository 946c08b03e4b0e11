package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"NewsRelay/internal/config"
	"NewsRelay/internal/ports"
)

// Notifier sends article notifications to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger

	mu  sync.Mutex
	api *tgbotapi.BotAPI
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(cfg config.TelegramConfig, log *slog.Logger) *Notifier {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Notifier{
		botToken: cfg.BotToken,
		chatID:   strings.TrimSpace(cfg.ChatID),
		endpoint: endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log,
	}
}

// Send posts an HTML message with link previews disabled.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if n.botToken == "" || n.chatID == "" {
		return fmt.Errorf("telegram notifier misconfigured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	api, err := n.bot()
	if err != nil {
		return err
	}

	msg := tgbotapi.MessageConfig{
		BaseChat:              chatTarget(n.chatID),
		Text:                  text,
		ParseMode:             tgbotapi.ModeHTML,
		DisableWebPagePreview: true,
	}

	if _, err := api.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && n.logger != nil {
			n.logger.Warn("telegram api error", "code", apiErr.Code, "description", apiErr.Message)
		}
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// bot creates the API handle on first use; construction calls getMe.
func (n *Notifier) bot() (*tgbotapi.BotAPI, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.api != nil {
		return n.api, nil
	}

	api, err := tgbotapi.NewBotAPIWithClient(n.botToken, n.endpoint, n.client)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	n.api = api
	return api, nil
}

// chatTarget accepts numeric chat ids as well as @channel usernames.
func chatTarget(chatID string) tgbotapi.BaseChat {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tgbotapi.BaseChat{ChatID: id}
	}
	return tgbotapi.BaseChat{ChannelUsername: chatID}
}
