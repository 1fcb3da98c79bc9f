package telegram

import (
	"context"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/service"
	"crypto-pulse/pkg/cache"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/telegram"

	"gopkg.in/telebot.v3"
)

type TelegramBotHandler struct {
	ctx           context.Context
	cfg           *config.Config
	bot           *telebot.Bot
	log           *logger.Logger
	telegram      *telegram.RateLimiter
	service       *service.Service
	inmemoryCache cache.Cache
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	telegramRateLimiter *telegram.RateLimiter,
	service *service.Service,
	inmemoryCache cache.Cache,
) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:           ctx,
		cfg:           cfg,
		bot:           bot,
		log:           log,
		telegram:      telegramRateLimiter,
		service:       service,
		inmemoryCache: inmemoryCache,
	}
}

func (t *TelegramBotHandler) Start() {
	t.log.Info("Starting Telegram bot...")

	if t.cfg.Telegram.WebhookURL != "" {
		t.log.Info("Setting webhook URL", logger.StringField("webhook_url", t.cfg.Telegram.WebhookURL))
		t.bot.SetWebhook(&telebot.Webhook{
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: t.cfg.Telegram.WebhookURL,
			},
		})
	}

	t.RegisterHandlers()
}

func (t *TelegramBotHandler) Stop() {
	t.log.Info("Stopping Telegram bot...")

	ctx, cancel := context.WithTimeout(t.ctx, 10*time.Second)
	defer cancel()

	stopDone := make(chan error, 1)
	go func() {
		t.bot.Stop()
		stopDone <- nil
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}

// ProcessUpdate feeds one webhook update into the bot's handler chain.
func (t *TelegramBotHandler) ProcessUpdate(update telebot.Update) {
	t.bot.ProcessUpdate(update)
}
