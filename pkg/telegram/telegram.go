package telegram

import (
	"context"
	"sync"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

type userLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter wraps the shared telebot instance so every outbound call honors
// Telegram's global and per-chat rate limits. Both the interactive handlers and
// the background notifier send through the same instance.
type RateLimiter struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	globalLimiter *rate.Limiter
	userLimiters  map[int64]*userLimiterEntry
	bot           *telebot.Bot
	mu            sync.Mutex
	editMu        sync.Mutex
	wg            sync.WaitGroup
}

func NewRateLimiter(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *RateLimiter {
	return &RateLimiter{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
		userLimiters:  make(map[int64]*userLimiterEntry),
	}
}

func (t *RateLimiter) Send(ctx context.Context, c telebot.Context, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if err := t.checkRateLimit(ctx, c.Chat().ID); err != nil {
		return nil, err
	}
	return t.bot.Send(c.Chat(), what, opts...)
}

// SendMessageUser delivers a message outside of any inbound update, addressed
// directly by chat id. Used by the subscription notifier.
func (t *RateLimiter) SendMessageUser(ctx context.Context, message string, chatID int64, opts ...interface{}) error {
	if err := t.checkRateLimit(ctx, chatID); err != nil {
		return err
	}
	_, err := t.bot.Send(&telebot.User{ID: chatID}, message, opts...)
	return err
}

func (t *RateLimiter) Edit(ctx context.Context, c telebot.Context, msg *telebot.Message, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if err := t.checkRateLimit(ctx, c.Chat().ID); err != nil {
		return nil, err
	}

	t.editMu.Lock()
	defer t.editMu.Unlock()
	return t.bot.Edit(msg, what, opts...)
}

func (t *RateLimiter) Delete(ctx context.Context, c telebot.Context, msg *telebot.Message) error {
	if err := t.checkRateLimit(ctx, c.Chat().ID); err != nil {
		return err
	}
	t.editMu.Lock()
	defer t.editMu.Unlock()
	return t.bot.Delete(msg)
}

func (r *RateLimiter) getUserLimiter(chatID int64) *userLimiterEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limiter, exists := r.userLimiters[chatID]; exists {
		limiter.lastAccess = time.Now()
		return limiter
	}

	limiter := rate.NewLimiter(rate.Limit(r.cfg.MaxUserRequestPerSecond), r.cfg.MaxUserRequestPerSecond)
	r.userLimiters[chatID] = &userLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}
	return r.userLimiters[chatID]
}

func (r *RateLimiter) checkRateLimit(ctx context.Context, chatID int64) error {
	userLimiter := r.getUserLimiter(chatID)

	if err := r.globalLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for global rate limit", logger.ErrorField(err))
		return err
	}
	if err := userLimiter.limiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for user rate limit", logger.ErrorField(err))
		return err
	}
	return nil
}

func (r *RateLimiter) StartCleanupExpired(ctx context.Context) {
	r.wg.Add(1)
	utils.GoSafe(func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.cfg.RateLimitCleanupDuration)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				r.log.Info("Received signal to stop Telegram rate limiter cleanup")
				return
			case <-ticker.C:
				r.mu.Lock()
				now := time.Now()
				for chatID, entry := range r.userLimiters {
					if now.Sub(entry.lastAccess) > r.cfg.RatelimitExpireDuration {
						delete(r.userLimiters, chatID)
					}
				}
				r.mu.Unlock()
			}
		}
	}).Run()
}

func (r *RateLimiter) StopCleanupExpired() {
	r.wg.Wait()
	r.log.Info("Telegram rate limiter stopped")
}
