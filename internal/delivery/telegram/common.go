package telegram

import (
	"context"
	"fmt"
	"strings"

	"crypto-pulse/pkg/cache"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleConversation(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID
	state, ok := cache.GetFromCache[int](fmt.Sprintf(UserStateKey, userID))
	if !ok || state == StateIdle {
		return t.handleTextMessage(ctx, c)
	}

	switch state {
	case StateWaitingSubscribeThreshold:
		return t.handleSubscribeThreshold(ctx, c)
	default:
		// Text arrived while a button menu is pending. Treat as dangling.
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, messageDanglingState)
		return err
	}
}

func (t *TelegramBotHandler) handleTextMessage(ctx context.Context, c telebot.Context) error {
	if !strings.HasPrefix(c.Text(), "/") {
		return c.Send("I don't recognize that. Use /help to see the available commands.")
	}

	return nil
}

func (t *TelegramBotHandler) ResetUserState(userID int64) {
	t.inmemoryCache.Delete(fmt.Sprintf(UserStateKey, userID))
	t.inmemoryCache.Delete(fmt.Sprintf(UserDataKey, userID))
}

func (t *TelegramBotHandler) setUserState(userID int64, state int) {
	t.inmemoryCache.Set(fmt.Sprintf(UserStateKey, userID), state, t.cfg.Cache.SessionExpDuration)
}

func (t *TelegramBotHandler) setUserData(userID int64, data interface{}) {
	t.inmemoryCache.Set(fmt.Sprintf(UserDataKey, userID), data, t.cfg.Cache.SessionExpDuration)
}

func (t *TelegramBotHandler) userState(userID int64) int {
	state, ok := cache.GetFromCache[int](fmt.Sprintf(UserStateKey, userID))
	if !ok {
		return StateIdle
	}
	return state
}

func (t *TelegramBotHandler) handleCancel(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	defer t.ResetUserState(userID)

	if state, ok := cache.GetFromCache[int](fmt.Sprintf(UserStateKey, userID)); ok && state != StateIdle {
		return c.Send("✅ Conversation cancelled.")
	}

	return nil
}

// resetDangling clears the session after a button press that does not match
// the current conversation state, e.g. a tap on a stale menu.
func (t *TelegramBotHandler) resetDangling(ctx context.Context, c telebot.Context) error {
	t.ResetUserState(c.Sender().ID)
	_, err := t.telegram.Send(ctx, c, messageDanglingState)
	return err
}
