package telegram

import (
	"context"
	"fmt"
	"strings"

	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleSubscriptions(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	subs, err := t.service.BotService.ListSubscriptions(ctx, userID)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to list subscriptions",
			logger.Int64Field("telegram_id", userID),
			logger.ErrorField(err))
		_, sendErr := t.telegram.Send(ctx, c, commonErrorInternal)
		return sendErr
	}

	if len(subs) == 0 {
		_, err := t.telegram.Send(ctx, c, "You have no active alerts. Use /subscribe to create one.")
		return err
	}

	body := &strings.Builder{}
	body.WriteString("🔔 *Your alerts:*\n\n")
	for _, sub := range subs {
		arrow := "📈"
		if sub.Direction == model.DirectionDecrease {
			arrow = "📉"
		}
		body.WriteString(fmt.Sprintf("%s *%s* %s by %.2f%%\n",
			arrow, utils.CapitalizeSentence(sub.Asset), sub.Direction, sub.Threshold))
	}

	_, err = t.telegram.Send(ctx, c, body.String(), telebot.ModeMarkdown)
	return err
}
