package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/cache"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"gopkg.in/telebot.v3"
)

// assetMenu builds the two-row asset keyboard with every choice routed to btn.
func assetMenu(btn telebot.Btn) *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}

	var rows []telebot.Row
	var row []telebot.Btn
	for _, asset := range dto.AssetList() {
		row = append(row, menu.Data(utils.CapitalizeSentence(asset), btn.Unique, asset))
		if len(row) == 2 {
			rows = append(rows, menu.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, menu.Row(row...))
	}

	menu.Inline(rows...)
	return menu
}

func (t *TelegramBotHandler) handleSubscribe(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	t.setUserState(userID, StateWaitingSubscribeAsset)
	t.setUserData(userID, &dto.SubscribeSessionData{
		UserTelegram: dto.ToRequestUserTelegram(c.Sender()),
	})

	_, err := t.telegram.Send(ctx, c, "🪙 Which asset do you want to watch?", assetMenu(btnSubscribeAsset))
	return err
}

func (t *TelegramBotHandler) handleBtnSubscribeAsset(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingSubscribeAsset {
		return t.resetDangling(ctx, c)
	}

	data, ok := cache.GetFromCache[*dto.SubscribeSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalSubscribe)
		return err
	}

	asset := c.Data()
	if !dto.IsKnownAsset(asset) {
		return t.resetDangling(ctx, c)
	}

	data.Asset = asset
	t.setUserData(userID, data)
	t.setUserState(userID, StateWaitingSubscribeDirection)

	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("📈 Increase", btnSubscribeDirection.Unique, string(model.DirectionIncrease)),
			menu.Data("📉 Decrease", btnSubscribeDirection.Unique, string(model.DirectionDecrease)),
		),
		menu.Row(menu.Data(btnUnsubscribeMenu.Text, btnUnsubscribeMenu.Unique)),
	)

	_, err := t.telegram.Edit(ctx, c, c.Message(),
		fmt.Sprintf("👍 *%s* it is! Alert on an increase or a decrease?", utils.CapitalizeSentence(asset)),
		menu, telebot.ModeMarkdown)
	return err
}

func (t *TelegramBotHandler) handleBtnSubscribeDirection(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingSubscribeDirection {
		return t.resetDangling(ctx, c)
	}

	data, ok := cache.GetFromCache[*dto.SubscribeSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalSubscribe)
		return err
	}

	direction := model.Direction(c.Data())
	if !direction.Valid() {
		return t.resetDangling(ctx, c)
	}

	data.Direction = direction
	t.setUserData(userID, data)
	t.setUserState(userID, StateWaitingSubscribeThreshold)

	_, err := t.telegram.Edit(ctx, c, c.Message(), messageThresholdPrompt)
	return err
}

// handleSubscribeThreshold consumes the text turn of the subscribe flow. An
// unparseable threshold re-prompts in place, the state does not advance.
func (t *TelegramBotHandler) handleSubscribeThreshold(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	data, ok := cache.GetFromCache[*dto.SubscribeSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalSubscribe)
		return err
	}

	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(c.Text()), "%"))
	threshold, err := strconv.ParseFloat(text, 64)
	if err != nil || threshold <= 0 {
		_, err := t.telegram.Send(ctx, c, messageThresholdInvalid)
		return err
	}

	if err := t.service.BotService.Subscribe(ctx, data.UserTelegram, data.Asset, data.Direction, threshold); err != nil {
		t.log.ErrorContext(ctx, "Failed to subscribe",
			logger.Int64Field("telegram_id", userID),
			logger.StringField("asset", data.Asset),
			logger.ErrorField(err))
		t.ResetUserState(userID)
		_, sendErr := t.telegram.Send(ctx, c, commonErrorInternal)
		return sendErr
	}

	t.ResetUserState(userID)
	_, err = t.telegram.Send(ctx, c,
		fmt.Sprintf("🔔 Done! I'll alert you when *%s* moves %s by *%.2f%%* or more.",
			utils.CapitalizeSentence(data.Asset), directionPhrase(data.Direction), threshold),
		telebot.ModeMarkdown)
	return err
}

func (t *TelegramBotHandler) handleBtnUnsubscribeMenu(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingSubscribeDirection {
		return t.resetDangling(ctx, c)
	}

	t.setUserState(userID, StateWaitingUnsubscribeDirection)

	menu := &telebot.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("📈 Increase", btnUnsubscribeDirection.Unique, string(model.DirectionIncrease)),
		menu.Data("📉 Decrease", btnUnsubscribeDirection.Unique, string(model.DirectionDecrease)),
	))

	_, err := t.telegram.Edit(ctx, c, c.Message(), "🗑 Which alert do you want to remove?", menu)
	return err
}

func (t *TelegramBotHandler) handleBtnUnsubscribeDirection(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingUnsubscribeDirection {
		return t.resetDangling(ctx, c)
	}

	data, ok := cache.GetFromCache[*dto.SubscribeSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalSubscribe)
		return err
	}

	direction := model.Direction(c.Data())
	if !direction.Valid() {
		return t.resetDangling(ctx, c)
	}

	removed, err := t.service.BotService.Unsubscribe(ctx, data.UserTelegram, data.Asset, direction)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to unsubscribe",
			logger.Int64Field("telegram_id", userID),
			logger.StringField("asset", data.Asset),
			logger.ErrorField(err))
		t.ResetUserState(userID)
		_, sendErr := t.telegram.Send(ctx, c, commonErrorInternal)
		return sendErr
	}

	t.ResetUserState(userID)

	message := fmt.Sprintf("You had no %s alert for *%s*.", direction, utils.CapitalizeSentence(data.Asset))
	if removed {
		message = fmt.Sprintf("🗑 Removed your %s alert for *%s*.", direction, utils.CapitalizeSentence(data.Asset))
	}
	_, err = t.telegram.Edit(ctx, c, c.Message(), message, telebot.ModeMarkdown)
	return err
}

func directionPhrase(direction model.Direction) string {
	if direction == model.DirectionDecrease {
		return "down"
	}
	return "up"
}
