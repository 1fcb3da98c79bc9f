package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/service"
	"crypto-pulse/pkg/cache"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) handleChart(ctx context.Context, c telebot.Context) error {
	userID := c.Sender().ID

	t.setUserState(userID, StateWaitingChartAsset)
	t.setUserData(userID, &dto.ChartSessionData{})

	_, err := t.telegram.Send(ctx, c, "📊 Which asset do you want to look at?", assetMenu(btnChartAsset))
	return err
}

func (t *TelegramBotHandler) handleBtnChartAsset(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingChartAsset {
		return t.resetDangling(ctx, c)
	}

	data, ok := cache.GetFromCache[*dto.ChartSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalChart)
		return err
	}

	asset := c.Data()
	if !dto.IsKnownAsset(asset) {
		return t.resetDangling(ctx, c)
	}

	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(
			menu.Data("💹 Price Chart", btnChartKind.Unique, string(dto.ChartKindPrice)),
			menu.Data("📐 Indicators", btnChartKind.Unique, string(dto.ChartKindIndicators)),
		),
		menu.Row(
			menu.Data("🌡 Volatility Gauge", btnChartKind.Unique, string(dto.ChartKindVolatility)),
			menu.Data("🎯 RSI Gauge", btnChartKind.Unique, string(dto.ChartKindRSI)),
		),
	)

	msg, err := t.telegram.Edit(ctx, c, c.Message(),
		fmt.Sprintf("👍 *%s*! Pick a visualization:", utils.CapitalizeSentence(asset)),
		menu, telebot.ModeMarkdown)
	if err != nil {
		return err
	}

	data.Asset = asset
	data.MenuMessage = msg
	t.setUserData(userID, data)
	t.setUserState(userID, StateWaitingChartKind)

	return nil
}

func (t *TelegramBotHandler) handleBtnChartKind(ctx context.Context, c telebot.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	if t.userState(userID) != StateWaitingChartKind {
		return t.resetDangling(ctx, c)
	}

	data, ok := cache.GetFromCache[*dto.ChartSessionData](fmt.Sprintf(UserDataKey, userID))
	if !ok {
		t.ResetUserState(userID)
		_, err := t.telegram.Send(ctx, c, commonErrorInternalChart)
		return err
	}

	defer t.ResetUserState(userID)

	kind := dto.ChartKind(c.Data())

	result, err := t.service.ChartService.BuildChart(ctx, data.Asset, kind)
	if err != nil {
		if errors.Is(err, service.ErrNoChartData) {
			_, sendErr := t.telegram.Send(ctx, c, messageNoChartData)
			return sendErr
		}
		t.log.ErrorContext(ctx, "Failed to build chart",
			logger.StringField("asset", data.Asset),
			logger.StringField("kind", string(kind)),
			logger.ErrorField(err))
		_, sendErr := t.telegram.Send(ctx, c, commonErrorInternal)
		return sendErr
	}

	photo := &telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(result.PNG)),
		Caption: result.Caption,
	}
	if _, err := t.telegram.Send(ctx, c, photo); err != nil {
		return err
	}

	// Retract the menu prompt, best effort only.
	if data.MenuMessage != nil {
		if err := t.telegram.Delete(ctx, c, data.MenuMessage); err != nil {
			t.log.WarnContext(ctx, "Failed to delete chart menu message",
				logger.Int64Field("telegram_id", userID),
				logger.ErrorField(err))
		}
	}

	return nil
}
