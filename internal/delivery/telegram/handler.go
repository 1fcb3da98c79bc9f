package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"
)

func (t *TelegramBotHandler) WithContext(handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(t.ctx, 5*time.Minute)
		defer cancel()

		return handler(ctx, c)
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle("/start", t.WithContext(t.handleStart))
	t.bot.Handle("/help", t.WithContext(t.handleHelp))
	t.bot.Handle("/subscribe", t.WithContext(t.handleSubscribe))
	t.bot.Handle("/subscriptions", t.WithContext(t.handleSubscriptions))
	t.bot.Handle("/chart", t.WithContext(t.handleChart))
	t.bot.Handle("/news", t.WithContext(t.handleNews))
	t.bot.Handle("/cancel", t.WithContext(t.handleCancel))
	t.bot.Handle(telebot.OnText, t.WithContext(t.handleConversation))

	t.bot.Handle(&btnSubscribeAsset, t.WithContext(t.handleBtnSubscribeAsset))
	t.bot.Handle(&btnSubscribeDirection, t.WithContext(t.handleBtnSubscribeDirection))
	t.bot.Handle(&btnUnsubscribeMenu, t.WithContext(t.handleBtnUnsubscribeMenu))
	t.bot.Handle(&btnUnsubscribeDirection, t.WithContext(t.handleBtnUnsubscribeDirection))
	t.bot.Handle(&btnChartAsset, t.WithContext(t.handleBtnChartAsset))
	t.bot.Handle(&btnChartKind, t.WithContext(t.handleBtnChartKind))
}

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := `👋 *Welcome to Crypto Pulse!* 🤖
I keep an eye on crypto prices so you don't have to.

🔧 Here is what I can do:

🔔 /subscribe - Get alerted when a price moves more than your threshold
📋 /subscriptions - See your active alerts
📊 /chart - Price charts, indicators, volatility and RSI gauges
📰 /news - Latest blockchain news

💡 Info & help:
🆘 /help - Full usage guide
🔁 /start - Show this message again
❌ /cancel - Abort the current conversation

🚀 *Ready?* Try /subscribe to set up your first alert!`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (t *TelegramBotHandler) handleHelp(ctx context.Context, c telebot.Context) error {
	message := `❓ *Crypto Pulse Guide* ❓

I watch crypto prices and message you when they move more than you asked for.

🤖 *Commands:*
/start - Show the welcome message
/help - Show this guide
/subscribe - Pick an asset, a direction (increase/decrease) and a percent threshold; I alert you when the short-term change breaches it. Pick Unsubscribe in the same menu to remove an alert.
/subscriptions - List your active alerts
/chart - Pick an asset and a visualization: price chart, indicator chart, volatility gauge or RSI gauge
/news - Latest blockchain headline with a short summary
/cancel - Abort the current conversation

💡 *Tips:*
1. Thresholds are percent values, so 5 means a 5% move
2. One alert per asset and direction; subscribing again just updates the threshold
3. Alerts have a short cooldown, you won't be spammed

📌 Use the data as a reference only — *Do Your Own Research!* 🔍`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}
