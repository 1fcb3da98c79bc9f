package telegram

import "gopkg.in/telebot.v3"

var (
	btnSubscribeAsset       telebot.Btn = telebot.Btn{Unique: "btn_subscribe_asset"}
	btnSubscribeDirection   telebot.Btn = telebot.Btn{Unique: "btn_subscribe_direction"}
	btnUnsubscribeMenu      telebot.Btn = telebot.Btn{Text: "🗑 Unsubscribe", Unique: "btn_unsubscribe_menu"}
	btnUnsubscribeDirection telebot.Btn = telebot.Btn{Unique: "btn_unsubscribe_direction"}
	btnChartAsset           telebot.Btn = telebot.Btn{Unique: "btn_chart_asset"}
	btnChartKind            telebot.Btn = telebot.Btn{Unique: "btn_chart_kind"}
)

const (
	commonErrorInternal          = "Something went wrong, please try again."
	commonErrorInternalSubscribe = "Something went wrong, please start over with /subscribe."
	commonErrorInternalChart     = "Something went wrong, please start over with /chart."
	messageDanglingState         = "You are not in an active conversation. Use /help to see the available commands."
	messageNoChartData           = "😔 No price data is available for that asset right now, please try again later."
	messageThresholdPrompt       = "💯 Enter the percent change that should trigger the alert (example: 5 or 2.5):"
	messageThresholdInvalid      = "That doesn't look like a number. Please enter a positive percent value (example: 5 or 2.5)."
)
