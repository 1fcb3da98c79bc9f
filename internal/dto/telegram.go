package dto

import (
	"crypto-pulse/internal/model"

	"gopkg.in/telebot.v3"
)

type RequestUserTelegram struct {
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username"`
}

func ToRequestUserTelegram(sender *telebot.User) RequestUserTelegram {
	return RequestUserTelegram{
		TelegramID: sender.ID,
		Username:   sender.Username,
	}
}

// SubscribeSessionData accumulates the subscribe flow's answers across turns.
type SubscribeSessionData struct {
	UserTelegram RequestUserTelegram `json:"user_telegram"`
	Asset        string              `json:"asset"`
	Direction    model.Direction     `json:"direction"`
}

// ChartSessionData accumulates the chart flow's answers across turns.
// MenuMessage is the prompt to retract once the chart has been delivered.
type ChartSessionData struct {
	Asset       string           `json:"asset"`
	MenuMessage *telebot.Message `json:"-"`
}
