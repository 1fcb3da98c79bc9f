package model

import "time"

type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

func (d Direction) Valid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

// Subscription is a user's standing request to be alerted when an asset's
// short-horizon price change breaches Threshold percent in Direction.
// (UserID, Asset, Direction) is unique; a duplicate subscribe replaces the
// threshold and clears LastNotified.
type Subscription struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_subscriptions_user_asset_direction" json:"user_id"`
	Asset        string     `gorm:"column:crypto;type:varchar(50);not null;uniqueIndex:idx_subscriptions_user_asset_direction" json:"asset"`
	Threshold    float64    `gorm:"not null" json:"threshold"`
	Direction    Direction  `gorm:"column:threshold_type;type:varchar(10);not null;uniqueIndex:idx_subscriptions_user_asset_direction" json:"direction"`
	LastNotified *time.Time `json:"last_notified"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionCheck is the notifier's flattened read model: one row per
// subscription with the owner's telegram id joined in.
type SubscriptionCheck struct {
	SubscriptionID uint       `json:"subscription_id"`
	UserID         uint       `json:"user_id"`
	TelegramID     int64      `json:"telegram_id"`
	Asset          string     `gorm:"column:crypto" json:"asset"`
	Threshold      float64    `json:"threshold"`
	Direction      Direction  `gorm:"column:threshold_type" json:"direction"`
	LastNotified   *time.Time `json:"last_notified"`
}
