package repository

import (
	"context"
	"time"

	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *model.Subscription, opts ...utils.DBOption) error
	Delete(ctx context.Context, userID uint, asset string, direction model.Direction, opts ...utils.DBOption) (int64, error)
	ListChecks(ctx context.Context, opts ...utils.DBOption) ([]model.SubscriptionCheck, error)
	ListForUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Subscription, error)
	UpdateLastNotified(ctx context.Context, subscriptionID uint, notifiedAt time.Time, opts ...utils.DBOption) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Upsert inserts the subscription or, when the user already holds one for the
// same (asset, direction), replaces its threshold and clears the cooldown.
func (r *subscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "crypto"}, {Name: "threshold_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"threshold":     sub.Threshold,
			"last_notified": nil,
			"updated_at":    time.Now().UTC(),
		}),
	}).Create(sub).Error
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID uint, asset string, direction model.Direction, opts ...utils.DBOption) (int64, error) {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("user_id = ? AND crypto = ? AND threshold_type = ?", userID, asset, direction).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListChecks returns the notifier's full snapshot: every subscription joined
// with its owner's telegram id.
func (r *subscriptionRepository) ListChecks(ctx context.Context, opts ...utils.DBOption) ([]model.SubscriptionCheck, error) {
	var checks []model.SubscriptionCheck
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if err := tx.Model(&model.Subscription{}).
		Select("subscriptions.id AS subscription_id, subscriptions.user_id, users.telegram_id, subscriptions.crypto, subscriptions.threshold, subscriptions.threshold_type, subscriptions.last_notified").
		Joins("JOIN users ON subscriptions.user_id = users.id").
		Find(&checks).Error; err != nil {
		return nil, err
	}

	return checks, nil
}

func (r *subscriptionRepository) ListForUser(ctx context.Context, userID uint, opts ...utils.DBOption) ([]model.Subscription, error) {
	var subs []model.Subscription
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if err := tx.Where("user_id = ?", userID).
		Order("crypto, threshold_type").
		Find(&subs).Error; err != nil {
		return nil, err
	}

	return subs, nil
}

// UpdateLastNotified advances the cooldown timestamp. The WHERE guard keeps
// last_notified monotonic even if two cycles race on the same row.
func (r *subscriptionRepository) UpdateLastNotified(ctx context.Context, subscriptionID uint, notifiedAt time.Time, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	return tx.Model(&model.Subscription{}).
		Where("id = ? AND (last_notified IS NULL OR last_notified < ?)", subscriptionID, notifiedAt).
		Update("last_notified", notifiedAt).Error
}
