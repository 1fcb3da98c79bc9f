package repository

import (
	"context"

	"crypto-pulse/internal/model"
	"crypto-pulse/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64, opts ...utils.DBOption) (*model.User, error)
	Upsert(ctx context.Context, user *model.User, opts ...utils.DBOption) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64, opts ...utils.DBOption) (*model.User, error) {
	var user model.User
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("telegram_id = ?", telegramID).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, result.Error
	}

	return &user, nil
}

// Upsert creates the user on first contact or refreshes the username on
// conflict, filling user.ID either way.
func (r *userRepository) Upsert(ctx context.Context, user *model.User, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
	}).Create(user).Error; err != nil {
		return err
	}

	if user.ID == 0 {
		existing, err := r.GetByTelegramID(ctx, user.TelegramID, opts...)
		if err != nil {
			return err
		}
		if existing != nil {
			user.ID = existing.ID
		}
	}
	return nil
}
