package service

import (
	"context"
	"fmt"

	"crypto-pulse/config"
	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/model"
	"crypto-pulse/internal/repository"
	"crypto-pulse/pkg/logger"
)

type BotService interface {
	Subscribe(ctx context.Context, req dto.RequestUserTelegram, asset string, direction model.Direction, threshold float64) error
	Unsubscribe(ctx context.Context, req dto.RequestUserTelegram, asset string, direction model.Direction) (bool, error)
	ListSubscriptions(ctx context.Context, telegramID int64) ([]model.Subscription, error)
}

type botService struct {
	cfg              *config.Config
	log              *logger.Logger
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewBotService(
	cfg *config.Config,
	log *logger.Logger,
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
) BotService {
	return &botService{
		cfg:              cfg,
		log:              log,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Subscribe registers the user on first contact and stores the alert. A second
// subscribe for the same (asset, direction) replaces the threshold and resets
// the cooldown.
func (s *botService) Subscribe(ctx context.Context, req dto.RequestUserTelegram, asset string, direction model.Direction, threshold float64) error {
	if !dto.IsKnownAsset(asset) {
		return fmt.Errorf("unknown asset: %s", asset)
	}
	if !direction.Valid() {
		return fmt.Errorf("invalid direction: %s", direction)
	}

	user := &model.User{
		TelegramID: req.TelegramID,
		Username:   req.Username,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.log.ErrorContext(ctx, "Failed to upsert user",
			logger.Int64Field("telegram_id", req.TelegramID),
			logger.ErrorField(err))
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	sub := &model.Subscription{
		UserID:    user.ID,
		Asset:     asset,
		Threshold: threshold,
		Direction: direction,
	}
	if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "Failed to upsert subscription",
			logger.Int64Field("telegram_id", req.TelegramID),
			logger.StringField("asset", asset),
			logger.ErrorField(err))
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

// Unsubscribe removes the matching alert and reports whether one existed.
func (s *botService) Unsubscribe(ctx context.Context, req dto.RequestUserTelegram, asset string, direction model.Direction) (bool, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	deleted, err := s.subscriptionRepo.Delete(ctx, user.ID, asset, direction)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to delete subscription",
			logger.Int64Field("telegram_id", req.TelegramID),
			logger.StringField("asset", asset),
			logger.ErrorField(err))
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}

	return deleted > 0, nil
}

func (s *botService) ListSubscriptions(ctx context.Context, telegramID int64) ([]model.Subscription, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return s.subscriptionRepo.ListForUser(ctx, user.ID)
}
