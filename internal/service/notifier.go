package service

import (
	"context"
	"fmt"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/analysis"
	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/model"
	"crypto-pulse/internal/repository"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// MessageSender delivers a text message to a telegram chat. Satisfied by the
// rate-limited telegram client.
type MessageSender interface {
	SendMessageUser(ctx context.Context, message string, chatID int64, opts ...interface{}) error
}

type NotifierService interface {
	Run(ctx context.Context)
	RunCycle(ctx context.Context) error
}

type notifierService struct {
	cfg              *config.Config
	log              *logger.Logger
	subscriptionRepo repository.SubscriptionRepository
	marketDataRepo   repository.MarketDataRepository
	sender           MessageSender
	now              func() time.Time
}

func NewNotifierService(
	cfg *config.Config,
	log *logger.Logger,
	subscriptionRepo repository.SubscriptionRepository,
	marketDataRepo repository.MarketDataRepository,
	sender MessageSender,
) NotifierService {
	return &notifierService{
		cfg:              cfg,
		log:              log,
		subscriptionRepo: subscriptionRepo,
		marketDataRepo:   marketDataRepo,
		sender:           sender,
		now:              time.Now,
	}
}

// Run drives the check loop until ctx is cancelled. An in-flight cycle always
// finishes before the loop exits.
func (s *notifierService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Notifier.CheckInterval)
	defer ticker.Stop()

	s.log.InfoContext(ctx, "Subscription notifier started",
		logger.Field("check_interval", s.cfg.Notifier.CheckInterval.String()))

	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Subscription notifier stopped")
			return
		case <-ticker.C:
			if err := s.RunCycle(ctx); err != nil {
				s.log.ErrorContext(ctx, "Notifier cycle failed", logger.ErrorField(err))
			}
		}
	}
}

// RunCycle evaluates every subscription once. Per-subscription failures are
// logged and skipped, never aborting the cycle.
func (s *notifierService) RunCycle(ctx context.Context) error {
	checks, err := s.subscriptionRepo.ListChecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(checks) == 0 {
		return nil
	}

	changes := s.fetchChanges(ctx, checks)

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Notifier.MaxConcurrency)

	for _, check := range checks {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}

		change, ok := changes[check.Asset]
		if !ok {
			continue
		}

		c := check
		g.Go(func() error {
			s.evaluate(ctx, c, change)
			return nil
		})
	}

	return g.Wait()
}

// fetchChanges pulls minute-level history once per distinct asset and computes
// the trailing-window price change. Assets whose fetch came back empty are
// absent from the result and their subscriptions are skipped this cycle.
func (s *notifierService) fetchChanges(ctx context.Context, checks []model.SubscriptionCheck) map[string]float64 {
	changes := make(map[string]float64)
	seen := make(map[string]bool)

	for _, check := range checks {
		if seen[check.Asset] {
			continue
		}
		seen[check.Asset] = true

		samples := s.marketDataRepo.History(ctx, dto.GetHistoryParam{
			Asset:    check.Asset,
			Interval: dto.IntervalMinute,
			Lookback: s.cfg.Notifier.ChangeWindow,
		})
		if len(samples) == 0 {
			s.log.WarnContext(ctx, "No price history, skipping asset this cycle",
				logger.StringField("asset", check.Asset))
			continue
		}

		changes[check.Asset] = analysis.PriceChange(samples, s.cfg.Notifier.ChangeWindow)
	}

	return changes
}

func (s *notifierService) evaluate(ctx context.Context, check model.SubscriptionCheck, change float64) {
	breached := false
	switch check.Direction {
	case model.DirectionIncrease:
		breached = change >= check.Threshold
	case model.DirectionDecrease:
		breached = change <= -check.Threshold
	}
	if !breached {
		return
	}

	now := s.now()
	if check.LastNotified != nil && now.Sub(*check.LastNotified) <= s.cfg.Notifier.Cooldown {
		return
	}

	message := fmt.Sprintf("🚨 %s moved %s in the last %s (your threshold: %.2f%% %s).",
		utils.CapitalizeSentence(check.Asset),
		utils.FormatPercentage(change),
		s.cfg.Notifier.ChangeWindow.String(),
		check.Threshold,
		check.Direction,
	)

	if err := s.sender.SendMessageUser(ctx, message, check.TelegramID); err != nil {
		s.log.ErrorContext(ctx, "Failed to send alert",
			logger.Int64Field("telegram_id", check.TelegramID),
			logger.StringField("asset", check.Asset),
			logger.ErrorField(err))
		return
	}

	if err := s.subscriptionRepo.UpdateLastNotified(ctx, check.SubscriptionID, now); err != nil {
		s.log.ErrorContext(ctx, "Failed to update last notified",
			logger.IntField("subscription_id", int(check.SubscriptionID)),
			logger.ErrorField(err))
	}
}
