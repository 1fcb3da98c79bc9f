package repository

import (
	"crypto-pulse/config"
	"crypto-pulse/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	UserRepo         UserRepository
	SubscriptionRepo SubscriptionRepository
	NewsRepo         NewsRepository
	MarketDataRepo   MarketDataRepository
	NewsFetcherRepo  NewsFetcherRepository
	SummarizerRepo   SummarizerRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	// A missing Gemini key disables summaries, it does not break startup.
	var summarizerRepo SummarizerRepository
	if cfg.News.GeminiAPIKey != "" {
		var err error
		summarizerRepo, err = NewGeminiRepository(cfg, log)
		if err != nil {
			return nil, err
		}
	}

	return &Repository{
		UserRepo:         NewUserRepository(db),
		SubscriptionRepo: NewSubscriptionRepository(db),
		NewsRepo:         NewNewsRepository(db),
		MarketDataRepo:   NewCoinCapRepository(cfg, log),
		NewsFetcherRepo:  NewAlphaVantageRepository(cfg, log),
		SummarizerRepo:   summarizerRepo,
	}, nil
}
