package service

import (
	"crypto-pulse/config"
	"crypto-pulse/internal/repository"
	"crypto-pulse/pkg/cache"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/telegram"
)

type Service struct {
	BotService      BotService
	ChartService    ChartService
	NotifierService NotifierService
	NewsService     NewsService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	telegramRateLimiter *telegram.RateLimiter,
) *Service {
	return &Service{
		BotService:      NewBotService(cfg, log, repo.UserRepo, repo.SubscriptionRepo),
		ChartService:    NewChartService(cfg, log, repo.MarketDataRepo),
		NotifierService: NewNotifierService(cfg, log, repo.SubscriptionRepo, repo.MarketDataRepo, telegramRateLimiter),
		NewsService:     NewNewsService(cfg, log, repo.NewsRepo, repo.NewsFetcherRepo, repo.SummarizerRepo, inmemoryCache),
	}
}
