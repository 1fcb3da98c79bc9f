package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/model"
	"crypto-pulse/internal/repository"
	"crypto-pulse/pkg/cache"
	"crypto-pulse/pkg/common"
	"crypto-pulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

const newsTimeLayout = "20060102T150405"

type NewsService interface {
	Refresh(ctx context.Context) error
	Latest(ctx context.Context) (*model.NewsArticle, string, error)
	StartScheduler(ctx context.Context) error
	StopScheduler()
}

type newsService struct {
	cfg            *config.Config
	log            *logger.Logger
	newsRepo       repository.NewsRepository
	fetcherRepo    repository.NewsFetcherRepository
	summarizerRepo repository.SummarizerRepository
	cache          cache.Cache
	cron           *cron.Cron
}

func NewNewsService(
	cfg *config.Config,
	log *logger.Logger,
	newsRepo repository.NewsRepository,
	fetcherRepo repository.NewsFetcherRepository,
	summarizerRepo repository.SummarizerRepository,
	inmemoryCache cache.Cache,
) NewsService {
	return &newsService{
		cfg:            cfg,
		log:            log,
		newsRepo:       newsRepo,
		fetcherRepo:    fetcherRepo,
		summarizerRepo: summarizerRepo,
		cache:          inmemoryCache,
		cron:           cron.New(),
	}
}

// Refresh fetches the latest blockchain headline and stores it. Re-fetching an
// already stored article is a no-op at the repository level.
func (s *newsService) Refresh(ctx context.Context) error {
	article, err := s.fetcherRepo.LatestBlockchainNews(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch news: %w", err)
	}
	if article == nil {
		s.log.InfoContext(ctx, "News feed returned no articles")
		return nil
	}

	publishedAt, err := time.Parse(newsTimeLayout, article.TimePublished)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to parse article timestamp, using now",
			logger.StringField("time_published", article.TimePublished),
			logger.ErrorField(err))
		publishedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}

	row := &model.NewsArticle{
		Title:       article.Title,
		Summary:     article.Summary,
		URL:         article.URL,
		Source:      article.Source,
		PublishedAt: publishedAt,
		Raw:         raw,
	}
	if err := s.newsRepo.Save(ctx, row); err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	s.cache.Delete(common.KEY_LATEST_NEWS)
	s.log.InfoContext(ctx, "News refreshed", logger.StringField("title", article.Title))
	return nil
}

// Latest returns the most recent cached article and, when a summarizer is
// configured, a short Gemini summary. Summarizer failures degrade to the raw
// headline instead of failing the request.
func (s *newsService) Latest(ctx context.Context) (*model.NewsArticle, string, error) {
	article, found := cache.GetFromCache[*model.NewsArticle](common.KEY_LATEST_NEWS)
	if !found {
		var err error
		article, err = s.newsRepo.Latest(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load latest article: %w", err)
		}
		if article == nil {
			return nil, "", nil
		}
		s.cache.Set(common.KEY_LATEST_NEWS, article, s.cfg.Cache.DefaultExpiration)
	}

	if s.summarizerRepo == nil {
		return article, "", nil
	}

	summary, err := s.summarizerRepo.SummarizeArticle(ctx, article)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to summarize article, serving raw headline",
			logger.ErrorField(err))
		return article, "", nil
	}

	return article, summary, nil
}

// StartScheduler registers the cron refresh job and starts the scheduler.
func (s *newsService) StartScheduler(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.News.CronSchedule, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, s.cfg.News.Timeout*2)
		defer cancel()

		if err := s.Refresh(refreshCtx); err != nil {
			s.log.Error("Scheduled news refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule news refresh: %w", err)
	}

	s.cron.Start()
	s.log.Info("News scheduler started",
		logger.StringField("schedule", s.cfg.News.CronSchedule))
	return nil
}

func (s *newsService) StopScheduler() {
	<-s.cron.Stop().Done()
}
