package repository

import (
	"context"
	"fmt"
	"net/http"

	"crypto-pulse/config"
	"crypto-pulse/internal/dto"
	"crypto-pulse/pkg/httpclient"
	"crypto-pulse/pkg/logger"
)

type NewsFetcherRepository interface {
	LatestBlockchainNews(ctx context.Context) (*dto.AlphaVantageArticle, error)
}

type alphaVantageRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	logger     *logger.Logger
}

func NewAlphaVantageRepository(cfg *config.Config, log *logger.Logger) NewsFetcherRepository {
	return &alphaVantageRepository{
		httpClient: httpclient.New(cfg.News.BaseURL, cfg.News.Timeout, ""),
		cfg:        cfg,
		logger:     log,
	}
}

func (r *alphaVantageRepository) LatestBlockchainNews(ctx context.Context) (*dto.AlphaVantageArticle, error) {
	queryParams := map[string]string{
		"function": "NEWS_SENTIMENT",
		"topics":   "blockchain",
		"apikey":   r.cfg.News.APIKey,
	}

	var feed dto.AlphaVantageNewsResponse
	resp, err := r.httpClient.Get(ctx, "/query", queryParams, nil, &feed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Error("AlphaVantage API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("alphavantage api returned status: %d", resp.StatusCode)
	}

	if len(feed.Feed) == 0 {
		return nil, nil
	}
	return &feed.Feed[0], nil
}
