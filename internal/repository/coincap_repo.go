package repository

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/dto"
	"crypto-pulse/pkg/httpclient"
	"crypto-pulse/pkg/logger"

	"golang.org/x/time/rate"
)

// MarketDataRepository retrieves price history for an asset. On any upstream
// failure History returns an empty series, which callers read as "no data".
// Failures never propagate past this boundary.
type MarketDataRepository interface {
	History(ctx context.Context, param dto.GetHistoryParam) []dto.PriceSample
}

type coinCapRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewCoinCapRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.CoinCap.MaxRequestPerMin)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &coinCapRepository{
		httpClient:     httpclient.New(cfg.CoinCap.BaseURL, cfg.CoinCap.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *coinCapRepository) History(ctx context.Context, param dto.GetHistoryParam) []dto.PriceSample {
	samples, err := r.fetchHistory(ctx, param)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to fetch price history",
			logger.StringField("asset", param.Asset),
			logger.StringField("interval", param.Interval),
			logger.ErrorField(err))
		return nil
	}
	return samples
}

func (r *coinCapRepository) fetchHistory(ctx context.Context, param dto.GetHistoryParam) ([]dto.PriceSample, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := end.Add(-param.Lookback)

	endpoint := "/assets/" + param.Asset + "/history"
	queryParams := map[string]string{
		"interval": param.Interval,
		"start":    strconv.FormatInt(start.UnixMilli(), 10),
		"end":      strconv.FormatInt(end.UnixMilli(), 10),
	}

	var history dto.CoinCapHistoryResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &history)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Error("CoinCap API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("asset", param.Asset),
			logger.StringField("body", string(resp.Body)))
		return nil, errNonOKStatus(resp.StatusCode)
	}

	samples := make([]dto.PriceSample, 0, len(history.Data))
	for _, point := range history.Data {
		price, err := strconv.ParseFloat(point.PriceUsd, 64)
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping unparseable price point",
				logger.StringField("asset", param.Asset),
				logger.StringField("price", point.PriceUsd))
			continue
		}
		samples = append(samples, dto.PriceSample{
			Timestamp: time.UnixMilli(point.Time).UTC(),
			Price:     price,
		})
	}

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})

	return samples, nil
}

type errNonOKStatus int

func (e errNonOKStatus) Error() string {
	return "coincap api returned status: " + strconv.Itoa(int(e))
}
