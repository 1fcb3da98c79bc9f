package service

import (
	"context"
	"errors"
	"fmt"

	"crypto-pulse/config"
	"crypto-pulse/internal/analysis"
	"crypto-pulse/internal/chart"
	"crypto-pulse/internal/dto"
	"crypto-pulse/internal/repository"
	"crypto-pulse/pkg/logger"
	"crypto-pulse/pkg/utils"
)

// ErrNoChartData is returned when the upstream history is empty or too short
// for the requested visualization.
var ErrNoChartData = errors.New("no chart data available")

type ChartResult struct {
	PNG     []byte
	Caption string
}

type ChartService interface {
	BuildChart(ctx context.Context, asset string, kind dto.ChartKind) (*ChartResult, error)
}

type chartService struct {
	cfg            *config.Config
	log            *logger.Logger
	marketDataRepo repository.MarketDataRepository
	renderer       *chart.Renderer
}

func NewChartService(
	cfg *config.Config,
	log *logger.Logger,
	marketDataRepo repository.MarketDataRepository,
) ChartService {
	return &chartService{
		cfg:            cfg,
		log:            log,
		marketDataRepo: marketDataRepo,
		renderer:       chart.NewRenderer(),
	}
}

func (s *chartService) BuildChart(ctx context.Context, asset string, kind dto.ChartKind) (*ChartResult, error) {
	if !dto.IsKnownAsset(asset) {
		return nil, fmt.Errorf("unknown asset: %s", asset)
	}

	samples := s.marketDataRepo.History(ctx, dto.GetHistoryParam{
		Asset:    asset,
		Interval: dto.IntervalDaily,
		Lookback: s.cfg.CoinCap.ChartLookback,
	})
	if len(samples) == 0 {
		return nil, ErrNoChartData
	}

	name := utils.CapitalizeSentence(asset)

	switch kind {
	case dto.ChartKindPrice:
		png, err := s.renderer.Price(name, samples)
		if err != nil {
			return nil, fmt.Errorf("failed to render price chart: %w", err)
		}
		return &ChartResult{PNG: png, Caption: fmt.Sprintf("%s price, last 90 days", name)}, nil

	case dto.ChartKindIndicators:
		png, err := s.renderer.Indicators(name, samples)
		if err != nil {
			return nil, fmt.Errorf("failed to render indicators chart: %w", err)
		}
		return &ChartResult{PNG: png, Caption: fmt.Sprintf("%s MACD and stochastic oscillator", name)}, nil

	case dto.ChartKindVolatility:
		prices := extractPrices(samples)
		vol, err := analysis.Volatility(prices)
		if err != nil {
			s.log.WarnContext(ctx, "Volatility undefined for series",
				logger.StringField("asset", asset),
				logger.ErrorField(err))
			return nil, ErrNoChartData
		}
		max := 1.0
		if vol > max {
			max = vol * 1.25
		}
		png, err := s.renderer.Gauge(vol, fmt.Sprintf("%s 30d Volatility", name), max)
		if err != nil {
			return nil, fmt.Errorf("failed to render volatility gauge: %w", err)
		}
		return &ChartResult{PNG: png, Caption: fmt.Sprintf("%s annualized 30-day volatility: %.4f", name, vol)}, nil

	case dto.ChartKindRSI:
		prices := extractPrices(samples)
		rsi, ok := analysis.LastValid(analysis.RSI(prices, 14))
		if !ok {
			return nil, ErrNoChartData
		}
		png, err := s.renderer.Gauge(rsi, fmt.Sprintf("%s RSI (14)", name), 100)
		if err != nil {
			return nil, fmt.Errorf("failed to render rsi gauge: %w", err)
		}
		return &ChartResult{PNG: png, Caption: fmt.Sprintf("%s current RSI (14): %.2f", name, rsi)}, nil

	default:
		return nil, fmt.Errorf("unknown chart kind: %s", kind)
	}
}

func extractPrices(samples []dto.PriceSample) []float64 {
	prices := make([]float64, 0, len(samples))
	for _, s := range samples {
		prices = append(prices, s.Price)
	}
	return prices
}
