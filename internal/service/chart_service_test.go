package service

import (
	"context"
	"math"
	"testing"
	"time"

	"crypto-pulse/config"
	"crypto-pulse/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChartConfig() *config.Config {
	return &config.Config{
		CoinCap: config.CoinCap{
			ChartLookback: 90 * 24 * time.Hour,
		},
	}
}

func dailySeries(n int) []dto.PriceSample {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]dto.PriceSample, 0, n)
	for i := 0; i < n; i++ {
		price := 100 + 10*math.Sin(float64(i)/5) + float64(i)*0.3
		samples = append(samples, dto.PriceSample{
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Price:     price,
		})
	}
	return samples
}

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestChartServiceBuildChart(t *testing.T) {
	marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
		dto.AssetBitcoin: dailySeries(90),
	}}
	svc := NewChartService(testChartConfig(), newTestLogger(t), marketData)

	tests := []struct {
		name string
		kind dto.ChartKind
	}{
		{name: "price chart", kind: dto.ChartKindPrice},
		{name: "indicators chart", kind: dto.ChartKindIndicators},
		{name: "volatility gauge", kind: dto.ChartKindVolatility},
		{name: "rsi gauge", kind: dto.ChartKindRSI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BuildChart(context.Background(), dto.AssetBitcoin, tt.kind)
			require.NoError(t, err)
			assertPNG(t, result.PNG)
			assert.Contains(t, result.Caption, "Bitcoin")
		})
	}
}

func TestChartServiceBuildChart_Errors(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		svc := NewChartService(testChartConfig(), newTestLogger(t), &fakeMarketDataRepo{})

		_, err := svc.BuildChart(context.Background(), dto.AssetBitcoin, dto.ChartKindPrice)
		assert.ErrorIs(t, err, ErrNoChartData)
	})

	t.Run("too short for volatility", func(t *testing.T) {
		marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
			dto.AssetBitcoin: dailySeries(2),
		}}
		svc := NewChartService(testChartConfig(), newTestLogger(t), marketData)

		_, err := svc.BuildChart(context.Background(), dto.AssetBitcoin, dto.ChartKindVolatility)
		assert.ErrorIs(t, err, ErrNoChartData)
	})

	t.Run("unknown asset", func(t *testing.T) {
		svc := NewChartService(testChartConfig(), newTestLogger(t), &fakeMarketDataRepo{})

		_, err := svc.BuildChart(context.Background(), "dogecoin", dto.ChartKindPrice)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoChartData)
	})

	t.Run("unknown chart kind", func(t *testing.T) {
		marketData := &fakeMarketDataRepo{samples: map[string][]dto.PriceSample{
			dto.AssetBitcoin: dailySeries(30),
		}}
		svc := NewChartService(testChartConfig(), newTestLogger(t), marketData)

		_, err := svc.BuildChart(context.Background(), dto.AssetBitcoin, dto.ChartKind("candles"))
		assert.Error(t, err)
	})
}
