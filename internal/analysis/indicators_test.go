package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		window int
		want   []float64
	}{
		{
			name:   "window of three",
			prices: []float64{1, 2, 3, 4, 5},
			window: 3,
			want:   []float64{math.NaN(), math.NaN(), 2, 3, 4},
		},
		{
			name:   "window larger than series",
			prices: []float64{1, 2},
			window: 3,
			want:   []float64{math.NaN(), math.NaN()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.prices, tt.window)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				if math.IsNaN(tt.want[i]) {
					assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
				} else {
					assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
				}
			}
		})
	}
}

func TestEMA(t *testing.T) {
	// span 3 => alpha 0.5; seeded from the first value.
	got := EMA([]float64{2, 4, 8}, 3)
	require.Len(t, got, 3)
	assert.InDelta(t, 2, got[0], 1e-9)
	assert.InDelta(t, 3, got[1], 1e-9)
	assert.InDelta(t, 5.5, got[2], 1e-9)
}

func TestRSI(t *testing.T) {
	t.Run("all gains saturate at 100", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		got := RSI(prices, 14)
		v, ok := LastValid(got)
		require.True(t, ok)
		assert.InDelta(t, 100, v, 1e-9)
	})

	t.Run("leading values are NaN until the window fills", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 100 + float64(i%3)
		}
		got := RSI(prices, 14)
		for i := 0; i < 14; i++ {
			assert.True(t, math.IsNaN(got[i]), "index %d should be NaN", i)
		}
		assert.False(t, math.IsNaN(got[14]))
	})

	t.Run("series shorter than window is all NaN", func(t *testing.T) {
		got := RSI([]float64{1, 2, 3}, 14)
		for i := range got {
			assert.True(t, math.IsNaN(got[i]))
		}
	})
}

func TestBollinger(t *testing.T) {
	prices := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17}
	bands := Bollinger(prices, 10, 2)

	require.Len(t, bands.Middle, len(prices))
	for i := 9; i < len(prices); i++ {
		assert.False(t, math.IsNaN(bands.Upper[i]))
		assert.Greater(t, bands.Upper[i], bands.Middle[i])
		assert.Less(t, bands.Lower[i], bands.Middle[i])
	}
	// Bands are symmetric around the middle.
	last := len(prices) - 1
	assert.InDelta(t,
		bands.Upper[last]-bands.Middle[last],
		bands.Middle[last]-bands.Lower[last],
		1e-9)
}

func TestMACD(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	got := MACD(prices, 12, 26, 9)
	require.Len(t, got.MACD, len(prices))
	require.Len(t, got.Signal, len(prices))

	// A steadily rising series produces a positive MACD.
	last := len(prices) - 1
	assert.Greater(t, got.MACD[last], 0.0)
	assert.Greater(t, got.Signal[last], 0.0)
}

func TestStochastic(t *testing.T) {
	t.Run("price at window high gives K of 100", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		got := Stochastic(prices, 14, 3)
		k, ok := LastValid(got.K)
		require.True(t, ok)
		assert.InDelta(t, 100, k, 1e-9)
	})

	t.Run("flat window gives K of zero", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 100
		}
		got := Stochastic(prices, 14, 3)
		k, ok := LastValid(got.K)
		require.True(t, ok)
		assert.InDelta(t, 0, k, 1e-9)
	})
}
