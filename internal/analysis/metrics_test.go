package analysis

import (
	"testing"
	"time"

	"crypto-pulse/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestPriceChange(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	tests := []struct {
		name    string
		samples []dto.PriceSample
		want    float64
	}{
		{
			name: "ten percent increase",
			samples: []dto.PriceSample{
				{Timestamp: base, Price: 100},
				{Timestamp: base.Add(time.Minute), Price: 110},
			},
			want: 10.0,
		},
		{
			name: "ten percent decrease",
			samples: []dto.PriceSample{
				{Timestamp: base, Price: 100},
				{Timestamp: base.Add(time.Minute), Price: 90},
			},
			want: -10.0,
		},
		{
			name: "single sample yields zero",
			samples: []dto.PriceSample{
				{Timestamp: base, Price: 100},
			},
			want: 0,
		},
		{
			name:    "empty series yields zero",
			samples: nil,
			want:    0,
		},
		{
			name: "samples outside the window are ignored",
			samples: []dto.PriceSample{
				{Timestamp: base.Add(-30 * time.Minute), Price: 50},
				{Timestamp: base, Price: 100},
				{Timestamp: base.Add(4 * time.Minute), Price: 105},
			},
			want: 5.0,
		},
		{
			name: "only the latest sample inside the window yields zero",
			samples: []dto.PriceSample{
				{Timestamp: base.Add(-30 * time.Minute), Price: 50},
				{Timestamp: base, Price: 105},
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceChange(tt.samples, window)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestVolatility(t *testing.T) {
	t.Run("too short series is an error", func(t *testing.T) {
		_, err := Volatility([]float64{100})
		assert.ErrorIs(t, err, ErrInsufficientData)

		_, err = Volatility([]float64{100, 101})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("constant series has zero volatility", func(t *testing.T) {
		v, err := Volatility([]float64{100, 100, 100, 100})
		assert.NoError(t, err)
		assert.InDelta(t, 0, v, 1e-9)
	})

	t.Run("alternating series is positive", func(t *testing.T) {
		v, err := Volatility([]float64{100, 110, 100, 110, 100})
		assert.NoError(t, err)
		assert.Greater(t, v, 0.0)
	})
}

func TestLastValid(t *testing.T) {
	series := SMA([]float64{1, 2, 3, 4, 5}, 3)
	v, ok := LastValid(series)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-9)

	_, ok = LastValid(SMA([]float64{1, 2}, 3))
	assert.False(t, ok)
}
