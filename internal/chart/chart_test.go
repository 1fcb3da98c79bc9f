package chart

import (
	"testing"
	"time"

	"crypto-pulse/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries(n int) []dto.PriceSample {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]dto.PriceSample, n)
	for i := range samples {
		price := 100 + 10*float64(i%7) - float64(i%3)
		samples[i] = dto.PriceSample{
			Timestamp: base.AddDate(0, 0, i),
			Price:     price,
		}
	}
	return samples
}

func TestPriceAnnotations(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := []dto.PriceSample{
		{Timestamp: base, Price: 100},
		{Timestamp: base.AddDate(0, 0, 1), Price: 140},
		{Timestamp: base.AddDate(0, 0, 2), Price: 90},
		{Timestamp: base.AddDate(0, 0, 3), Price: 120},
	}

	high, low, ok := PriceAnnotations(samples)
	require.True(t, ok)
	assert.Equal(t, 140.0, high.Value)
	assert.Equal(t, base.AddDate(0, 0, 1), high.Timestamp)
	assert.Equal(t, "High: 140.00", high.Label)
	assert.Equal(t, 90.0, low.Value)
	assert.Equal(t, base.AddDate(0, 0, 2), low.Timestamp)
	assert.Equal(t, "Low: 90.00", low.Label)
}

func TestPriceAnnotationsDeterministic(t *testing.T) {
	samples := sampleSeries(90)

	h1, l1, ok1 := PriceAnnotations(samples)
	h2, l2, ok2 := PriceAnnotations(samples)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, h1, h2)
	assert.Equal(t, l1, l2)
}

func TestPriceAnnotationsEmpty(t *testing.T) {
	_, _, ok := PriceAnnotations(nil)
	assert.False(t, ok)
}

func TestRendererPrice(t *testing.T) {
	r := NewRenderer()

	png, err := r.Price("bitcoin", sampleSeries(90))
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRendererPriceTooFewSamples(t *testing.T) {
	r := NewRenderer()

	_, err := r.Price("bitcoin", sampleSeries(1))
	assert.Error(t, err)
}

func TestRendererIndicators(t *testing.T) {
	r := NewRenderer()

	png, err := r.Indicators("ethereum", sampleSeries(90))
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRendererGauge(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name    string
		value   float64
		max     float64
		wantErr bool
	}{
		{name: "rsi gauge", value: 62.5, max: 100},
		{name: "volatility gauge", value: 0.4, max: 1},
		{name: "value above max is clamped", value: 120, max: 100},
		{name: "negative value is clamped", value: -5, max: 100},
		{name: "non-positive max", value: 10, max: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := r.Gauge(tt.value, "RSI", tt.max)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, png)
		})
	}
}
