package analysis

import (
	"errors"
	"math"
	"time"

	"crypto-pulse/internal/dto"
)

// ErrInsufficientData is returned when a metric is undefined for the series.
var ErrInsufficientData = errors.New("insufficient data")

// PriceChange returns the percentage change between the first and last sample
// inside the trailing window of the latest sample. Fewer than two retained
// samples yields 0; callers treat that as "no signal", which is
// indistinguishable from a genuinely flat market.
func PriceChange(samples []dto.PriceSample, window time.Duration) float64 {
	if len(samples) < 2 {
		return 0
	}

	cutoff := samples[len(samples)-1].Timestamp.Add(-window)
	first := -1
	for i, s := range samples {
		if !s.Timestamp.Before(cutoff) {
			first = i
			break
		}
	}
	if first < 0 || first == len(samples)-1 {
		return 0
	}

	earliest := samples[first].Price
	latest := samples[len(samples)-1].Price
	if earliest == 0 {
		return 0
	}
	return (latest - earliest) / earliest * 100
}

// Volatility is the sample standard deviation of simple returns scaled to a
// monthly horizon. Needs at least three samples to produce two returns.
func Volatility(prices []float64) (float64, error) {
	if len(prices) < 3 {
		return 0, ErrInsufficientData
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}
	if len(returns) < 2 {
		return 0, ErrInsufficientData
	}

	v := sampleStd(returns) * math.Sqrt(30)
	if math.IsNaN(v) {
		return 0, ErrInsufficientData
	}
	return v, nil
}

// LastValid returns the last non-NaN value of a series.
func LastValid(series []float64) (float64, bool) {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i], true
		}
	}
	return 0, false
}
