// Package analysis holds the pure indicator and metric math. All rolling
// computations return a slice aligned with the input; positions before the
// window has filled are NaN and callers are expected to skip them.
package analysis

import "math"

// SMA returns the simple moving average with the given window.
func SMA(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if window <= 0 || len(prices) < window {
		return out
	}

	var sum float64
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd returns the rolling sample standard deviation.
func RollingStd(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if window < 2 || len(prices) < window {
		return out
	}

	for i := window - 1; i < len(prices); i++ {
		out[i] = sampleStd(prices[i-window+1 : i+1])
	}
	return out
}

// EMA returns the exponential moving average with the given span,
// seeded from the first value.
func EMA(prices []float64, span int) []float64 {
	out := nanSlice(len(prices))
	if span <= 0 || len(prices) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}
	return out
}

type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// Bollinger computes bands around the SMA at width stddevs of rolling deviation.
func Bollinger(prices []float64, window int, width float64) BollingerResult {
	middle := SMA(prices, window)
	std := RollingStd(prices, window)

	upper := nanSlice(len(prices))
	lower := nanSlice(len(prices))
	for i := range prices {
		if math.IsNaN(middle[i]) || math.IsNaN(std[i]) {
			continue
		}
		upper[i] = middle[i] + width*std[i]
		lower[i] = middle[i] - width*std[i]
	}

	return BollingerResult{Middle: middle, Upper: upper, Lower: lower}
}

// RSI computes the relative strength index using rolling-mean gains and losses.
func RSI(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if len(prices) < window+1 {
		return out
	}

	gains := nanSlice(len(prices))
	losses := nanSlice(len(prices))
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i] = delta
			losses[i] = 0
		} else {
			gains[i] = 0
			losses[i] = -delta
		}
	}

	for i := window; i < len(prices); i++ {
		avgGain := mean(gains[i-window+1 : i+1])
		avgLoss := mean(losses[i-window+1 : i+1])
		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - (100 / (1 + rs))
	}
	return out
}

type MACDResult struct {
	MACD   []float64
	Signal []float64
}

// MACD computes EMA(fast)−EMA(slow) and its signal line EMA.
func MACD(prices []float64, fast, slow, signal int) MACDResult {
	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	macd := nanSlice(len(prices))
	for i := range prices {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	return MACDResult{
		MACD:   macd,
		Signal: EMA(macd, signal),
	}
}

type StochasticResult struct {
	K []float64
	D []float64
}

// Stochastic computes the %K oscillator over kWindow lows/highs and %D as
// its dWindow moving average.
func Stochastic(prices []float64, kWindow, dWindow int) StochasticResult {
	k := nanSlice(len(prices))
	if len(prices) >= kWindow {
		for i := kWindow - 1; i < len(prices); i++ {
			lo, hi := minMax(prices[i-kWindow+1 : i+1])
			if hi == lo {
				k[i] = 0
				continue
			}
			k[i] = 100 * (prices[i] - lo) / (hi - lo)
		}
	}

	d := nanSlice(len(prices))
	for i := kWindow + dWindow - 2; i < len(prices); i++ {
		d[i] = mean(k[i-dWindow+1 : i+1])
	}

	return StochasticResult{K: k, D: d}
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
