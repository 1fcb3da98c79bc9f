// Package chart renders PNG artifacts for the bot: the price chart with SMA
// and Bollinger overlays, the MACD/stochastic indicator chart, and value
// gauges.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"crypto-pulse/internal/analysis"
	"crypto-pulse/internal/dto"
	"crypto-pulse/pkg/utils"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	smaWindow        = 10
	bollingerWidth   = 2.0
	macdFast         = 12
	macdSlow         = 26
	macdSignal       = 9
	stochasticK      = 14
	stochasticD      = 3
	chartWidth       = 1024
	chartHeight      = 512
	minSamplesToPlot = 2
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Annotation marks a notable point on the price chart.
type Annotation struct {
	Label     string
	Timestamp time.Time
	Value     float64
}

// PriceAnnotations returns the highest and lowest price of the series with
// their timestamps. The first occurrence wins on ties, so the same series
// always yields the same annotations.
func PriceAnnotations(samples []dto.PriceSample) (high, low Annotation, ok bool) {
	if len(samples) == 0 {
		return Annotation{}, Annotation{}, false
	}

	high = Annotation{Timestamp: samples[0].Timestamp, Value: samples[0].Price}
	low = Annotation{Timestamp: samples[0].Timestamp, Value: samples[0].Price}
	for _, s := range samples[1:] {
		if s.Price > high.Value {
			high = Annotation{Timestamp: s.Timestamp, Value: s.Price}
		}
		if s.Price < low.Value {
			low = Annotation{Timestamp: s.Timestamp, Value: s.Price}
		}
	}
	high.Label = fmt.Sprintf("High: %.2f", high.Value)
	low.Label = fmt.Sprintf("Low: %.2f", low.Value)
	return high, low, true
}

// Price renders the asset's price line with an SMA overlay and Bollinger
// Bands, annotated at the extremes.
func (r *Renderer) Price(asset string, samples []dto.PriceSample) ([]byte, error) {
	if len(samples) < minSamplesToPlot {
		return nil, fmt.Errorf("not enough samples to plot %s: got %d", asset, len(samples))
	}

	times := make([]time.Time, len(samples))
	prices := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Timestamp
		prices[i] = s.Price
	}

	bands := analysis.Bollinger(prices, smaWindow, bollingerWidth)

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Price",
			XValues: times,
			YValues: prices,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("4169e1"),
				StrokeWidth: 2,
			},
		},
	}

	if sma, ok := validSubSeries(times, bands.Middle); ok {
		sma.Name = "SMA"
		sma.Style = chart.Style{
			StrokeColor: drawing.ColorFromHex("ffa500"),
			StrokeWidth: 2,
		}
		series = append(series, sma)
	}
	if upper, ok := validSubSeries(times, bands.Upper); ok {
		upper.Name = "Upper Band"
		upper.Style = chart.Style{
			StrokeColor: drawing.ColorFromHex("d3d3d3"),
			StrokeWidth: 1,
		}
		series = append(series, upper)
	}
	if lower, ok := validSubSeries(times, bands.Lower); ok {
		lower.Name = "Lower Band"
		lower.Style = chart.Style{
			StrokeColor: drawing.ColorFromHex("d3d3d3"),
			StrokeWidth: 1,
		}
		series = append(series, lower)
	}

	high, lowAnn, _ := PriceAnnotations(samples)
	series = append(series, chart.AnnotationSeries{
		Annotations: []chart.Value2{
			{XValue: chart.TimeToFloat64(high.Timestamp), YValue: high.Value, Label: high.Label},
			{XValue: chart.TimeToFloat64(lowAnn.Timestamp), YValue: lowAnn.Value, Label: lowAnn.Label},
		},
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("Price of %s over the last 90 days", utils.CapitalizeSentence(asset)),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Date",
		},
		YAxis: chart.YAxis{
			Name: "Price (USD)",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph)
}

// Indicators renders MACD, its signal line and the stochastic oscillator
// on a single canvas.
func (r *Renderer) Indicators(asset string, samples []dto.PriceSample) ([]byte, error) {
	if len(samples) < minSamplesToPlot {
		return nil, fmt.Errorf("not enough samples to plot %s indicators: got %d", asset, len(samples))
	}

	times := make([]time.Time, len(samples))
	prices := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Timestamp
		prices[i] = s.Price
	}

	macd := analysis.MACD(prices, macdFast, macdSlow, macdSignal)
	stoch := analysis.Stochastic(prices, stochasticK, stochasticD)

	var series []chart.Series
	for _, line := range []struct {
		name   string
		values []float64
		color  string
	}{
		{"MACD", macd.MACD, "008000"},
		{"Signal Line", macd.Signal, "ff0000"},
		{"%K", stoch.K, "0000ff"},
		{"%D", stoch.D, "800080"},
	} {
		if s, ok := validSubSeries(times, line.values); ok {
			s.Name = line.name
			s.Style = chart.Style{
				StrokeColor: drawing.ColorFromHex(line.color),
				StrokeWidth: 2,
			}
			series = append(series, s)
		}
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no computable indicators for %s", asset)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Indicators of %s", utils.CapitalizeSentence(asset)),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Date",
		},
		YAxis: chart.YAxis{
			Name: "Value",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph)
}

// Gauge renders a single value against a 0..max scale.
func (r *Renderer) Gauge(value float64, label string, max float64) ([]byte, error) {
	if max <= 0 {
		return nil, fmt.Errorf("gauge max must be positive, got %f", max)
	}
	clamped := value
	if clamped < 0 {
		clamped = 0
	}
	if clamped > max {
		clamped = max
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s: %.2f", label, value),
		Width:    512,
		Height:   chartHeight,
		BarWidth: 120,
		Bars: []chart.Value{
			{Value: clamped, Label: label, Style: chart.Style{
				FillColor:   drawing.ColorFromHex("00008b"),
				StrokeColor: drawing.ColorFromHex("00008b"),
			}},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max},
		},
	}

	return renderPNG(graph)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderPNG(graph pngRenderable) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// validSubSeries extracts the longest suffix of the series with no NaN values
// so rolling indicators plot cleanly past their warm-up period.
func validSubSeries(times []time.Time, values []float64) (chart.TimeSeries, bool) {
	start := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 || len(values)-start < minSamplesToPlot {
		return chart.TimeSeries{}, false
	}
	return chart.TimeSeries{
		XValues: times[start:],
		YValues: values[start:],
	}, true
}
