package dto

import "time"

// PriceSample is one observation of an asset's USD price.
type PriceSample struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// CoinCapHistoryResponse mirrors /v2/assets/{id}/history.
type CoinCapHistoryResponse struct {
	Data      []CoinCapHistoryPoint `json:"data"`
	Timestamp int64                 `json:"timestamp"`
}

type CoinCapHistoryPoint struct {
	PriceUsd string `json:"priceUsd"`
	Time     int64  `json:"time"`
}

type GetHistoryParam struct {
	Asset    string
	Interval string
	Lookback time.Duration
}
