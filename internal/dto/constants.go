package dto

// Assets offered in the subscribe and chart menus.
const (
	AssetBitcoin  = "bitcoin"
	AssetEthereum = "ethereum"
	AssetTether   = "tether"
	AssetSolana   = "solana"
)

func AssetList() []string {
	return []string{
		AssetBitcoin,
		AssetEthereum,
		AssetTether,
		AssetSolana,
	}
}

func IsKnownAsset(asset string) bool {
	for _, a := range AssetList() {
		if a == asset {
			return true
		}
	}
	return false
}

type ChartKind string

const (
	ChartKindPrice      ChartKind = "price"
	ChartKindIndicators ChartKind = "indicators"
	ChartKindVolatility ChartKind = "volatility"
	ChartKindRSI        ChartKind = "rsi"
)

// CoinCap history intervals.
const (
	IntervalMinute = "m1"
	IntervalDaily  = "d1"
)
