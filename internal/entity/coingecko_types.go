package entity

import "github.com/shopspring/decimal"

// CoinGeckoContractResponse is the subset of /coins/{platform}/contract/{address} we read.
type CoinGeckoContractResponse struct {
	ID         string               `json:"id"`
	Symbol     string               `json:"symbol"`
	MarketData *CoinGeckoMarketData `json:"market_data"`
}

// CoinGeckoMarketData holds current prices keyed by vs-currency. A null quote decodes as invalid.
type CoinGeckoMarketData struct {
	CurrentPrice map[string]decimal.NullDecimal `json:"current_price"`
}
