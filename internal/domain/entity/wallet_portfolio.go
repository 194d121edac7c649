package entity

import "github.com/shopspring/decimal"

// PortfolioSnapshot is the full set of balance entries for one address, partitioned
// at ingestion. It lives for a single command.
type PortfolioSnapshot struct {
	Address     string         `json:"address"`
	Fungible    []BalanceEntry `json:"fungible"`
	NonFungible []BalanceEntry `json:"nonFungible"`
}

// Add appends the entry to the subset matching its kind.
func (p *PortfolioSnapshot) Add(e BalanceEntry) {
	if e.Kind == NonFungible {
		p.NonFungible = append(p.NonFungible, e)
		return
	}
	p.Fungible = append(p.Fungible, e)
}

// Len returns the number of entries across both subsets.
func (p *PortfolioSnapshot) Len() int {
	return len(p.Fungible) + len(p.NonFungible)
}

// PricedEntry is a fungible balance with an optional USD unit price.
type PricedEntry struct {
	BalanceEntry
	PriceUSD decimal.NullDecimal `json:"priceUSD"`
}

// ValueUSD is amount × price; ok is false when the price is absent.
func (p PricedEntry) ValueUSD() (decimal.Decimal, bool) {
	if !p.PriceUSD.Valid {
		return decimal.Zero, false
	}
	return p.Amount().Mul(p.PriceUSD.Decimal), true
}

// ChartSlice is one labeled share of the portfolio chart.
type ChartSlice struct {
	Symbol   string          `json:"symbol"`
	ValueUSD decimal.Decimal `json:"valueUSD"`
	IsNative bool            `json:"isNative"`
}

// Label renders "symbol ($value)".
func (s ChartSlice) Label() string {
	return s.Symbol + " ($" + s.ValueUSD.StringFixed(2) + ")"
}

// PortfolioChart is the chart-mode result: slices plus the rendered PNG.
type PortfolioChart struct {
	Address string       `json:"address"`
	Caption string       `json:"caption"`
	Slices  []ChartSlice `json:"slices"`
	Image   []byte       `json:"-"`
}
