package entity

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		name     string
		info     TokenInfo
		wantKind HoldingKind
		label    string
	}{
		{
			name:     "decimals present and non-zero",
			info:     TokenInfo{Address: "0xabc", Name: "Token", Symbol: "TOK", Decimals: 18, HasDecimals: true, RawBalance: big.NewInt(5)},
			wantKind: Fungible,
			label:    "TOK",
		},
		{
			name:     "zero decimals",
			info:     TokenInfo{Address: "0xdef", Name: "Cool", Symbol: "CNFT", Decimals: 0, HasDecimals: true, RawBalance: big.NewInt(1)},
			wantKind: NonFungible,
			label:    "Cool (collectible)",
		},
		{
			name:     "decimals missing",
			info:     TokenInfo{Address: "0x123", Name: "Punks", Symbol: "PNK", RawBalance: big.NewInt(3)},
			wantKind: NonFungible,
			label:    "Punks (collectible)",
		},
		{
			name:     "missing flag wins over a stray value",
			info:     TokenInfo{Name: "Odd", Symbol: "ODD", Decimals: 8},
			wantKind: NonFungible,
			label:    "Odd (collectible)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ClassifyToken(tt.info)
			assert.Equal(t, tt.wantKind, entry.Kind)
			assert.Equal(t, tt.label, entry.Label())
			assert.NotNil(t, entry.RawAmount)
		})
	}
}

func TestNonFungibleAmountIsUnscaled(t *testing.T) {
	entry := ClassifyToken(TokenInfo{Name: "Cool", Symbol: "CNFT", HasDecimals: true, RawBalance: big.NewInt(7)})
	assert.Equal(t, "7", entry.Amount().String())
	assert.Equal(t, "Cool", entry.ShortLabel())
	assert.Equal(t, "7", entry.RawBalanceString())
	assert.False(t, entry.Priceable())
}

func TestPricedEntryValue(t *testing.T) {
	raw, _ := new(big.Int).SetString("2000000000000000000", 10)
	entry := PricedEntry{BalanceEntry: BalanceEntry{Symbol: "TOK", RawAmount: raw, Decimals: 18, ContractAddress: "0xabc"}}

	_, ok := entry.ValueUSD()
	assert.False(t, ok)

	entry.PriceUSD = decimal.NewNullDecimal(decimal.NewFromInt(3))
	value, ok := entry.ValueUSD()
	assert.True(t, ok)
	assert.Equal(t, "6.00", value.StringFixed(2))
}

func TestSnapshotAdd(t *testing.T) {
	var snap PortfolioSnapshot
	snap.Add(BalanceEntry{Symbol: "A", Kind: Fungible})
	snap.Add(BalanceEntry{Symbol: "B", Kind: NonFungible})
	snap.Add(BalanceEntry{Symbol: "C", Kind: Fungible})

	assert.Len(t, snap.Fungible, 2)
	assert.Len(t, snap.NonFungible, 1)
	assert.Equal(t, 3, snap.Len())
}

func TestScanErrorKinds(t *testing.T) {
	err := NewScanError(KindNoData, "No tokens found at this address.")
	assert.Equal(t, "No tokens found at this address.", err.Error())
	assert.True(t, IsKind(err, KindNoData))
	assert.False(t, IsKind(err, KindUpstreamUnavailable))

	se, ok := AsScanError(err)
	assert.True(t, ok)
	assert.Equal(t, "no_data", se.Kind.String())
}

func TestChartSliceLabel(t *testing.T) {
	s := ChartSlice{Symbol: "ETH", ValueUSD: decimal.RequireFromString("1234.5")}
	assert.Equal(t, "ETH ($1234.50)", s.Label())
}
