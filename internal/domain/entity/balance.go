package entity

import (
	"math/big"

	"block_scanner/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

// HoldingKind tags a balance entry as fungible or collectible. It is set once when
// the upstream token list is ingested and never re-derived from display strings.
type HoldingKind int

const (
	// Fungible is a divisible token with a meaningful per-unit price.
	Fungible HoldingKind = iota
	// NonFungible is a collectible-style holding that is never priced or charted.
	NonFungible
)

// CollectibleMarker is appended to the name of non-fungible holdings in their display label.
const CollectibleMarker = "(collectible)"

// BalanceEntry represents one holding at an address.
type BalanceEntry struct {
	Symbol          string      `json:"symbol"`
	Name            string      `json:"name,omitempty"`
	RawAmount       *big.Int    `json:"-"`
	Decimals        int32       `json:"decimals"`
	ContractAddress string      `json:"contractAddress,omitempty"` // empty for the native coin
	Kind            HoldingKind `json:"kind"`
}

// Amount returns the human-scale amount. Non-fungible holdings are not scaled.
func (b BalanceEntry) Amount() decimal.Decimal {
	if b.Kind == NonFungible {
		return utils.ToDecimal(b.RawAmount, 0)
	}
	return utils.ToDecimal(b.RawAmount, b.Decimals)
}

// Label is the display label: the symbol for fungible holdings, "<name> (collectible)" otherwise.
func (b BalanceEntry) Label() string {
	if b.Kind == NonFungible {
		return b.Name + " " + CollectibleMarker
	}
	return b.Symbol
}

// ShortLabel is the display label without the collectible marker.
func (b BalanceEntry) ShortLabel() string {
	if b.Kind == NonFungible {
		return b.Name
	}
	return b.Symbol
}

// RawBalanceString renders the unscaled balance.
func (b BalanceEntry) RawBalanceString() string {
	if b.RawAmount == nil {
		return "0"
	}
	return b.RawAmount.String()
}

// Priceable reports whether the entry can be sent to the price service.
func (b BalanceEntry) Priceable() bool {
	return b.Kind == Fungible && b.ContractAddress != ""
}
