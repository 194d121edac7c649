package entity

import "math/big"

// TokenInfo holds the token metadata reported by the holdings API for one balance.
// HasDecimals is false when the upstream omitted the decimals field.
type TokenInfo struct {
	Address     string
	Name        string
	Symbol      string
	Decimals    int32
	HasDecimals bool
	RawBalance  *big.Int
}

// ClassifyToken turns upstream token metadata into a balance entry. A token whose
// decimals are absent or zero is always non-fungible.
func ClassifyToken(t TokenInfo) BalanceEntry {
	raw := t.RawBalance
	if raw == nil {
		raw = new(big.Int)
	}
	if t.HasDecimals && t.Decimals != 0 {
		return BalanceEntry{
			Symbol:          t.Symbol,
			Name:            t.Name,
			RawAmount:       raw,
			Decimals:        t.Decimals,
			ContractAddress: t.Address,
			Kind:            Fungible,
		}
	}
	return BalanceEntry{
		Symbol:          t.Symbol,
		Name:            t.Name,
		RawAmount:       raw,
		ContractAddress: t.Address,
		Kind:            NonFungible,
	}
}
