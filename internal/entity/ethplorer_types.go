package entity

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// EthplorerAddressInfo is the response of getAddressInfo.
type EthplorerAddressInfo struct {
	Address string           `json:"address"`
	ETH     *EthplorerETH    `json:"ETH"`
	Tokens  []EthplorerToken `json:"tokens"`
	Error   *EthplorerError  `json:"error"`
}

// EthplorerETH holds the native-coin balance block.
type EthplorerETH struct {
	Balance    jsoniter.Number `json:"balance"`
	RawBalance string          `json:"rawBalance"`
}

// EthplorerToken is one token balance of an address.
type EthplorerToken struct {
	TokenInfo  EthplorerTokenInfo `json:"tokenInfo"`
	Balance    jsoniter.Number    `json:"balance"`
	RawBalance string             `json:"rawBalance"`
}

// EthplorerTokenInfo is the token metadata. Decimals arrives as a string or a number,
// or is missing entirely for many collectibles.
type EthplorerTokenInfo struct {
	Address  string       `json:"address"`
	Name     string       `json:"name"`
	Symbol   string       `json:"symbol"`
	Decimals FlexibleUint `json:"decimals"`
}

// EthplorerError is returned in-band with HTTP 200 for bad requests.
type EthplorerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FlexibleUint decodes a JSON string or number holding a small unsigned integer.
type FlexibleUint struct {
	Value int32
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleUint) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = FlexibleUint{}
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < 0 {
		// Garbage decimals are treated like missing ones.
		*f = FlexibleUint{}
		return nil
	}
	*f = FlexibleUint{Value: int32(v), Valid: true}
	return nil
}
