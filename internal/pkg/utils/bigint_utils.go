package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal converts an amount in the smallest denomination to a human-scale
// decimal by dividing by 10^precision. The conversion is exact.
// Example: amount=1234500000000000000, precision=18 => 1.2345
func ToDecimal(amount *big.Int, precision int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -precision)
}

// FromDecimal is the inverse of ToDecimal, truncating anything below the smallest unit.
func FromDecimal(value decimal.Decimal, precision int32) *big.Int {
	return value.Shift(precision).BigInt()
}

// FormatAmount renders a decimal the way a float is usually printed in chat replies:
// whole numbers keep a trailing ".0", fractions keep every significant digit.
func FormatAmount(value decimal.Decimal) string {
	if value.IsInteger() {
		return value.String() + ".0"
	}
	return value.String()
}

// ParseBigInt parses a base-10 integer string. Scientific notation ("1.5e+21") is
// accepted as long as it denotes an integer.
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty integer string")
	}
	if v, ok := new(big.Int).SetString(s, 10); ok {
		return v, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("invalid integer %q: has a fractional part", s)
	}
	return d.BigInt(), nil
}
