package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name      string
		amount    *big.Int
		precision int32
		want      string
	}{
		{"nil amount", nil, 18, "0"},
		{"zero precision", big.NewInt(42), 0, "42"},
		{"one ether", new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), 18, "1"},
		{"fraction", big.NewInt(1234500000000000000), 18, "1.2345"},
		{"six decimals", big.NewInt(2500000), 6, "2.5"},
		{"tiny", big.NewInt(1), 18, "0.000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDecimal(tt.amount, tt.precision).String())
		})
	}
}

func TestToDecimalInvertsScaling(t *testing.T) {
	raws := []string{"0", "1", "999999999999999999", "123456789012345678901234567890"}
	for _, raw := range raws {
		for _, precision := range []int32{0, 1, 6, 8, 18, 30} {
			amount, ok := new(big.Int).SetString(raw, 10)
			require.True(t, ok)

			back := FromDecimal(ToDecimal(amount, precision), precision)
			assert.Equal(t, 0, amount.Cmp(back), "raw=%s precision=%d", raw, precision)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2.0", FormatAmount(decimal.NewFromInt(2)))
	assert.Equal(t, "0.0", FormatAmount(decimal.Zero))
	assert.Equal(t, "1.5", FormatAmount(decimal.RequireFromString("1.50")))
	assert.Equal(t, "0.000001", FormatAmount(ToDecimal(big.NewInt(1), 6)))
}

func TestParseBigInt(t *testing.T) {
	v, err := ParseBigInt("1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	v, err = ParseBigInt("1.5e+21")
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000000", v.String())

	_, err = ParseBigInt("")
	assert.Error(t, err)

	_, err = ParseBigInt("1.25")
	assert.Error(t, err)

	_, err = ParseBigInt("abc")
	assert.Error(t, err)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0xd8dA...6045", ShortAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.Equal(t, "0x1234", ShortAddress("0x1234"))
}
