package number

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// WadDecimals fixed point precision of WAD values
const WadDecimals = 18

// FromUint256 raw integer amount to a decimal with the token decimals
func FromUint256(x *uint256.Int, decimals int32) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -decimals)
}

// FromWad WAD fixed point to decimal
func FromWad(x *uint256.Int) decimal.Decimal {
	return FromUint256(x, WadDecimals)
}

// Ceil round up to precision digits after the point
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}
