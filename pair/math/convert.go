package math

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Q32ToDecimal renders a 2^32 scaled value. decimalPlaces < 0 keeps full precision.
func Q32ToDecimal(num *big.Int, decimalPlaces int32) decimal.Decimal {
	if num == nil {
		return decimal.Zero
	}
	out := decimal.NewFromBigInt(num, 0).Div(decimal.NewFromBigInt(shared.Q32, 0))
	if decimalPlaces >= 0 {
		return out.Round(decimalPlaces)
	}
	return out
}

// DecimalToQ32 is the floor of num*2^32.
func DecimalToQ32(num decimal.Decimal) *big.Int {
	return num.Mul(decimal.NewFromBigInt(shared.Q32, 0)).Floor().BigInt()
}
