package math

import (
	"errors"
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

var (
	errDivisionByZero = errors.New("MulDiv: division by zero")

	one = big.NewInt(1)
)

// MulDiv returns x*y/denominator rounded in the given direction.
func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, errDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	div, mod := new(big.Int).QuoRem(prod, denominator, new(big.Int))
	if rounding == shared.RoundingUp && mod.Sign() != 0 {
		div.Add(div, one)
	}
	return div, nil
}

// MulDivDown is floor(x*y/denominator).
func MulDivDown(x, y, denominator *big.Int) (*big.Int, error) {
	return MulDiv(x, y, denominator, shared.RoundingDown)
}

// MulDivUp is ceil(x*y/denominator).
func MulDivUp(x, y, denominator *big.Int) (*big.Int, error) {
	return MulDiv(x, y, denominator, shared.RoundingUp)
}

// DivUp is ceil(x/denominator).
func DivUp(x, denominator *big.Int) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, errDivisionByZero
	}
	div, mod := new(big.Int).QuoRem(x, denominator, new(big.Int))
	if mod.Sign() != 0 {
		div.Add(div, one)
	}
	return div, nil
}

// ShiftRightUp is ceil(x / 2^n).
func ShiftRightUp(x *big.Int, n uint) *big.Int {
	out := new(big.Int).Rsh(x, n)
	if new(big.Int).Lsh(out, n).Cmp(x) != 0 {
		out.Add(out, one)
	}
	return out
}

// Sqrt is the floor integer square root. Newton iteration starts from the
// largest power of two not above value and decreases monotonically.
func Sqrt(value *big.Int) *big.Int {
	if value.Sign() == 0 {
		return big.NewInt(0)
	}
	if value.Cmp(one) == 0 {
		return big.NewInt(1)
	}
	x := new(big.Int).Lsh(one, uint(value.BitLen()-1))
	y := new(big.Int).Add(x, new(big.Int).Div(value, x))
	y.Rsh(y, 1)

	for y.Cmp(x) < 0 {
		x.Set(y)
		y = new(big.Int).Add(x, new(big.Int).Div(value, x))
		y.Rsh(y, 1)
	}
	return x
}

// SqrtUp is the ceiling integer square root.
func SqrtUp(value *big.Int) *big.Int {
	out := Sqrt(value)
	if new(big.Int).Mul(out, out).Cmp(value) < 0 {
		out.Add(out, one)
	}
	return out
}

// Min returns the smallest of the values.
func Min(values ...*big.Int) *big.Int {
	if len(values) == 0 {
		return big.NewInt(0)
	}
	out := values[0]
	for _, v := range values[1:] {
		if v.Cmp(out) < 0 {
			out = v
		}
	}
	return new(big.Int).Set(out)
}
