package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// Sub returns a-b, or err when b > a.
func Sub(a, b *big.Int, err error) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, err
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Shl(a *big.Int, b uint) *big.Int {
	return new(big.Int).Lsh(a, b)
}

func Shr(a *big.Int, b uint) *big.Int {
	return new(big.Int).Rsh(a, b)
}

// CheckUint112 reports ErrReserveOverflow for values outside [0, 2^112).
func CheckUint112(values ...*big.Int) error {
	for _, v := range values {
		if v.Sign() < 0 || v.Cmp(shared.MaxUint112) > 0 {
			return shared.ErrReserveOverflow
		}
	}
	return nil
}

func isPositive(values ...*big.Int) bool {
	for _, v := range values {
		if v == nil || v.Sign() <= 0 {
			return false
		}
	}
	return true
}
