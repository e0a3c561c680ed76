package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// LendFeeBase is 2^16 + fee. Decreases of y and z count with this weight.
func LendFeeBase(fee uint16) *big.Int {
	return Add(shared.FeeBase, big.NewInt(int64(fee)))
}

// BorrowFeeBase is 2^16 - fee. Increases of y and z count with this weight.
func BorrowFeeBase(fee uint16) *big.Int {
	return new(big.Int).Sub(shared.FeeBase, big.NewInt(int64(fee)))
}

// Invariant is (y*(z<<32))*x, the product adjusted reserves are compared against.
func Invariant(cp shared.CP) *big.Int {
	out := Shl(cp.Z, shared.FeeShift*2)
	out.Mul(out, cp.Y)
	return out.Mul(out, cp.X)
}

func checkConstantProduct(cp shared.CP, xReserve, yAdjusted, zAdjusted *big.Int) error {
	prod := Mul(yAdjusted, zAdjusted)
	prod.Mul(prod, xReserve)
	if prod.Cmp(Invariant(cp)) < 0 {
		return shared.ErrInvarianceViolation
	}
	return nil
}

// CheckLend validates a lend transition: the fee adjusted product must not
// shrink and yDecrease must cover the minimum fee bound.
func CheckLend(cp shared.CP, xIncrease, yDecrease, zDecrease *big.Int, fee uint16) error {
	if err := CheckUint112(xIncrease, yDecrease, zDecrease); err != nil {
		return err
	}
	feeBase := LendFeeBase(fee)
	xReserve := Add(cp.X, xIncrease)
	if err := CheckUint112(xReserve); err != nil {
		return err
	}
	yAdjusted, err := Sub(Shl(cp.Y, shared.FeeShift), Mul(yDecrease, feeBase), shared.ErrInvarianceViolation)
	if err != nil {
		return err
	}
	zAdjusted, err := Sub(Shl(cp.Z, shared.FeeShift), Mul(zDecrease, feeBase), shared.ErrInvarianceViolation)
	if err != nil {
		return err
	}
	if err := checkConstantProduct(cp, xReserve, yAdjusted, zAdjusted); err != nil {
		return err
	}

	minimum, err := LendMinimum(cp, xIncrease, fee)
	if err != nil {
		return err
	}
	if yDecrease.Cmp(minimum) < 0 {
		return shared.ErrMinimumNotMet
	}
	return nil
}

// LendMinimum is floor((xIncrease*y)<<12 / ((x+xIncrease)*feeBase)).
func LendMinimum(cp shared.CP, xIncrease *big.Int, fee uint16) (*big.Int, error) {
	numerator := Shl(Mul(xIncrease, cp.Y), shared.MinimumFeeShift)
	denominator := Mul(Add(cp.X, xIncrease), LendFeeBase(fee))
	return MulDivDown(numerator, one, denominator)
}

// CheckBorrow validates a borrow transition: the fee adjusted product must not shrink.
func CheckBorrow(cp shared.CP, xDecrease, yIncrease, zIncrease *big.Int, fee uint16) error {
	if err := CheckUint112(xDecrease, yIncrease, zIncrease); err != nil {
		return err
	}
	xReserve, err := Sub(cp.X, xDecrease, shared.ErrInsufficientReserve)
	if err != nil {
		return err
	}
	if xReserve.Sign() == 0 {
		return shared.ErrInsufficientReserve
	}
	if err := CheckUint112(Add(cp.Y, yIncrease), Add(cp.Z, zIncrease)); err != nil {
		return err
	}
	feeBase := BorrowFeeBase(fee)
	yAdjusted := Add(Shl(cp.Y, shared.FeeShift), Mul(yIncrease, feeBase))
	zAdjusted := Add(Shl(cp.Z, shared.FeeShift), Mul(zIncrease, feeBase))
	return checkConstantProduct(cp, xReserve, yAdjusted, zAdjusted)
}

// lendDecrease returns the largest decrease of the dimension b that keeps the
// adjusted product when dimension a (with reserve aReserve) decreases by aDecrease.
func lendDecrease(cp shared.CP, xReserve, aReserve, aDecrease, bReserve, feeBase *big.Int) (*big.Int, error) {
	aAdjusted, err := Sub(Shl(aReserve, shared.FeeShift), Mul(aDecrease, feeBase), shared.ErrInvarianceViolation)
	if err != nil {
		return nil, err
	}
	if aAdjusted.Sign() == 0 {
		return nil, shared.ErrInvarianceViolation
	}
	bAdjusted, err := DivUp(Invariant(cp), Mul(xReserve, aAdjusted))
	if err != nil {
		return nil, err
	}
	bDecrease, err := Sub(Shl(bReserve, shared.FeeShift), bAdjusted, shared.ErrInvarianceViolation)
	if err != nil {
		return nil, err
	}
	return bDecrease.Div(bDecrease, feeBase), nil
}

// borrowIncrease returns the smallest increase of the dimension b that keeps the
// adjusted product when dimension a (with reserve aReserve) increases by aIncrease.
func borrowIncrease(cp shared.CP, xReserve, aReserve, aIncrease, bReserve, feeBase *big.Int) (*big.Int, error) {
	aAdjusted := Add(Shl(aReserve, shared.FeeShift), Mul(aIncrease, feeBase))
	bAdjusted, err := DivUp(Invariant(cp), Mul(xReserve, aAdjusted))
	if err != nil {
		return nil, err
	}
	base := Shl(bReserve, shared.FeeShift)
	if bAdjusted.Cmp(base) <= 0 {
		return big.NewInt(0), nil
	}
	return DivUp(bAdjusted.Sub(bAdjusted, base), feeBase)
}
