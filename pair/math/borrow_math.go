package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

type borrowSetup struct {
	xDecrease *big.Int
	xReserve  *big.Int
	feeBase   *big.Int
	fees      shared.FeeSplit
}

func newBorrowSetup(state shared.State, assetOut, duration *big.Int, fees shared.Fees) (borrowSetup, error) {
	if !isPositive(assetOut) {
		return borrowSetup{}, shared.ErrZeroAmount
	}
	if duration.Sign() <= 0 {
		return borrowSetup{}, shared.ErrPoolMatured
	}
	if !isPositive(state.X, state.Y, state.Z) {
		return borrowSetup{}, shared.ErrNoLiquidity
	}
	xDecrease, err := GetBorrowXDecrease(assetOut, duration, fees)
	if err != nil {
		return borrowSetup{}, err
	}
	if err := CheckUint112(xDecrease); err != nil {
		return borrowSetup{}, err
	}
	if xDecrease.Cmp(state.X) >= 0 {
		return borrowSetup{}, shared.ErrInsufficientReserve
	}
	split, err := GetBorrowFees(assetOut, xDecrease, fees)
	if err != nil {
		return borrowSetup{}, err
	}
	return borrowSetup{
		xDecrease: xDecrease,
		xReserve:  new(big.Int).Sub(state.X, xDecrease),
		feeBase:   BorrowFeeBase(fees.Fee),
		fees:      split,
	}, nil
}

// GetCollateralMinimum is ceil(z*xDecrease / (x-xDecrease)), the collateral
// owed regardless of duration.
func GetCollateralMinimum(cp shared.CP, xDecrease *big.Int) (*big.Int, error) {
	xReserve, err := Sub(cp.X, xDecrease, shared.ErrInsufficientReserve)
	if err != nil {
		return nil, err
	}
	return MulDivUp(cp.Z, xDecrease, xReserve)
}

// GetBorrowCollateral is ceil(duration*zIncrease / 2^25) + ceil(z*xDecrease / (x-xDecrease)).
func GetBorrowCollateral(cp shared.CP, xDecrease, zIncrease, duration *big.Int) (*big.Int, error) {
	minimum, err := GetCollateralMinimum(cp, xDecrease)
	if err != nil {
		return nil, err
	}
	collateral := ShiftRightUp(Mul(duration, zIncrease), shared.InsuranceShift)
	return collateral.Add(collateral, minimum), nil
}

// BorrowGivenDebt solves the largest y increase whose debt stays within debtIn,
// then the z increase from the fee adjusted constant product.
func BorrowGivenDebt(state shared.State, assetOut, debtIn, duration *big.Int, fees shared.Fees) (shared.BorrowResult, error) {
	if !isPositive(debtIn) {
		return shared.BorrowResult{}, shared.ErrZeroAmount
	}
	setup, err := newBorrowSetup(state, assetOut, duration, fees)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	if debtIn.Cmp(setup.xDecrease) <= 0 {
		return shared.BorrowResult{}, shared.ErrMinimumNotMet
	}

	yIncrease := Shl(new(big.Int).Sub(debtIn, setup.xDecrease), shared.Resolution)
	yIncrease.Div(yIncrease, duration)
	zIncrease, err := borrowIncrease(state.CP, setup.xReserve, state.Y, yIncrease, state.Z, setup.feeBase)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	return finishBorrow(state, assetOut, setup, yIncrease, zIncrease, duration, fees)
}

// BorrowGivenCollateral solves the largest z increase whose collateral stays
// within collateralIn, then the y increase from the fee adjusted constant product.
func BorrowGivenCollateral(state shared.State, assetOut, collateralIn, duration *big.Int, fees shared.Fees) (shared.BorrowResult, error) {
	if !isPositive(collateralIn) {
		return shared.BorrowResult{}, shared.ErrZeroAmount
	}
	setup, err := newBorrowSetup(state, assetOut, duration, fees)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	minimum, err := GetCollateralMinimum(state.CP, setup.xDecrease)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	if collateralIn.Cmp(minimum) <= 0 {
		return shared.BorrowResult{}, shared.ErrMinimumNotMet
	}

	zIncrease := Shl(new(big.Int).Sub(collateralIn, minimum), shared.InsuranceShift)
	zIncrease.Div(zIncrease, duration)
	yIncrease, err := borrowIncrease(state.CP, setup.xReserve, state.Z, zIncrease, state.Y, setup.feeBase)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	return finishBorrow(state, assetOut, setup, yIncrease, zIncrease, duration, fees)
}

// BorrowGivenPercent places the borrow between the minimum y increase (percent 0),
// the curve midpoint (2^31) and the minimum z increase (2^32).
func BorrowGivenPercent(state shared.State, assetOut *big.Int, percent uint64, duration *big.Int, fees shared.Fees) (shared.BorrowResult, error) {
	half, fraction, err := SplitPercent(percent)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	return BorrowGivenHalf(state, assetOut, half, fraction, duration, fees)
}

// BorrowGivenHalf interpolates on one half of the curve, rounding up.
func BorrowGivenHalf(state shared.State, assetOut *big.Int, half shared.Half, fraction uint64, duration *big.Int, fees shared.Fees) (shared.BorrowResult, error) {
	if fraction > shared.PercentHalf {
		return shared.BorrowResult{}, shared.ErrInvalidPercent
	}
	setup, err := newBorrowSetup(state, assetOut, duration, fees)
	if err != nil {
		return shared.BorrowResult{}, err
	}

	var yIncrease, zIncrease *big.Int
	switch half {
	case shared.LowHalf:
		yIncrease, err = borrowInterpolate(state.CP, state.Y, setup, fraction)
		if err != nil {
			return shared.BorrowResult{}, err
		}
		zIncrease, err = borrowIncrease(state.CP, setup.xReserve, state.Y, yIncrease, state.Z, setup.feeBase)
	case shared.HighHalf:
		zIncrease, err = borrowInterpolate(state.CP, state.Z, setup, fraction)
		if err != nil {
			return shared.BorrowResult{}, err
		}
		yIncrease, err = borrowIncrease(state.CP, setup.xReserve, state.Z, zIncrease, state.Y, setup.feeBase)
	default:
		return shared.BorrowResult{}, shared.ErrInvalidPercent
	}
	if err != nil {
		return shared.BorrowResult{}, err
	}
	return finishBorrow(state, assetOut, setup, yIncrease, zIncrease, duration, fees)
}

// BorrowMin is ceil(ceil(xDecrease*reserve / xReserve) / 16).
func BorrowMin(reserve, xDecrease, xReserve *big.Int) (*big.Int, error) {
	out, err := MulDivUp(xDecrease, reserve, xReserve)
	if err != nil {
		return nil, err
	}
	return ShiftRightUp(out, shared.MinimumShift), nil
}

// BorrowMid is the increase that moves reserve to its curve midpoint,
// ceil(((ceil_sqrt(reserve^2*x/xReserve) - reserve) << 16) / feeBase).
func BorrowMid(reserve, x, xReserve, feeBase *big.Int) (*big.Int, error) {
	squared, err := MulDivUp(Mul(reserve, reserve), x, xReserve)
	if err != nil {
		return nil, err
	}
	root := SqrtUp(squared)
	mid, err := Sub(Shl(root, shared.FeeShift), Shl(reserve, shared.FeeShift), shared.ErrInvarianceViolation)
	if err != nil {
		return nil, err
	}
	return DivUp(mid, feeBase)
}

func borrowInterpolate(cp shared.CP, reserve *big.Int, setup borrowSetup, fraction uint64) (*big.Int, error) {
	lower, err := BorrowMin(reserve, setup.xDecrease, setup.xReserve)
	if err != nil {
		return nil, err
	}
	mid, err := BorrowMid(reserve, cp.X, setup.xReserve, setup.feeBase)
	if err != nil {
		return nil, err
	}
	return interpolate(lower, mid, fraction, shared.RoundingUp)
}

func finishBorrow(state shared.State, assetOut *big.Int, setup borrowSetup, yIncrease, zIncrease, duration *big.Int, fees shared.Fees) (shared.BorrowResult, error) {
	if err := CheckBorrow(state.CP, setup.xDecrease, yIncrease, zIncrease, fees.Fee); err != nil {
		return shared.BorrowResult{}, err
	}
	collateral, err := GetBorrowCollateral(state.CP, setup.xDecrease, zIncrease, duration)
	if err != nil {
		return shared.BorrowResult{}, err
	}
	debt := GetDebt(duration, setup.xDecrease, yIncrease)
	if err := CheckUint112(debt, collateral); err != nil {
		return shared.BorrowResult{}, err
	}
	return shared.BorrowResult{
		Delta:    shared.Delta{X: new(big.Int).Set(setup.xDecrease), Y: yIncrease, Z: zIncrease},
		AssetOut: new(big.Int).Set(assetOut),
		Fees:     setup.fees,
		Due:      shared.Due{Debt: debt, Collateral: collateral},
	}, nil
}
