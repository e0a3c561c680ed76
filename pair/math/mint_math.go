package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// GetLiquidityTotal is the liquidity minted by the first deposit, assetIn << 56.
func GetLiquidityTotal(xIncrease *big.Int) *big.Int {
	return Shl(xIncrease, shared.LiquidityShift)
}

// GetDebt is xIncrease + ceil(duration*yIncrease / 2^32).
func GetDebt(duration, xIncrease, yIncrease *big.Int) *big.Int {
	interest := ShiftRightUp(Mul(duration, yIncrease), shared.Resolution)
	return interest.Add(interest, xIncrease)
}

// GetMintCollateral is ceil((duration*yIncrease + xIncrease<<33) * zIncrease / (xIncrease<<32)).
func GetMintCollateral(duration, xIncrease, yIncrease, zIncrease *big.Int) (*big.Int, error) {
	numerator := Mul(duration, yIncrease)
	numerator.Add(numerator, Shl(xIncrease, shared.Resolution+1))
	return MulDivUp(numerator, zIncrease, Shl(xIncrease, shared.Resolution))
}

// NewPool derives the first reserve triple of a pool from a single seed.
func NewPool(assetIn, debtIn, collateralIn, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if !isPositive(assetIn, debtIn, collateralIn) {
		return shared.MintResult{}, shared.ErrZeroAmount
	}
	if duration.Sign() <= 0 {
		return shared.MintResult{}, shared.ErrPoolMatured
	}
	if err := CheckUint112(assetIn); err != nil {
		return shared.MintResult{}, err
	}
	if debtIn.Cmp(assetIn) <= 0 {
		return shared.MintResult{}, shared.ErrInvalidSeed
	}

	yIncrease := Shl(new(big.Int).Sub(debtIn, assetIn), shared.Resolution)
	yIncrease.Div(yIncrease, duration)

	denominator := Mul(duration, yIncrease)
	denominator.Add(denominator, Shl(assetIn, shared.Resolution+1))
	zIncrease, err := MulDivDown(Shl(Mul(collateralIn, assetIn), shared.Resolution), one, denominator)
	if err != nil {
		return shared.MintResult{}, err
	}

	if yIncrease.Sign() == 0 || zIncrease.Sign() == 0 {
		return shared.MintResult{}, shared.ErrInvalidSeed
	}
	if CheckUint112(yIncrease, zIncrease) != nil {
		return shared.MintResult{}, shared.ErrInvalidSeed
	}

	liquidityTotal := GetLiquidityTotal(assetIn)
	liquidityOut, err := GetLiquidityOut(liquidityTotal, duration, fees.ProtocolFee)
	if err != nil {
		return shared.MintResult{}, err
	}

	collateral, err := GetMintCollateral(duration, assetIn, yIncrease, zIncrease)
	if err != nil {
		return shared.MintResult{}, err
	}

	return shared.MintResult{
		Delta:             shared.Delta{X: new(big.Int).Set(assetIn), Y: yIncrease, Z: zIncrease},
		AssetIn:           new(big.Int).Set(assetIn),
		LiquidityTotal:    liquidityTotal,
		LiquidityOut:      liquidityOut,
		ProtocolLiquidity: new(big.Int).Sub(liquidityTotal, liquidityOut),
		FeeStoredIncrease: big.NewInt(0),
		Due: shared.Due{
			Debt:       GetDebt(duration, assetIn, yIncrease),
			Collateral: collateral,
		},
	}, nil
}

// LiquidityGivenAsset adds xIncrease = assetIn to an existing pool. When the
// pool holds accrued fees the depositor also buys into them, so the asset
// required is assetIn plus ceil(feeStored*assetIn/x).
func LiquidityGivenAsset(state shared.State, assetIn, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if !isPositive(assetIn) {
		return shared.MintResult{}, shared.ErrZeroAmount
	}
	return mintProportional(state, assetIn, duration, fees)
}

// LiquidityGivenAssetWithFees adds liquidity for a fee inclusive asset amount:
// xIncrease = floor(assetIn*x / (x+feeStored)) and the remainder buys into the
// accrued pool fees.
func LiquidityGivenAssetWithFees(state shared.State, assetIn, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if !isPositive(assetIn) {
		return shared.MintResult{}, shared.ErrZeroAmount
	}
	if err := checkLiquidityState(state); err != nil {
		return shared.MintResult{}, err
	}
	xIncrease, err := MulDivDown(assetIn, state.X, Add(state.X, state.FeeStored))
	if err != nil {
		return shared.MintResult{}, err
	}
	if xIncrease.Sign() == 0 {
		return shared.MintResult{}, shared.ErrMinimumNotMet
	}
	result, err := mintProportional(state, xIncrease, duration, fees)
	if err != nil {
		return shared.MintResult{}, err
	}
	result.FeeStoredIncrease = new(big.Int).Sub(assetIn, xIncrease)
	result.AssetIn = new(big.Int).Set(assetIn)
	return result, nil
}

// LiquidityGivenDebt adds the largest liquidity whose due debt stays within debtIn:
// xIncrease = floor(debtIn*(x<<32) / ((x<<32) + duration*y)).
func LiquidityGivenDebt(state shared.State, debtIn, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if !isPositive(debtIn) {
		return shared.MintResult{}, shared.ErrZeroAmount
	}
	if err := checkLiquidityState(state); err != nil {
		return shared.MintResult{}, err
	}
	xShifted := Shl(state.X, shared.Resolution)
	xIncrease, err := MulDivDown(debtIn, xShifted, Add(xShifted, Mul(duration, state.Y)))
	if err != nil {
		return shared.MintResult{}, err
	}
	return mintWithin(state, xIncrease, duration, fees, func(due shared.Due) bool {
		return due.Debt.Cmp(debtIn) <= 0
	})
}

// LiquidityGivenCollateral adds the largest liquidity whose due collateral stays within collateralIn:
// xIncrease = floor(collateralIn*(x^2<<32) / (z*(duration*y + x<<33))).
func LiquidityGivenCollateral(state shared.State, collateralIn, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if !isPositive(collateralIn) {
		return shared.MintResult{}, shared.ErrZeroAmount
	}
	if err := checkLiquidityState(state); err != nil {
		return shared.MintResult{}, err
	}
	numerator := Shl(Mul(state.X, state.X), shared.Resolution)
	denominator := Mul(duration, state.Y)
	denominator.Add(denominator, Shl(state.X, shared.Resolution+1))
	denominator.Mul(denominator, state.Z)
	xIncrease, err := MulDivDown(collateralIn, numerator, denominator)
	if err != nil {
		return shared.MintResult{}, err
	}
	return mintWithin(state, xIncrease, duration, fees, func(due shared.Due) bool {
		return due.Collateral.Cmp(collateralIn) <= 0
	})
}

// mintWithin steps xIncrease down by one unit when rounding of the due
// pushes it over the caller's ceiling.
func mintWithin(state shared.State, xIncrease, duration *big.Int, fees shared.Fees, within func(shared.Due) bool) (shared.MintResult, error) {
	for i := 0; i < 2; i++ {
		if xIncrease.Sign() <= 0 {
			return shared.MintResult{}, shared.ErrMinimumNotMet
		}
		result, err := mintProportional(state, xIncrease, duration, fees)
		if err != nil {
			return shared.MintResult{}, err
		}
		if within(result.Due) {
			return result, nil
		}
		xIncrease = new(big.Int).Sub(xIncrease, one)
	}
	return shared.MintResult{}, shared.ErrMinimumNotMet
}

func checkLiquidityState(state shared.State) error {
	if state.TotalLiquidity == nil || state.TotalLiquidity.Sign() == 0 || !isPositive(state.X, state.Y, state.Z) {
		return shared.ErrNoLiquidity
	}
	return nil
}

// mintProportional scales y and z by xIncrease/x and mints the smallest of the
// three per-dimension liquidity shares, time decayed.
func mintProportional(state shared.State, xIncrease, duration *big.Int, fees shared.Fees) (shared.MintResult, error) {
	if duration.Sign() <= 0 {
		return shared.MintResult{}, shared.ErrPoolMatured
	}
	if err := checkLiquidityState(state); err != nil {
		return shared.MintResult{}, err
	}

	yIncrease, err := MulDivDown(state.Y, xIncrease, state.X)
	if err != nil {
		return shared.MintResult{}, err
	}
	zIncrease, err := MulDivDown(state.Z, xIncrease, state.X)
	if err != nil {
		return shared.MintResult{}, err
	}
	if yIncrease.Sign() == 0 || zIncrease.Sign() == 0 {
		return shared.MintResult{}, shared.ErrMinimumNotMet
	}
	if err := CheckUint112(xIncrease, Add(state.X, xIncrease), Add(state.Y, yIncrease), Add(state.Z, zIncrease)); err != nil {
		return shared.MintResult{}, err
	}

	fromX, err := MulDivDown(state.TotalLiquidity, xIncrease, state.X)
	if err != nil {
		return shared.MintResult{}, err
	}
	fromY, err := MulDivDown(state.TotalLiquidity, yIncrease, state.Y)
	if err != nil {
		return shared.MintResult{}, err
	}
	fromZ, err := MulDivDown(state.TotalLiquidity, zIncrease, state.Z)
	if err != nil {
		return shared.MintResult{}, err
	}
	liquidityTotal := Min(fromX, fromY, fromZ)
	if liquidityTotal.Sign() == 0 {
		return shared.MintResult{}, shared.ErrMinimumNotMet
	}
	liquidityOut, err := GetLiquidityOut(liquidityTotal, duration, fees.ProtocolFee)
	if err != nil {
		return shared.MintResult{}, err
	}

	feeStoredIncrease := big.NewInt(0)
	if state.FeeStored != nil && state.FeeStored.Sign() > 0 {
		feeStoredIncrease, err = MulDivUp(state.FeeStored, xIncrease, state.X)
		if err != nil {
			return shared.MintResult{}, err
		}
	}

	collateral, err := GetMintCollateral(duration, xIncrease, yIncrease, zIncrease)
	if err != nil {
		return shared.MintResult{}, err
	}

	return shared.MintResult{
		Delta:             shared.Delta{X: new(big.Int).Set(xIncrease), Y: yIncrease, Z: zIncrease},
		AssetIn:           Add(xIncrease, feeStoredIncrease),
		LiquidityTotal:    liquidityTotal,
		LiquidityOut:      liquidityOut,
		ProtocolLiquidity: new(big.Int).Sub(liquidityTotal, liquidityOut),
		FeeStoredIncrease: feeStoredIncrease,
		Due: shared.Due{
			Debt:       GetDebt(duration, xIncrease, yIncrease),
			Collateral: collateral,
		},
	}, nil
}
