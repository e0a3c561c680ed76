package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

type lendSetup struct {
	xIncrease *big.Int
	xReserve  *big.Int
	feeBase   *big.Int
	fees      shared.FeeSplit
}

func newLendSetup(state shared.State, assetIn, duration *big.Int, fees shared.Fees) (lendSetup, error) {
	if !isPositive(assetIn) {
		return lendSetup{}, shared.ErrZeroAmount
	}
	if duration.Sign() <= 0 {
		return lendSetup{}, shared.ErrPoolMatured
	}
	if !isPositive(state.X, state.Y, state.Z) {
		return lendSetup{}, shared.ErrNoLiquidity
	}
	xIncrease, err := GetLendXIncrease(assetIn, duration, fees)
	if err != nil {
		return lendSetup{}, err
	}
	if xIncrease.Sign() == 0 {
		return lendSetup{}, shared.ErrMinimumNotMet
	}
	xReserve := Add(state.X, xIncrease)
	if err := CheckUint112(xIncrease, xReserve); err != nil {
		return lendSetup{}, err
	}
	split, err := GetLendFees(assetIn, xIncrease, duration, fees)
	if err != nil {
		return lendSetup{}, err
	}
	return lendSetup{
		xIncrease: xIncrease,
		xReserve:  xReserve,
		feeBase:   LendFeeBase(fees.Fee),
		fees:      split,
	}, nil
}

// GetBondInterest is floor(duration*yDecrease / 2^32).
func GetBondInterest(duration, yDecrease *big.Int) *big.Int {
	return Shr(Mul(duration, yDecrease), shared.Resolution)
}

// GetInsurancePrincipal is floor(z*xIncrease / (x+xIncrease)).
func GetInsurancePrincipal(cp shared.CP, xIncrease *big.Int) (*big.Int, error) {
	return MulDivDown(cp.Z, xIncrease, Add(cp.X, xIncrease))
}

// GetInsuranceInterest is floor(duration*zDecrease / 2^25).
func GetInsuranceInterest(duration, zDecrease *big.Int) *big.Int {
	return Shr(Mul(duration, zDecrease), shared.InsuranceShift)
}

// LendGivenBond solves the y decrease that pays exactly bondOut at maturity,
// then the z decrease from the fee adjusted constant product.
func LendGivenBond(state shared.State, assetIn, bondOut, duration *big.Int, fees shared.Fees) (shared.LendResult, error) {
	if !isPositive(bondOut) {
		return shared.LendResult{}, shared.ErrZeroAmount
	}
	setup, err := newLendSetup(state, assetIn, duration, fees)
	if err != nil {
		return shared.LendResult{}, err
	}
	if bondOut.Cmp(setup.xIncrease) <= 0 {
		return shared.LendResult{}, shared.ErrMinimumNotMet
	}

	yDecrease, err := DivUp(Shl(new(big.Int).Sub(bondOut, setup.xIncrease), shared.Resolution), duration)
	if err != nil {
		return shared.LendResult{}, err
	}
	zDecrease, err := lendDecrease(state.CP, setup.xReserve, state.Y, yDecrease, state.Z, setup.feeBase)
	if err != nil {
		return shared.LendResult{}, err
	}
	return finishLend(state, assetIn, setup, yDecrease, zDecrease, duration, fees)
}

// LendGivenInsurance solves the z decrease that pays exactly insuranceOut,
// then the y decrease from the fee adjusted constant product.
func LendGivenInsurance(state shared.State, assetIn, insuranceOut, duration *big.Int, fees shared.Fees) (shared.LendResult, error) {
	if !isPositive(insuranceOut) {
		return shared.LendResult{}, shared.ErrZeroAmount
	}
	setup, err := newLendSetup(state, assetIn, duration, fees)
	if err != nil {
		return shared.LendResult{}, err
	}
	principal, err := GetInsurancePrincipal(state.CP, setup.xIncrease)
	if err != nil {
		return shared.LendResult{}, err
	}
	if insuranceOut.Cmp(principal) <= 0 {
		return shared.LendResult{}, shared.ErrMinimumNotMet
	}

	zDecrease, err := DivUp(Shl(new(big.Int).Sub(insuranceOut, principal), shared.InsuranceShift), duration)
	if err != nil {
		return shared.LendResult{}, err
	}
	yDecrease, err := lendDecrease(state.CP, setup.xReserve, state.Z, zDecrease, state.Y, setup.feeBase)
	if err != nil {
		return shared.LendResult{}, err
	}
	return finishLend(state, assetIn, setup, yDecrease, zDecrease, duration, fees)
}

// LendGivenPercent places the lend between the minimum y decrease (percent 0),
// the curve midpoint (2^31) and the minimum z decrease (2^32).
func LendGivenPercent(state shared.State, assetIn *big.Int, percent uint64, duration *big.Int, fees shared.Fees) (shared.LendResult, error) {
	half, fraction, err := SplitPercent(percent)
	if err != nil {
		return shared.LendResult{}, err
	}
	return LendGivenHalf(state, assetIn, half, fraction, duration, fees)
}

// LendGivenHalf interpolates on one half of the curve. fraction is in
// [0, 2^31]; 2^31 is the midpoint for both halves.
func LendGivenHalf(state shared.State, assetIn *big.Int, half shared.Half, fraction uint64, duration *big.Int, fees shared.Fees) (shared.LendResult, error) {
	if fraction > shared.PercentHalf {
		return shared.LendResult{}, shared.ErrInvalidPercent
	}
	setup, err := newLendSetup(state, assetIn, duration, fees)
	if err != nil {
		return shared.LendResult{}, err
	}

	var yDecrease, zDecrease *big.Int
	switch half {
	case shared.LowHalf:
		yDecrease, err = lendInterpolate(state.CP, state.Y, setup, fraction)
		if err != nil {
			return shared.LendResult{}, err
		}
		zDecrease, err = lendDecrease(state.CP, setup.xReserve, state.Y, yDecrease, state.Z, setup.feeBase)
	case shared.HighHalf:
		zDecrease, err = lendInterpolate(state.CP, state.Z, setup, fraction)
		if err != nil {
			return shared.LendResult{}, err
		}
		yDecrease, err = lendDecrease(state.CP, setup.xReserve, state.Z, zDecrease, state.Y, setup.feeBase)
	default:
		return shared.LendResult{}, shared.ErrInvalidPercent
	}
	if err != nil {
		return shared.LendResult{}, err
	}
	return finishLend(state, assetIn, setup, yDecrease, zDecrease, duration, fees)
}

// LendMin is ceil(xIncrease*reserve / xReserve) >> 4.
func LendMin(reserve, xIncrease, xReserve *big.Int) (*big.Int, error) {
	out, err := MulDivUp(xIncrease, reserve, xReserve)
	if err != nil {
		return nil, err
	}
	return out.Rsh(out, shared.MinimumShift), nil
}

// LendMid is the decrease that moves reserve to its curve midpoint,
// floor(((reserve - ceil_sqrt(reserve^2*x/xReserve)) << 16) / feeBase).
func LendMid(reserve, x, xReserve, feeBase *big.Int) (*big.Int, error) {
	squared, err := MulDivUp(Mul(reserve, reserve), x, xReserve)
	if err != nil {
		return nil, err
	}
	root := SqrtUp(squared)
	mid, err := Sub(Shl(reserve, shared.FeeShift), Shl(root, shared.FeeShift), shared.ErrInvarianceViolation)
	if err != nil {
		return nil, err
	}
	return mid.Div(mid, feeBase), nil
}

func lendInterpolate(cp shared.CP, reserve *big.Int, setup lendSetup, fraction uint64) (*big.Int, error) {
	lower, err := LendMin(reserve, setup.xIncrease, setup.xReserve)
	if err != nil {
		return nil, err
	}
	mid, err := LendMid(reserve, cp.X, setup.xReserve, setup.feeBase)
	if err != nil {
		return nil, err
	}
	return interpolate(lower, mid, fraction, shared.RoundingDown)
}

// interpolate is lower + (upper-lower)*fraction/2^31.
func interpolate(lower, upper *big.Int, fraction uint64, rounding shared.Rounding) (*big.Int, error) {
	span, err := Sub(upper, lower, shared.ErrMinimumNotMet)
	if err != nil {
		return nil, err
	}
	step, err := MulDiv(span, new(big.Int).SetUint64(fraction), new(big.Int).SetUint64(shared.PercentHalf), rounding)
	if err != nil {
		return nil, err
	}
	return step.Add(step, lower), nil
}

// SplitPercent picks the half of the curve a percent falls in and the fraction
// of that half, measured from its minimum end.
func SplitPercent(percent uint64) (shared.Half, uint64, error) {
	if percent > shared.PercentMax {
		return shared.LowHalf, 0, shared.ErrInvalidPercent
	}
	if percent <= shared.PercentHalf {
		return shared.LowHalf, percent, nil
	}
	return shared.HighHalf, shared.PercentMax - percent, nil
}

func finishLend(state shared.State, assetIn *big.Int, setup lendSetup, yDecrease, zDecrease, duration *big.Int, fees shared.Fees) (shared.LendResult, error) {
	if err := CheckLend(state.CP, setup.xIncrease, yDecrease, zDecrease, fees.Fee); err != nil {
		return shared.LendResult{}, err
	}
	insurancePrincipal, err := GetInsurancePrincipal(state.CP, setup.xIncrease)
	if err != nil {
		return shared.LendResult{}, err
	}
	return shared.LendResult{
		Delta:   shared.Delta{X: new(big.Int).Set(setup.xIncrease), Y: yDecrease, Z: zDecrease},
		AssetIn: new(big.Int).Set(assetIn),
		Fees:    setup.fees,
		Claims: shared.Claims{
			BondPrincipal:      new(big.Int).Set(setup.xIncrease),
			BondInterest:       GetBondInterest(duration, yDecrease),
			InsurancePrincipal: insurancePrincipal,
			InsuranceInterest:  GetInsuranceInterest(duration, zDecrease),
		},
	}, nil
}
