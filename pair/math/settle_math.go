package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// WithdrawTokens converts matured claims into payouts. Bond claims are paid
// from the asset reserve net of stored fees. Insurance claims only pay out of
// the collateral reserve when that asset falls short of the bonds owed.
func WithdrawTokens(state shared.State, claimsIn shared.Claims) (shared.Tokens, error) {
	if claimsIn.IsZero() {
		return shared.Tokens{}, shared.ErrZeroAmount
	}
	claimsIn = claimsIn.Clone()
	total := state.TotalClaims.Clone()
	if claimsIn.BondPrincipal.Cmp(total.BondPrincipal) > 0 ||
		claimsIn.BondInterest.Cmp(total.BondInterest) > 0 ||
		claimsIn.InsurancePrincipal.Cmp(total.InsurancePrincipal) > 0 ||
		claimsIn.InsuranceInterest.Cmp(total.InsuranceInterest) > 0 {
		return shared.Tokens{}, shared.ErrInsufficientReserve
	}

	asset, err := settleTiered(state.AvailableAsset(), total.BondPrincipal, total.BondInterest, claimsIn.BondPrincipal, claimsIn.BondInterest)
	if err != nil {
		return shared.Tokens{}, err
	}
	pot, err := InsuranceOwed(state, shared.RoundingDown)
	if err != nil {
		return shared.Tokens{}, err
	}
	collateral, err := settleTiered(pot, total.InsurancePrincipal, total.InsuranceInterest, claimsIn.InsurancePrincipal, claimsIn.InsuranceInterest)
	if err != nil {
		return shared.Tokens{}, err
	}
	return shared.Tokens{Asset: asset, Collateral: collateral}, nil
}

// InsuranceOwed is the collateral the outstanding insurance claims may take:
// the asset deficit against outstanding bonds, converted at total insurance
// per total bond and capped by the collateral reserve. Zero without a deficit.
func InsuranceOwed(state shared.State, rounding shared.Rounding) (*big.Int, error) {
	totalBond := state.TotalClaims.Bond()
	available := state.AvailableAsset()
	if available.Cmp(totalBond) >= 0 {
		return big.NewInt(0), nil
	}
	deficit := new(big.Int).Sub(totalBond, available)
	owed, err := MulDiv(deficit, state.TotalClaims.Insurance(), totalBond, rounding)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(Min(owed, state.Reserves.Collateral)), nil
}

// settleTiered pays principal 1:1 while the reserve covers all principal,
// then interest pro-rata of what remains. Below total principal, principal
// itself is paid pro-rata.
func settleTiered(reserve, totalPrincipal, totalInterest, principal, interest *big.Int) (*big.Int, error) {
	totalOwed := Add(totalPrincipal, totalInterest)
	if reserve.Cmp(totalOwed) >= 0 {
		return Add(principal, interest), nil
	}
	if reserve.Cmp(totalPrincipal) >= 0 {
		interestOut, err := MulDivDown(interest, new(big.Int).Sub(reserve, totalPrincipal), totalInterest)
		if err != nil {
			return nil, err
		}
		return interestOut.Add(interestOut, principal), nil
	}
	return MulDivDown(principal, reserve, totalPrincipal)
}

// BurnTokens converts liquidity into its share of the asset left after
// outstanding bond claims, the collateral left after what insurance may still
// take and the stored pool fees.
func BurnTokens(state shared.State, liquidityIn *big.Int) (shared.BurnResult, error) {
	if !isPositive(liquidityIn) {
		return shared.BurnResult{}, shared.ErrZeroAmount
	}
	if !isPositive(state.TotalLiquidity) {
		return shared.BurnResult{}, shared.ErrNoLiquidity
	}
	if liquidityIn.Cmp(state.TotalLiquidity) > 0 {
		return shared.BurnResult{}, shared.ErrInsufficientReserve
	}

	assetOut, err := shareOfExcess(state.AvailableAsset(), state.TotalClaims.Bond(), liquidityIn, state.TotalLiquidity)
	if err != nil {
		return shared.BurnResult{}, err
	}
	insuranceOwed, err := InsuranceOwed(state, shared.RoundingUp)
	if err != nil {
		return shared.BurnResult{}, err
	}
	collateralOut, err := shareOfExcess(state.Reserves.Collateral, insuranceOwed, liquidityIn, state.TotalLiquidity)
	if err != nil {
		return shared.BurnResult{}, err
	}
	feeOut, err := MulDivDown(state.FeeStored, liquidityIn, state.TotalLiquidity)
	if err != nil {
		return shared.BurnResult{}, err
	}
	return shared.BurnResult{AssetOut: assetOut, CollateralOut: collateralOut, FeeOut: feeOut}, nil
}

func shareOfExcess(reserve, owed, liquidityIn, totalLiquidity *big.Int) (*big.Int, error) {
	if reserve.Cmp(owed) <= 0 {
		return big.NewInt(0), nil
	}
	return MulDivDown(new(big.Int).Sub(reserve, owed), liquidityIn, totalLiquidity)
}

// RepayDue pays down a due before maturity and releases collateral in
// proportion, floor(collateral*assetIn/debt). Full repayment releases all of it.
func RepayDue(due shared.Due, assetIn *big.Int) (shared.RepayResult, error) {
	if !isPositive(assetIn) || !isPositive(due.Debt) {
		return shared.RepayResult{}, shared.ErrZeroAmount
	}
	paid := Min(assetIn, due.Debt)

	collateralOut := new(big.Int).Set(due.Collateral)
	if paid.Cmp(due.Debt) < 0 {
		var err error
		collateralOut, err = MulDivDown(due.Collateral, paid, due.Debt)
		if err != nil {
			return shared.RepayResult{}, err
		}
	}
	return shared.RepayResult{
		AssetIn:       paid,
		CollateralOut: collateralOut,
		Due: shared.Due{
			Debt:       new(big.Int).Sub(due.Debt, paid),
			Collateral: new(big.Int).Sub(due.Collateral, collateralOut),
		},
	}, nil
}
