package pair

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// The Apply functions fold a solver result into a snapshot. They never modify
// their input and are what Pool uses to move from one snapshot to the next.

// ApplyMint adds a liquidity result: reserves grow by the delta, the asset
// and collateral deposits are held, liquidity and debt totals grow.
func ApplyMint(state shared.State, result shared.MintResult) (shared.State, error) {
	next := state.Clone()
	next.X = math.Add(next.X, result.Delta.X)
	next.Y = math.Add(next.Y, result.Delta.Y)
	next.Z = math.Add(next.Z, result.Delta.Z)
	if err := math.CheckUint112(next.X, next.Y, next.Z); err != nil {
		return shared.State{}, err
	}
	next.Reserves.Asset = math.Add(next.Reserves.Asset, result.AssetIn)
	next.Reserves.Collateral = math.Add(next.Reserves.Collateral, result.Due.Collateral)
	next.FeeStored = math.Add(next.FeeStored, orZero(result.FeeStoredIncrease))
	next.TotalLiquidity = math.Add(next.TotalLiquidity, result.LiquidityTotal)
	next.ProtocolLiquidity = math.Add(next.ProtocolLiquidity, result.ProtocolLiquidity)
	next.TotalDebtCreated = math.Add(next.TotalDebtCreated, result.Due.Debt)
	next.Dues = append(next.Dues, result.Due.Clone())
	return next, nil
}

// ApplyLend moves assetIn into the pool, splits its fee between the pool and
// the protocol and records the issued claims.
func ApplyLend(state shared.State, result shared.LendResult) (shared.State, error) {
	next := state.Clone()
	var err error
	next.X = math.Add(next.X, result.Delta.X)
	if next.Y, err = math.Sub(next.Y, result.Delta.Y, shared.ErrInvarianceViolation); err != nil {
		return shared.State{}, err
	}
	if next.Z, err = math.Sub(next.Z, result.Delta.Z, shared.ErrInvarianceViolation); err != nil {
		return shared.State{}, err
	}
	if err := math.CheckUint112(next.X); err != nil {
		return shared.State{}, err
	}
	next.Reserves.Asset = math.Add(next.Reserves.Asset, result.AssetIn)
	next.FeeStored = math.Add(next.FeeStored, orZero(result.Fees.Pool))
	next.ProtocolFeeStored = math.Add(next.ProtocolFeeStored, orZero(result.Fees.Protocol))
	next.TotalClaims = addClaims(next.TotalClaims, result.Claims)
	return next, nil
}

// ApplyBorrow pays assetOut from the pool, books the fee and locks the
// borrower's collateral.
func ApplyBorrow(state shared.State, result shared.BorrowResult) (shared.State, error) {
	next := state.Clone()
	var err error
	if next.X, err = math.Sub(next.X, result.Delta.X, shared.ErrInsufficientReserve); err != nil {
		return shared.State{}, err
	}
	next.Y = math.Add(next.Y, result.Delta.Y)
	next.Z = math.Add(next.Z, result.Delta.Z)
	if err := math.CheckUint112(next.Y, next.Z); err != nil {
		return shared.State{}, err
	}
	if result.AssetOut.Cmp(state.AvailableAsset()) > 0 {
		return shared.State{}, shared.ErrInsufficientReserve
	}
	next.Reserves.Asset = new(big.Int).Sub(next.Reserves.Asset, result.AssetOut)
	next.Reserves.Collateral = math.Add(next.Reserves.Collateral, result.Due.Collateral)
	next.FeeStored = math.Add(next.FeeStored, orZero(result.Fees.Pool))
	next.ProtocolFeeStored = math.Add(next.ProtocolFeeStored, orZero(result.Fees.Protocol))
	next.TotalDebtCreated = math.Add(next.TotalDebtCreated, result.Due.Debt)
	next.Dues = append(next.Dues, result.Due.Clone())
	return next, nil
}

// ApplyRepay takes the repaid asset, releases collateral and replaces due
// dueID with what is left of it. The release may not exceed the due.
func ApplyRepay(state shared.State, dueID uint64, result shared.RepayResult) (shared.State, error) {
	if dueID >= uint64(len(state.Dues)) {
		return shared.State{}, shared.ErrDueNotFound
	}
	due := state.Dues[dueID]
	if result.AssetIn.Cmp(due.Debt) > 0 || result.CollateralOut.Cmp(due.Collateral) > 0 {
		return shared.State{}, shared.ErrInsufficientReserve
	}
	next := state.Clone()
	next.Dues[dueID] = result.Due.Clone()
	var err error
	if next.Reserves.Collateral, err = math.Sub(next.Reserves.Collateral, result.CollateralOut, shared.ErrInsufficientReserve); err != nil {
		return shared.State{}, err
	}
	next.Reserves.Asset = math.Add(next.Reserves.Asset, result.AssetIn)
	return next, nil
}

// ApplyWithdraw retires redeemed claims and pays them out of the reserves.
func ApplyWithdraw(state shared.State, claimsIn shared.Claims, out shared.Tokens) (shared.State, error) {
	next := state.Clone()
	total, err := subClaims(next.TotalClaims, claimsIn)
	if err != nil {
		return shared.State{}, err
	}
	next.TotalClaims = total
	if next.Reserves, err = subTokens(next.Reserves, out); err != nil {
		return shared.State{}, err
	}
	return next, nil
}

// ApplyBurn retires liquidity and pays its share of reserves and pool fees.
func ApplyBurn(state shared.State, liquidityIn *big.Int, result shared.BurnResult) (shared.State, error) {
	next := state.Clone()
	var err error
	if next.TotalLiquidity, err = math.Sub(next.TotalLiquidity, liquidityIn, shared.ErrInsufficientReserve); err != nil {
		return shared.State{}, err
	}
	if next.FeeStored, err = math.Sub(next.FeeStored, result.FeeOut, shared.ErrInsufficientReserve); err != nil {
		return shared.State{}, err
	}
	out := shared.Tokens{Asset: math.Add(result.AssetOut, result.FeeOut), Collateral: result.CollateralOut}
	if next.Reserves, err = subTokens(next.Reserves, out); err != nil {
		return shared.State{}, err
	}
	return next, nil
}

// ApplyCollectProtocolFee empties the protocol fee store and returns the amount taken.
func ApplyCollectProtocolFee(state shared.State) (shared.State, *big.Int, error) {
	next := state.Clone()
	collected := new(big.Int).Set(next.ProtocolFeeStored)
	var err error
	if next.Reserves.Asset, err = math.Sub(next.Reserves.Asset, collected, shared.ErrInsufficientReserve); err != nil {
		return shared.State{}, nil, err
	}
	next.ProtocolFeeStored = big.NewInt(0)
	return next, collected, nil
}

func addClaims(a, b shared.Claims) shared.Claims {
	b = b.Clone()
	return shared.Claims{
		BondPrincipal:      math.Add(a.BondPrincipal, b.BondPrincipal),
		BondInterest:       math.Add(a.BondInterest, b.BondInterest),
		InsurancePrincipal: math.Add(a.InsurancePrincipal, b.InsurancePrincipal),
		InsuranceInterest:  math.Add(a.InsuranceInterest, b.InsuranceInterest),
	}
}

func subClaims(a, b shared.Claims) (shared.Claims, error) {
	b = b.Clone()
	var out shared.Claims
	var err error
	if out.BondPrincipal, err = math.Sub(a.BondPrincipal, b.BondPrincipal, shared.ErrInsufficientReserve); err != nil {
		return shared.Claims{}, err
	}
	if out.BondInterest, err = math.Sub(a.BondInterest, b.BondInterest, shared.ErrInsufficientReserve); err != nil {
		return shared.Claims{}, err
	}
	if out.InsurancePrincipal, err = math.Sub(a.InsurancePrincipal, b.InsurancePrincipal, shared.ErrInsufficientReserve); err != nil {
		return shared.Claims{}, err
	}
	if out.InsuranceInterest, err = math.Sub(a.InsuranceInterest, b.InsuranceInterest, shared.ErrInsufficientReserve); err != nil {
		return shared.Claims{}, err
	}
	return out, nil
}

func subTokens(a, b shared.Tokens) (shared.Tokens, error) {
	b = b.Clone()
	var out shared.Tokens
	var err error
	if out.Asset, err = math.Sub(a.Asset, b.Asset, shared.ErrInsufficientReserve); err != nil {
		return shared.Tokens{}, err
	}
	if out.Collateral, err = math.Sub(a.Collateral, b.Collateral, shared.ErrInsufficientReserve); err != nil {
		return shared.Tokens{}, err
	}
	return out, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
