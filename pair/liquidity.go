package pair

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Mint opens the pool from a single seed deposit. The caller receives
// LiquidityOut and owes the returned due.
func (p *Pool) Mint(params NewLiquidityParams) (shared.MintResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetIn, params.DebtIn, params.CollateralIn)
	if err != nil {
		return p.mintFailed("new", err)
	}
	if p.state.TotalLiquidity.Sign() > 0 {
		return p.mintFailed("new", shared.ErrPoolInitialized)
	}
	result, err := math.NewPool(params.AssetIn, params.DebtIn, params.CollateralIn, d, p.fees)
	if err != nil {
		return p.mintFailed("new", err)
	}
	return p.commitMint("new", result, nil, nil, nil)
}

// MintGivenAsset adds params.Amount to x and buys into the stored pool fees.
func (p *Pool) MintGivenAsset(params AddLiquidityParams) (shared.MintResult, error) {
	return p.addLiquidity("asset", params, math.LiquidityGivenAsset)
}

// MintGivenAssetWithFees treats params.Amount as the total deposit, stored fee buy-in included.
func (p *Pool) MintGivenAssetWithFees(params AddLiquidityParams) (shared.MintResult, error) {
	return p.addLiquidity("asset_with_fees", params, math.LiquidityGivenAssetWithFees)
}

// MintGivenDebt adds the most liquidity whose debt stays within params.Amount.
func (p *Pool) MintGivenDebt(params AddLiquidityParams) (shared.MintResult, error) {
	return p.addLiquidity("debt", params, math.LiquidityGivenDebt)
}

// MintGivenCollateral adds the most liquidity whose collateral stays within params.Amount.
func (p *Pool) MintGivenCollateral(params AddLiquidityParams) (shared.MintResult, error) {
	return p.addLiquidity("collateral", params, math.LiquidityGivenCollateral)
}

type liquiditySolver func(state shared.State, amount, duration *big.Int, fees shared.Fees) (shared.MintResult, error)

func (p *Pool) addLiquidity(form string, params AddLiquidityParams, solve liquiditySolver) (shared.MintResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.Amount)
	if err != nil {
		return p.mintFailed(form, err)
	}
	result, err := solve(p.state, params.Amount, d, p.fees)
	if err != nil {
		return p.mintFailed(form, err)
	}
	return p.commitMint(form, result, params.MinLiquidity, params.MaxDebt, params.MaxCollateral)
}

func (p *Pool) commitMint(form string, result shared.MintResult, minLiquidity, maxDebt, maxCollateral *big.Int) (shared.MintResult, error) {
	if err := checkMin(result.LiquidityOut, minLiquidity); err != nil {
		return p.mintFailed(form, err)
	}
	if err := checkMax(result.Due.Debt, maxDebt); err != nil {
		return p.mintFailed(form, err)
	}
	if err := checkMax(result.Due.Collateral, maxCollateral); err != nil {
		return p.mintFailed(form, err)
	}
	result.DueID = uint64(len(p.state.Dues))
	next, err := ApplyMint(p.state, result)
	if err != nil {
		return p.mintFailed(form, err)
	}
	p.commit(next)

	p.logger.Info("mint",
		zap.String("form", form),
		zap.Stringer("assetIn", result.AssetIn),
		zap.Stringer("liquidityOut", result.LiquidityOut),
		zap.Stringer("debt", result.Due.Debt),
		zap.Stringer("collateral", result.Due.Collateral),
		zap.Uint64("dueId", result.DueID),
	)
	return result, nil
}

func (p *Pool) mintFailed(form string, err error) (shared.MintResult, error) {
	p.logger.Debug("mint rejected", zap.String("form", form), zap.Error(err))
	return shared.MintResult{}, fmt.Errorf("mint given %s: %w", form, err)
}
