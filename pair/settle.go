package pair

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Withdraw redeems lender claims once the pool has matured.
func (p *Pool) Withdraw(params WithdrawParams) (shared.Tokens, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	claimsIn := params.Claims
	if err := p.checkSettlement(params.Deadline); err != nil {
		return shared.Tokens{}, fmt.Errorf("withdraw: %w", err)
	}
	out, err := math.WithdrawTokens(p.state, claimsIn)
	if err != nil {
		return shared.Tokens{}, fmt.Errorf("withdraw: %w", err)
	}
	next, err := ApplyWithdraw(p.state, claimsIn, out)
	if err != nil {
		return shared.Tokens{}, fmt.Errorf("withdraw: %w", err)
	}
	p.commit(next)

	p.logger.Info("withdraw",
		zap.Stringer("bond", claimsIn.Bond()),
		zap.Stringer("insurance", claimsIn.Insurance()),
		zap.Stringer("assetOut", out.Asset),
		zap.Stringer("collateralOut", out.Collateral),
	)
	return out, nil
}

// Burn redeems liquidity once the pool has matured.
func (p *Pool) Burn(params BurnParams) (shared.BurnResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	liquidityIn := params.LiquidityIn
	if err := p.checkSettlement(params.Deadline); err != nil {
		return shared.BurnResult{}, fmt.Errorf("burn: %w", err)
	}
	result, err := math.BurnTokens(p.state, liquidityIn)
	if err != nil {
		return shared.BurnResult{}, fmt.Errorf("burn: %w", err)
	}
	next, err := ApplyBurn(p.state, liquidityIn, result)
	if err != nil {
		return shared.BurnResult{}, fmt.Errorf("burn: %w", err)
	}
	p.commit(next)

	p.logger.Info("burn",
		zap.Stringer("liquidityIn", liquidityIn),
		zap.Stringer("assetOut", result.AssetOut),
		zap.Stringer("collateralOut", result.CollateralOut),
		zap.Stringer("feeOut", result.FeeOut),
	)
	return result, nil
}

// CollectProtocolFee hands out everything in the protocol fee store. It is
// allowed in either phase.
func (p *Pool) CollectProtocolFee(deadline uint64) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := checkDeadline(p.now(), deadline); err != nil {
		return nil, fmt.Errorf("collect protocol fee: %w", err)
	}
	next, collected, err := ApplyCollectProtocolFee(p.state)
	if err != nil {
		return nil, fmt.Errorf("collect protocol fee: %w", err)
	}
	p.commit(next)

	p.logger.Info("collect protocol fee", zap.Stringer("amount", collected))
	return collected, nil
}
