package pair

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func (p *Pool) BorrowGivenDebt(params BorrowGivenDebtParams) (shared.BorrowResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetOut, params.DebtIn)
	if err != nil {
		return p.borrowFailed("debt", err)
	}
	result, err := math.BorrowGivenDebt(p.state, params.AssetOut, params.DebtIn, d, p.fees)
	if err != nil {
		return p.borrowFailed("debt", err)
	}
	if err := checkMax(result.Due.Collateral, params.MaxCollateral); err != nil {
		return p.borrowFailed("debt", err)
	}
	return p.commitBorrow("debt", result)
}

func (p *Pool) BorrowGivenCollateral(params BorrowGivenCollateralParams) (shared.BorrowResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetOut, params.CollateralIn)
	if err != nil {
		return p.borrowFailed("collateral", err)
	}
	result, err := math.BorrowGivenCollateral(p.state, params.AssetOut, params.CollateralIn, d, p.fees)
	if err != nil {
		return p.borrowFailed("collateral", err)
	}
	if err := checkMax(result.Due.Debt, params.MaxDebt); err != nil {
		return p.borrowFailed("collateral", err)
	}
	return p.commitBorrow("collateral", result)
}

// BorrowGivenPercent places the borrow between the y-heavy end (0) and the
// z-heavy end (2^32) of the curve.
func (p *Pool) BorrowGivenPercent(params BorrowGivenPercentParams) (shared.BorrowResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetOut)
	if err != nil {
		return p.borrowFailed("percent", err)
	}
	result, err := math.BorrowGivenPercent(p.state, params.AssetOut, params.Percent, d, p.fees)
	if err != nil {
		return p.borrowFailed("percent", err)
	}
	if err := checkMax(result.Due.Debt, params.MaxDebt); err != nil {
		return p.borrowFailed("percent", err)
	}
	if err := checkMax(result.Due.Collateral, params.MaxCollateral); err != nil {
		return p.borrowFailed("percent", err)
	}
	return p.commitBorrow("percent", result)
}

// Repay pays down the due issued under params.DueID before maturity and
// releases collateral in proportion.
func (p *Pool) Repay(params RepayParams) (shared.RepayResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.checkCurveAction(params.Deadline, params.AssetIn); err != nil {
		return shared.RepayResult{}, fmt.Errorf("repay: %w", err)
	}
	if params.DueID >= uint64(len(p.state.Dues)) {
		return shared.RepayResult{}, fmt.Errorf("repay: due %d: %w", params.DueID, shared.ErrDueNotFound)
	}
	result, err := math.RepayDue(p.state.Dues[params.DueID], params.AssetIn)
	if err != nil {
		return shared.RepayResult{}, fmt.Errorf("repay: %w", err)
	}
	next, err := ApplyRepay(p.state, params.DueID, result)
	if err != nil {
		return shared.RepayResult{}, fmt.Errorf("repay: %w", err)
	}
	p.commit(next)

	p.logger.Info("repay",
		zap.Uint64("dueId", params.DueID),
		zap.Stringer("assetIn", result.AssetIn),
		zap.Stringer("collateralOut", result.CollateralOut),
		zap.Stringer("debtLeft", result.Due.Debt),
	)
	return result, nil
}

func (p *Pool) commitBorrow(form string, result shared.BorrowResult) (shared.BorrowResult, error) {
	result.DueID = uint64(len(p.state.Dues))
	next, err := ApplyBorrow(p.state, result)
	if err != nil {
		return p.borrowFailed(form, err)
	}
	p.commit(next)

	p.logger.Info("borrow",
		zap.String("form", form),
		zap.Stringer("assetOut", result.AssetOut),
		zap.Stringer("debt", result.Due.Debt),
		zap.Stringer("collateral", result.Due.Collateral),
		zap.Stringer("fee", result.Fees.Total()),
		zap.Uint64("dueId", result.DueID),
	)
	return result, nil
}

func (p *Pool) borrowFailed(form string, err error) (shared.BorrowResult, error) {
	p.logger.Debug("borrow rejected", zap.String("form", form), zap.Error(err))
	return shared.BorrowResult{}, fmt.Errorf("borrow given %s: %w", form, err)
}
