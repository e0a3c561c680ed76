package pair

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func (p *Pool) LendGivenBond(params LendGivenBondParams) (shared.LendResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetIn, params.BondOut)
	if err != nil {
		return p.lendFailed("bond", err)
	}
	result, err := math.LendGivenBond(p.state, params.AssetIn, params.BondOut, d, p.fees)
	if err != nil {
		return p.lendFailed("bond", err)
	}
	if err := checkMin(result.Claims.Insurance(), params.MinInsurance); err != nil {
		return p.lendFailed("bond", err)
	}
	return p.commitLend("bond", result)
}

func (p *Pool) LendGivenInsurance(params LendGivenInsuranceParams) (shared.LendResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetIn, params.InsuranceOut)
	if err != nil {
		return p.lendFailed("insurance", err)
	}
	result, err := math.LendGivenInsurance(p.state, params.AssetIn, params.InsuranceOut, d, p.fees)
	if err != nil {
		return p.lendFailed("insurance", err)
	}
	if err := checkMin(result.Claims.Bond(), params.MinBond); err != nil {
		return p.lendFailed("insurance", err)
	}
	return p.commitLend("insurance", result)
}

// LendGivenPercent places the lend between the y-heavy end (0) and the
// z-heavy end (2^32) of the curve.
func (p *Pool) LendGivenPercent(params LendGivenPercentParams) (shared.LendResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	d, err := p.checkCurveAction(params.Deadline, params.AssetIn)
	if err != nil {
		return p.lendFailed("percent", err)
	}
	result, err := math.LendGivenPercent(p.state, params.AssetIn, params.Percent, d, p.fees)
	if err != nil {
		return p.lendFailed("percent", err)
	}
	if err := checkMin(result.Claims.Bond(), params.MinBond); err != nil {
		return p.lendFailed("percent", err)
	}
	if err := checkMin(result.Claims.Insurance(), params.MinInsurance); err != nil {
		return p.lendFailed("percent", err)
	}
	return p.commitLend("percent", result)
}

func (p *Pool) commitLend(form string, result shared.LendResult) (shared.LendResult, error) {
	next, err := ApplyLend(p.state, result)
	if err != nil {
		return p.lendFailed(form, err)
	}
	p.commit(next)

	p.logger.Info("lend",
		zap.String("form", form),
		zap.Stringer("assetIn", result.AssetIn),
		zap.Stringer("bond", result.Claims.Bond()),
		zap.Stringer("insurance", result.Claims.Insurance()),
		zap.Stringer("fee", result.Fees.Total()),
	)
	return result, nil
}

func (p *Pool) lendFailed(form string, err error) (shared.LendResult, error) {
	p.logger.Debug("lend rejected", zap.String("form", form), zap.Error(err))
	return shared.LendResult{}, fmt.Errorf("lend given %s: %w", form, err)
}
