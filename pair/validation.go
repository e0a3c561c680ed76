package pair

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func checkDeadline(now, deadline uint64) error {
	if now > deadline {
		return shared.ErrDeadlineExceeded
	}
	return nil
}

// remaining returns the seconds left until maturity, or ErrPoolMatured.
func remaining(now, maturity uint64) (*big.Int, error) {
	if now >= maturity {
		return nil, shared.ErrPoolMatured
	}
	return new(big.Int).SetUint64(maturity - now), nil
}

func checkMatured(now, maturity uint64) error {
	if now < maturity {
		return shared.ErrPoolNotMatured
	}
	return nil
}

func checkPositive(values ...*big.Int) error {
	for _, v := range values {
		if v == nil || v.Sign() <= 0 {
			return shared.ErrZeroAmount
		}
	}
	return nil
}

func checkMin(value, minimum *big.Int) error {
	if minimum != nil && value.Cmp(minimum) < 0 {
		return shared.ErrMinimumNotMet
	}
	return nil
}

func checkMax(value, maximum *big.Int) error {
	if maximum != nil && value.Cmp(maximum) > 0 {
		return shared.ErrMinimumNotMet
	}
	return nil
}

// checkCurveAction runs the preconditions shared by every pre-maturity action.
func (p *Pool) checkCurveAction(deadline uint64, amounts ...*big.Int) (*big.Int, error) {
	now := p.now()
	if err := checkDeadline(now, deadline); err != nil {
		return nil, err
	}
	d, err := remaining(now, p.maturity)
	if err != nil {
		return nil, err
	}
	if err := checkPositive(amounts...); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Pool) checkSettlement(deadline uint64) error {
	now := p.now()
	if err := checkDeadline(now, deadline); err != nil {
		return err
	}
	return checkMatured(now, p.maturity)
}
