package math

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// durationFee is duration*(fee+protocolFee), in units of 2^40.
func durationFee(duration *big.Int, fees shared.Fees) *big.Int {
	rate := big.NewInt(int64(fees.Fee) + int64(fees.ProtocolFee))
	return rate.Mul(rate, duration)
}

// GetLendXIncrease shrinks a literal deposit to the amount applied to the curve:
// floor(assetIn*2^40 / (duration*(fee+protocolFee) + 2^40)).
func GetLendXIncrease(assetIn, duration *big.Int, fees shared.Fees) (*big.Int, error) {
	denominator := Add(durationFee(duration, fees), shared.LiquidityBase)
	return MulDivDown(assetIn, shared.LiquidityBase, denominator)
}

// GetLendFees splits assetIn - xIncrease between the pool and the protocol.
// The charged fee is ceil(xIncrease*duration*(fee+protocolFee)/2^40); the
// protocol takes its pro-rata part of it and any rounding remainder stays
// with the pool.
func GetLendFees(assetIn, xIncrease, duration *big.Int, fees shared.Fees) (shared.FeeSplit, error) {
	charged, err := MulDivUp(xIncrease, durationFee(duration, fees), shared.LiquidityBase)
	if err != nil {
		return shared.FeeSplit{}, err
	}
	shrink, err := Sub(assetIn, xIncrease, shared.ErrInvalidFee)
	if err != nil {
		return shared.FeeSplit{}, err
	}
	if charged.Cmp(shrink) > 0 {
		return shared.FeeSplit{}, shared.ErrInvalidFee
	}
	protocol, err := protocolShare(charged, fees)
	if err != nil {
		return shared.FeeSplit{}, err
	}
	return shared.FeeSplit{Pool: new(big.Int).Sub(shrink, protocol), Protocol: protocol}, nil
}

// GetBorrowXDecrease grosses a requested output up to the amount removed from
// the curve: ceil(assetOut*(duration*(fee+protocolFee) + 2^40) / 2^40).
func GetBorrowXDecrease(assetOut, duration *big.Int, fees shared.Fees) (*big.Int, error) {
	numerator := Add(durationFee(duration, fees), shared.LiquidityBase)
	return MulDivUp(assetOut, numerator, shared.LiquidityBase)
}

// GetBorrowFees splits xDecrease - assetOut between the pool and the protocol.
func GetBorrowFees(assetOut, xDecrease *big.Int, fees shared.Fees) (shared.FeeSplit, error) {
	total, err := Sub(xDecrease, assetOut, shared.ErrInvalidFee)
	if err != nil {
		return shared.FeeSplit{}, err
	}
	protocol, err := protocolShare(total, fees)
	if err != nil {
		return shared.FeeSplit{}, err
	}
	return shared.FeeSplit{Pool: new(big.Int).Sub(total, protocol), Protocol: protocol}, nil
}

func protocolShare(total *big.Int, fees shared.Fees) (*big.Int, error) {
	rate := int64(fees.Fee) + int64(fees.ProtocolFee)
	if rate == 0 || total.Sign() == 0 {
		return big.NewInt(0), nil
	}
	pool, err := MulDivDown(total, big.NewInt(int64(fees.Fee)), big.NewInt(rate))
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(total, pool), nil
}

// GetLiquidityOut applies the time decay to a liquidity total:
// floor(liquidityTotal*2^40 / (duration*protocolFee + 2^40)).
func GetLiquidityOut(liquidityTotal, duration *big.Int, protocolFee uint16) (*big.Int, error) {
	denominator := new(big.Int).Mul(duration, big.NewInt(int64(protocolFee)))
	denominator.Add(denominator, shared.LiquidityBase)
	return MulDivDown(liquidityTotal, shared.LiquidityBase, denominator)
}
