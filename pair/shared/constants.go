package shared

import "math/big"

const (
	// Resolution of the rate (y) and ratio (z) dimensions.
	Resolution = 32

	// Adjusted reserves in the invariant check are shifted by FeeShift.
	FeeShift = 16

	// LiquidityShift scales the first liquidity total minted in a pool.
	LiquidityShift = 56

	// Insurance interest and the duration part of collateral are scaled by 2^25.
	InsuranceShift = 25

	// Lower bound of a given-percent interpolation is the curve share shifted by MinimumShift.
	MinimumShift = 4

	// Minimum fee bound: dy >= (dx*y) << MinimumFeeShift / (xReserve*feeBase).
	MinimumFeeShift = 12

	// PercentHalfShift is the bit position of the 50% point of a percent.
	PercentHalfShift = 31

	DefaultFee         = 100
	DefaultProtocolFee = 50

	// MaxFee bounds the pool fee so the borrow fee base 2^16 - fee stays above 2^15.
	MaxFee = 1<<15 - 1

	Uint112Bits = 112
)

var (
	Q32 = new(big.Int).Lsh(big.NewInt(1), Resolution)

	// FeeBase is 2^16, the unit of the per-trade pool fee.
	FeeBase = new(big.Int).Lsh(big.NewInt(1), FeeShift)

	// LiquidityBase is 2^40, the unit of the duration-scaled fees.
	LiquidityBase = new(big.Int).Lsh(big.NewInt(1), 40)

	MaxUint112 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), Uint112Bits), big.NewInt(1))

	// PercentMax is 100%, PercentHalf is the natural 50/50 split of the curve.
	PercentMax  = uint64(1) << 32
	PercentHalf = uint64(1) << PercentHalfShift
)
