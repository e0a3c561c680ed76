package pair

import (
	"math/big"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// Optional slippage bounds are skipped when nil.

type NewLiquidityParams struct {
	AssetIn      *big.Int
	DebtIn       *big.Int
	CollateralIn *big.Int
	Deadline     uint64
}

// AddLiquidityParams is shared by the four add-liquidity forms. Amount is the
// asset deposit, the debt ceiling, the collateral ceiling or the fee inclusive
// asset amount depending on the form.
type AddLiquidityParams struct {
	Amount        *big.Int
	MinLiquidity  *big.Int
	MaxDebt       *big.Int
	MaxCollateral *big.Int
	Deadline      uint64
}

type LendGivenBondParams struct {
	AssetIn      *big.Int
	BondOut      *big.Int
	MinInsurance *big.Int
	Deadline     uint64
}

type LendGivenInsuranceParams struct {
	AssetIn      *big.Int
	InsuranceOut *big.Int
	MinBond      *big.Int
	Deadline     uint64
}

type LendGivenPercentParams struct {
	AssetIn      *big.Int
	Percent      uint64
	MinBond      *big.Int
	MinInsurance *big.Int
	Deadline     uint64
}

type BorrowGivenDebtParams struct {
	AssetOut      *big.Int
	DebtIn        *big.Int
	MaxCollateral *big.Int
	Deadline      uint64
}

type BorrowGivenCollateralParams struct {
	AssetOut     *big.Int
	CollateralIn *big.Int
	MaxDebt      *big.Int
	Deadline     uint64
}

type BorrowGivenPercentParams struct {
	AssetOut      *big.Int
	Percent       uint64
	MaxDebt       *big.Int
	MaxCollateral *big.Int
	Deadline      uint64
}

type RepayParams struct {
	DueID    uint64
	AssetIn  *big.Int
	Deadline uint64
}

type WithdrawParams struct {
	Claims   shared.Claims
	Deadline uint64
}

type BurnParams struct {
	LiquidityIn *big.Int
	Deadline    uint64
}
