package helpers

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/bondcurve-go/pair/math"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

const (
	BasisPointMax  = 10000
	SecondsPerYear = 31_536_000
)

// LendQuote is a lend computed against a snapshot, with the slippage floors
// to pass back to the pool.
type LendQuote struct {
	Result       shared.LendResult
	APR          decimal.Decimal
	CDP          decimal.Decimal
	MinBond      *big.Int
	MinInsurance *big.Int
}

// BorrowQuote is a borrow computed against a snapshot, with the slippage
// ceilings to pass back to the pool.
type BorrowQuote struct {
	Result        shared.BorrowResult
	APR           decimal.Decimal
	CDP           decimal.Decimal
	MaxDebt       *big.Int
	MaxCollateral *big.Int
}

func QuoteLendGivenPercent(state shared.State, assetIn *big.Int, percent uint64, duration uint64, fees shared.Fees, slippageBps uint16) (LendQuote, error) {
	result, err := math.LendGivenPercent(state, assetIn, percent, new(big.Int).SetUint64(duration), fees)
	if err != nil {
		return LendQuote{}, err
	}
	bond := result.Claims.Bond()
	insurance := result.Claims.Insurance()
	return LendQuote{
		Result:       result,
		APR:          GetAPR(assetIn, bond, duration),
		CDP:          GetCDP(insurance, bond),
		MinBond:      GetMinAmountWithSlippage(bond, slippageBps),
		MinInsurance: GetMinAmountWithSlippage(insurance, slippageBps),
	}, nil
}

func QuoteBorrowGivenPercent(state shared.State, assetOut *big.Int, percent uint64, duration uint64, fees shared.Fees, slippageBps uint16) (BorrowQuote, error) {
	result, err := math.BorrowGivenPercent(state, assetOut, percent, new(big.Int).SetUint64(duration), fees)
	if err != nil {
		return BorrowQuote{}, err
	}
	return BorrowQuote{
		Result:        result,
		APR:           GetAPR(assetOut, result.Due.Debt, duration),
		CDP:           GetCDP(result.Due.Collateral, result.Due.Debt),
		MaxDebt:       GetMaxAmountWithSlippage(result.Due.Debt, slippageBps),
		MaxCollateral: GetMaxAmountWithSlippage(result.Due.Collateral, slippageBps),
	}, nil
}

// GetAPR annualises the gain from principal to owed over duration seconds, in percent.
func GetAPR(principal, owed *big.Int, duration uint64) decimal.Decimal {
	if principal.Sign() == 0 || duration == 0 {
		return decimal.Zero
	}
	p := decimal.NewFromBigInt(principal, 0)
	gain := decimal.NewFromBigInt(owed, 0).Sub(p).Div(p)
	years := decimal.NewFromInt(int64(duration)).Div(decimal.NewFromInt(SecondsPerYear))
	return gain.Div(years).Mul(decimal.NewFromInt(100))
}

// GetCDP is the collateral per unit of debt.
func GetCDP(collateral, debt *big.Int) decimal.Decimal {
	if debt.Sign() == 0 {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(collateral, 0).Div(decimal.NewFromBigInt(debt, 0))
}

// GetMinAmountWithSlippage is floor(amount*(10000-bps)/10000).
func GetMinAmountWithSlippage(amount *big.Int, slippageBps uint16) *big.Int {
	if slippageBps == 0 {
		return new(big.Int).Set(amount)
	}
	if slippageBps >= BasisPointMax {
		return big.NewInt(0)
	}
	factor := big.NewInt(BasisPointMax - int64(slippageBps))
	out, _ := math.MulDivDown(amount, factor, big.NewInt(BasisPointMax))
	return out
}

// GetMaxAmountWithSlippage is ceil(amount*(10000+bps)/10000).
func GetMaxAmountWithSlippage(amount *big.Int, slippageBps uint16) *big.Int {
	if slippageBps == 0 {
		return new(big.Int).Set(amount)
	}
	factor := big.NewInt(BasisPointMax + int64(slippageBps))
	out, _ := math.MulDivUp(amount, factor, big.NewInt(BasisPointMax))
	return out
}

// GetSpotRate is the current rate dimension y as an annual fraction of x, floor(y*SecondsPerYear/x) in Q32.
func GetSpotRate(cp shared.CP) (decimal.Decimal, error) {
	if cp.X == nil || cp.X.Sign() == 0 {
		return decimal.Zero, shared.ErrNoLiquidity
	}
	rate, err := math.MulDivDown(cp.Y, big.NewInt(SecondsPerYear), cp.X)
	if err != nil {
		return decimal.Zero, err
	}
	return math.Q32ToDecimal(rate, 8), nil
}
