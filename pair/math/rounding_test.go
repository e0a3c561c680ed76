package math

import (
	"math/big"
	"testing"

	"pgregory.net/rapid"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func ratio(num, den *big.Int) *big.Rat {
	return new(big.Rat).SetFrac(num, den)
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// requireCeil fails unless exact <= got < exact+slack.
func requireCeil(t *rapid.T, name string, got *big.Int, exact *big.Rat, slack int64) {
	v := new(big.Rat).SetInt(got)
	if v.Cmp(exact) < 0 {
		t.Fatalf("%s = %s below exact %s", name, got, exact.FloatString(4))
	}
	if v.Cmp(new(big.Rat).Add(exact, big.NewRat(slack, 1))) >= 0 {
		t.Fatalf("%s = %s not within %d of exact %s", name, got, slack, exact.FloatString(4))
	}
}

// requireFloor fails unless exact-1 < got <= exact.
func requireFloor(t *rapid.T, name string, got *big.Int, exact *big.Rat) {
	v := new(big.Rat).SetInt(got)
	if v.Cmp(exact) > 0 {
		t.Fatalf("%s = %s above exact %s", name, got, exact.FloatString(4))
	}
	if v.Cmp(new(big.Rat).Sub(exact, big.NewRat(1, 1))) <= 0 {
		t.Fatalf("%s = %s more than 1 below exact %s", name, got, exact.FloatString(4))
	}
}

func drawInt(t *rapid.T, label string, lo, hi int64) *big.Int {
	return big.NewInt(rapid.Int64Range(lo, hi).Draw(t, label))
}

func TestDuesRoundUp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		duration := drawInt(t, "duration", 1, 100_000_000)
		x := drawInt(t, "x", 1, 1<<50)
		y := drawInt(t, "y", 0, 1<<50)
		z := drawInt(t, "z", 0, 1<<50)

		exactDebt := new(big.Rat).Add(new(big.Rat).SetInt(x), ratio(Mul(duration, y), shared.Q32))
		requireCeil(t, "debt", GetDebt(duration, x, y), exactDebt, 1)

		numerator := Add(Mul(duration, y), Shl(x, shared.Resolution+1))
		collateral, err := GetMintCollateral(duration, x, y, z)
		if err != nil {
			t.Fatal(err)
		}
		requireCeil(t, "mint collateral", collateral, ratio(Mul(numerator, z), Shl(x, shared.Resolution)), 1)
	})
}

func TestBorrowCollateralRoundsUp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		duration := drawInt(t, "duration", 1, 100_000_000)
		x := drawInt(t, "x", 2, 1<<50)
		xDecrease := drawInt(t, "xDecrease", 1, x.Int64()-1)
		zIncrease := drawInt(t, "zIncrease", 0, 1<<50)
		cp := shared.CP{X: x, Y: big.NewInt(1), Z: drawInt(t, "z", 1, 1<<50)}

		collateral, err := GetBorrowCollateral(cp, xDecrease, zIncrease, duration)
		if err != nil {
			t.Fatal(err)
		}
		exact := new(big.Rat).Add(
			ratio(Mul(duration, zIncrease), pow2(shared.InsuranceShift)),
			ratio(Mul(cp.Z, xDecrease), new(big.Int).Sub(x, xDecrease)),
		)
		// two ceilings summed
		requireCeil(t, "borrow collateral", collateral, exact, 2)
	})
}

func TestLiquidityOutRoundsDown(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		liquidity := new(big.Int).Lsh(drawInt(t, "asset", 1, 1<<50), shared.LiquidityShift)
		duration := drawInt(t, "duration", 0, 100_000_000)
		protocolFee := uint16(rapid.Uint64Range(0, 1<<16-1).Draw(t, "protocolFee"))

		out, err := GetLiquidityOut(liquidity, duration, protocolFee)
		if err != nil {
			t.Fatal(err)
		}
		denominator := Add(Mul(duration, big.NewInt(int64(protocolFee))), shared.LiquidityBase)
		requireFloor(t, "liquidity out", out, ratio(Mul(liquidity, shared.LiquidityBase), denominator))
	})
}

func TestSettlementRoundsDown(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		totalPrincipal := drawInt(t, "totalPrincipal", 1, 1<<50)
		totalInterest := drawInt(t, "totalInterest", 1, 1<<50)
		principal := drawInt(t, "principal", 0, totalPrincipal.Int64())
		interest := drawInt(t, "interest", 0, totalInterest.Int64())
		reserve := drawInt(t, "reserve", 0, 1<<52)

		out, err := settleTiered(reserve, totalPrincipal, totalInterest, principal, interest)
		if err != nil {
			t.Fatal(err)
		}

		var exact *big.Rat
		switch {
		case reserve.Cmp(Add(totalPrincipal, totalInterest)) >= 0:
			exact = new(big.Rat).SetInt(Add(principal, interest))
		case reserve.Cmp(totalPrincipal) >= 0:
			exact = ratio(Mul(interest, new(big.Int).Sub(reserve, totalPrincipal)), totalInterest)
			exact.Add(exact, new(big.Rat).SetInt(principal))
		default:
			exact = ratio(Mul(principal, reserve), totalPrincipal)
		}
		requireFloor(t, "payout", out, exact)
	})
}

func TestInsuranceOwedRounding(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := shared.NewState()
		state.TotalClaims = shared.Claims{
			BondPrincipal:      drawInt(t, "bondPrincipal", 1, 1<<50),
			BondInterest:       drawInt(t, "bondInterest", 0, 1<<50),
			InsurancePrincipal: drawInt(t, "insurancePrincipal", 0, 1<<50),
			InsuranceInterest:  drawInt(t, "insuranceInterest", 0, 1<<50),
		}
		totalBond := state.TotalClaims.Bond()
		state.Reserves = shared.Tokens{
			Asset:      drawInt(t, "asset", 0, totalBond.Int64()-1),
			Collateral: drawInt(t, "collateral", 0, 1<<52),
		}

		down, err := InsuranceOwed(state, shared.RoundingDown)
		if err != nil {
			t.Fatal(err)
		}
		up, err := InsuranceOwed(state, shared.RoundingUp)
		if err != nil {
			t.Fatal(err)
		}
		deficit := new(big.Int).Sub(totalBond, state.Reserves.Asset)
		exact := ratio(Mul(deficit, state.TotalClaims.Insurance()), totalBond)
		if new(big.Rat).SetInt(state.Reserves.Collateral).Cmp(exact) <= 0 {
			if down.Cmp(state.Reserves.Collateral) != 0 || up.Cmp(state.Reserves.Collateral) != 0 {
				t.Fatalf("owed %s/%s not capped at collateral %s", down, up, state.Reserves.Collateral)
			}
			return
		}
		requireFloor(t, "owed down", down, exact)
		if up.Cmp(state.Reserves.Collateral) < 0 {
			requireCeil(t, "owed up", up, exact, 1)
		}
	})
}
