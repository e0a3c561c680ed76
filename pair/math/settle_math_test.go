package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

func maturedState(asset, collateral int64) shared.State {
	state := shared.NewState()
	state.Reserves = shared.Tokens{Asset: big.NewInt(asset), Collateral: big.NewInt(collateral)}
	state.TotalClaims = shared.Claims{
		BondPrincipal:      big.NewInt(1000),
		BondInterest:       big.NewInt(200),
		InsurancePrincipal: big.NewInt(200),
		InsuranceInterest:  big.NewInt(100),
	}
	state.TotalLiquidity = big.NewInt(1000)
	return state
}

func TestWithdrawTokens(t *testing.T) {
	claims := shared.Claims{
		BondPrincipal:      big.NewInt(500),
		BondInterest:       big.NewInt(100),
		InsurancePrincipal: big.NewInt(100),
		InsuranceInterest:  big.NewInt(50),
	}

	tests := []struct {
		name              string
		asset, collateral int64
		assetOut          string
		collateralOut     string
	}{
		{"no default", 2000, 400, "600", "0"},
		{"interest pro-rata", 1100, 250, "550", "12"},
		{"principal pro-rata", 800, 100, "400", "50"},
		{"full default", 0, 400, "0", "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := WithdrawTokens(maturedState(tt.asset, tt.collateral), claims)
			require.NoError(t, err)
			require.Equal(t, tt.assetOut, out.Asset.String())
			require.Equal(t, tt.collateralOut, out.Collateral.String())
		})
	}
}

func TestWithdrawTokensExcludesStoredFees(t *testing.T) {
	state := maturedState(1300, 300)
	state.FeeStored = big.NewInt(150)
	state.ProtocolFeeStored = big.NewInt(50)

	out, err := WithdrawTokens(state, shared.Claims{BondPrincipal: big.NewInt(500), BondInterest: big.NewInt(100)})
	require.NoError(t, err)
	require.Equal(t, "550", out.Asset.String())
	require.Equal(t, "0", out.Collateral.String())
}

func TestWithdrawTokensInsuranceOnlyOnDefault(t *testing.T) {
	insured := shared.Claims{InsurancePrincipal: big.NewInt(200), InsuranceInterest: big.NewInt(100)}

	out, err := WithdrawTokens(maturedState(1200, 400), insured)
	require.NoError(t, err)
	require.Equal(t, "0", out.Asset.String())
	require.Equal(t, "0", out.Collateral.String())

	// 600 short of 1200 owed: half of total insurance is due
	out, err = WithdrawTokens(maturedState(600, 400), insured)
	require.NoError(t, err)
	require.Equal(t, "150", out.Collateral.String())

	// collateral reserve caps the payout
	out, err = WithdrawTokens(maturedState(0, 120), insured)
	require.NoError(t, err)
	require.Equal(t, "120", out.Collateral.String())
}

func TestInsuranceOwed(t *testing.T) {
	owed, err := InsuranceOwed(maturedState(1300, 400), shared.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, "0", owed.String())

	// deficit 1, 1*300/1200
	owed, err = InsuranceOwed(maturedState(1199, 400), shared.RoundingDown)
	require.NoError(t, err)
	require.Equal(t, "0", owed.String())
	owed, err = InsuranceOwed(maturedState(1199, 400), shared.RoundingUp)
	require.NoError(t, err)
	require.Equal(t, "1", owed.String())
}

func TestWithdrawTokensErrors(t *testing.T) {
	_, err := WithdrawTokens(maturedState(2000, 400), shared.ZeroClaims())
	require.ErrorIs(t, err, shared.ErrZeroAmount)

	_, err = WithdrawTokens(maturedState(2000, 400), shared.Claims{BondPrincipal: big.NewInt(1001)})
	require.ErrorIs(t, err, shared.ErrInsufficientReserve)
}

func TestWithdrawTokensOrderIndependent(t *testing.T) {
	state := maturedState(1100, 250)
	first := shared.Claims{BondPrincipal: big.NewInt(600), BondInterest: big.NewInt(120)}
	second := shared.Claims{BondPrincipal: big.NewInt(400), BondInterest: big.NewInt(80)}

	out, err := WithdrawTokens(state, first)
	require.NoError(t, err)
	require.Equal(t, "660", out.Asset.String())

	state.Reserves.Asset = new(big.Int).Sub(state.Reserves.Asset, out.Asset)
	state.TotalClaims.BondPrincipal = big.NewInt(400)
	state.TotalClaims.BondInterest = big.NewInt(80)

	out, err = WithdrawTokens(state, second)
	require.NoError(t, err)
	require.Equal(t, "440", out.Asset.String())
}

func TestBurnTokens(t *testing.T) {
	state := maturedState(2000, 500)
	state.FeeStored = big.NewInt(100)

	out, err := BurnTokens(state, big.NewInt(250))
	require.NoError(t, err)
	require.Equal(t, "175", out.AssetOut.String())
	require.Equal(t, "125", out.CollateralOut.String())
	require.Equal(t, "25", out.FeeOut.String())

	// bonds exceed the asset left, insurance may take 50 of the collateral
	short := maturedState(1000, 100)
	out, err = BurnTokens(short, big.NewInt(250))
	require.NoError(t, err)
	require.Equal(t, "0", out.AssetOut.String())
	require.Equal(t, "12", out.CollateralOut.String())

	_, err = BurnTokens(state, big.NewInt(1001))
	require.ErrorIs(t, err, shared.ErrInsufficientReserve)

	_, err = BurnTokens(state, big.NewInt(0))
	require.ErrorIs(t, err, shared.ErrZeroAmount)

	_, err = BurnTokens(shared.NewState(), big.NewInt(1))
	require.ErrorIs(t, err, shared.ErrNoLiquidity)
}

func TestRepayDue(t *testing.T) {
	due := shared.Due{Debt: big.NewInt(1000), Collateral: big.NewInt(300)}

	partial, err := RepayDue(due, big.NewInt(400))
	require.NoError(t, err)
	require.Equal(t, "400", partial.AssetIn.String())
	require.Equal(t, "120", partial.CollateralOut.String())
	require.Equal(t, "600", partial.Due.Debt.String())
	require.Equal(t, "180", partial.Due.Collateral.String())

	full, err := RepayDue(due, big.NewInt(2000))
	require.NoError(t, err)
	require.Equal(t, "1000", full.AssetIn.String())
	require.Equal(t, "300", full.CollateralOut.String())
	require.Equal(t, "0", full.Due.Debt.String())
	require.Equal(t, "0", full.Due.Collateral.String())

	require.Equal(t, "1000", due.Debt.String())

	_, err = RepayDue(due, big.NewInt(0))
	require.ErrorIs(t, err, shared.ErrZeroAmount)
}
