package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krazyTry/bondcurve-go/pair"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

const (
	start    = uint64(1_700_000_000)
	duration = uint64(31_531_000)
)

func seededPool(t *testing.T) *pair.Pool {
	t.Helper()
	pool, err := pair.NewPool(start+duration, shared.DefaultFees(), pair.WithClock(func() uint64 { return start }))
	require.NoError(t, err)
	_, err = pool.Mint(pair.NewLiquidityParams{
		AssetIn:      big.NewInt(10000),
		DebtIn:       big.NewInt(12000),
		CollateralIn: big.NewInt(1000),
		Deadline:     start,
	})
	require.NoError(t, err)
	return pool
}

func TestSlippage(t *testing.T) {
	require.Equal(t, "990", GetMinAmountWithSlippage(big.NewInt(1000), 100).String())
	require.Equal(t, "1010", GetMaxAmountWithSlippage(big.NewInt(1000), 100).String())
	require.Equal(t, "1000", GetMinAmountWithSlippage(big.NewInt(1000), 0).String())
	require.Equal(t, "0", GetMinAmountWithSlippage(big.NewInt(1000), BasisPointMax).String())
	require.Equal(t, "2", GetMaxAmountWithSlippage(big.NewInt(1), 1).String())
}

func TestAPRAndCDP(t *testing.T) {
	apr := GetAPR(big.NewInt(1000), big.NewInt(1100), SecondsPerYear)
	require.Equal(t, "10", apr.String())

	half := GetAPR(big.NewInt(1000), big.NewInt(1050), SecondsPerYear/2)
	require.Equal(t, "10", half.String())

	require.True(t, GetAPR(big.NewInt(0), big.NewInt(1), SecondsPerYear).IsZero())
	require.Equal(t, "0.5", GetCDP(big.NewInt(50), big.NewInt(100)).String())
	require.True(t, GetCDP(big.NewInt(50), big.NewInt(0)).IsZero())
}

func TestSpotRate(t *testing.T) {
	pool := seededPool(t)
	rate, err := GetSpotRate(pool.State().CP)
	require.NoError(t, err)
	require.Equal(t, "0.20003154", rate.String())

	_, err = GetSpotRate(shared.NewState().CP)
	require.ErrorIs(t, err, shared.ErrNoLiquidity)
}

func TestQuotesPassBackToPool(t *testing.T) {
	pool := seededPool(t)

	lend, err := QuoteLendGivenPercent(pool.State(), big.NewInt(1000), shared.PercentHalf, duration, pool.Fees(), 50)
	require.NoError(t, err)
	require.Equal(t, 1, lend.APR.Sign())
	require.Equal(t, -1, lend.MinBond.Cmp(lend.Result.Claims.Bond()))

	result, err := pool.LendGivenPercent(pair.LendGivenPercentParams{
		AssetIn:      big.NewInt(1000),
		Percent:      shared.PercentHalf,
		MinBond:      lend.MinBond,
		MinInsurance: lend.MinInsurance,
		Deadline:     start,
	})
	require.NoError(t, err)
	require.Equal(t, lend.Result.Claims.Bond().String(), result.Claims.Bond().String())

	borrow, err := QuoteBorrowGivenPercent(pool.State(), big.NewInt(1000), shared.PercentHalf, duration, pool.Fees(), 50)
	require.NoError(t, err)
	require.Equal(t, 1, borrow.CDP.Sign())

	_, err = pool.BorrowGivenPercent(pair.BorrowGivenPercentParams{
		AssetOut:      big.NewInt(1000),
		Percent:       shared.PercentHalf,
		MaxDebt:       borrow.MaxDebt,
		MaxCollateral: borrow.MaxCollateral,
		Deadline:      start,
	})
	require.NoError(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	pool := seededPool(t)
	_, err := pool.LendGivenPercent(pair.LendGivenPercentParams{AssetIn: big.NewInt(1000), Percent: shared.PercentHalf, Deadline: start})
	require.NoError(t, err)

	snapshot := Snapshot{Maturity: pool.Maturity(), Fees: pool.Fees(), State: pool.State()}
	data, err := EncodeSnapshot(snapshot)
	require.NoError(t, err)
	require.Len(t, snapshot.State.Dues, 1)
	require.Len(t, data, 1+8+2+2+16*3+16*8+32*3+4+32)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, snapshot.Maturity, decoded.Maturity)
	require.Equal(t, snapshot.Fees, decoded.Fees)
	require.Equal(t, snapshot.State.TotalLiquidity.String(), decoded.State.TotalLiquidity.String())
	require.Equal(t, snapshot.State.TotalClaims.Bond().String(), decoded.State.TotalClaims.Bond().String())
	require.Equal(t, snapshot.State.Dues[0].Debt.String(), decoded.State.Dues[0].Debt.String())

	again, err := EncodeSnapshot(decoded)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() []byte {
		pool := seededPool(t)
		_, err := pool.LendGivenPercent(pair.LendGivenPercentParams{AssetIn: big.NewInt(1000), Percent: 1 << 30, Deadline: start})
		require.NoError(t, err)
		_, err = pool.BorrowGivenPercent(pair.BorrowGivenPercentParams{AssetOut: big.NewInt(700), Percent: 3 << 30, Deadline: start})
		require.NoError(t, err)
		data, err := EncodeSnapshot(Snapshot{Maturity: pool.Maturity(), Fees: pool.Fees(), State: pool.State()})
		require.NoError(t, err)
		return data
	}
	require.Equal(t, run(), run())
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte{2})
	require.ErrorIs(t, err, ErrSnapshotVersion)

	_, err = DecodeSnapshot([]byte{SnapshotVersion, 1, 2})
	require.Error(t, err)

	pool := seededPool(t)
	data, err := EncodeSnapshot(Snapshot{Maturity: pool.Maturity(), Fees: pool.Fees(), State: pool.State()})
	require.NoError(t, err)
	count := len(data) - 4 - 32
	data[count] = 2
	_, err = DecodeSnapshot(data)
	require.Error(t, err)

	state := shared.NewState()
	state.X = new(big.Int).Lsh(big.NewInt(1), 112)
	_, err = EncodeSnapshot(Snapshot{State: state})
	require.Error(t, err)
}
