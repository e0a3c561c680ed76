package bondcurve

import (
	"github.com/krazyTry/bondcurve-go/config"
	"github.com/krazyTry/bondcurve-go/pair"
	"github.com/krazyTry/bondcurve-go/pair/helpers"
)

// NewPool creates a pool that matures at the given unix time.
//
// Example:
//
// pool, _ := NewPool(maturity, shared.DefaultFees(), pair.WithLogger(logger))
//
// pool.Mint(pair.NewLiquidityParams{AssetIn: assetIn, DebtIn: debtIn, CollateralIn: collateralIn, Deadline: deadline})
//
// pool.LendGivenPercent(pair.LendGivenPercentParams{AssetIn: assetIn, Percent: 1 << 31, Deadline: deadline})
var NewPool = pair.NewPool

// LoadConfig reads a YAML config and applies BONDCURVE_* environment overrides.
var LoadConfig = config.Load

// EncodeSnapshot serializes a pool snapshot with Borsh.
var EncodeSnapshot = helpers.EncodeSnapshot

// DecodeSnapshot parses a snapshot written by EncodeSnapshot.
var DecodeSnapshot = helpers.DecodeSnapshot

// Snapshot returns the encoded state of pool.
func Snapshot(pool *pair.Pool) ([]byte, error) {
	return helpers.EncodeSnapshot(helpers.Snapshot{
		Maturity: pool.Maturity(),
		Fees:     pool.Fees(),
		State:    pool.State(),
	})
}

// RestorePool rebuilds a pool from an encoded snapshot.
func RestorePool(data []byte, opts ...pair.Option) (*pair.Pool, error) {
	snapshot, err := helpers.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	opts = append([]pair.Option{pair.WithState(snapshot.State)}, opts...)
	return pair.NewPool(snapshot.Maturity, snapshot.Fees, opts...)
}
