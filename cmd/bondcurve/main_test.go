package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/bondcurve-go/pair/shared"
)

type cli struct {
	t        *testing.T
	config   string
	snapshot string
}

func newCLI(t *testing.T) *cli {
	dir := t.TempDir()
	return &cli{t: t, config: filepath.Join(dir, "missing.yaml"), snapshot: filepath.Join(dir, "pool.snapshot")}
}

func (c *cli) run(command, body string) (gjson.Result, error) {
	c.t.Helper()
	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(strings.NewReader(body))
	root.SetArgs([]string{command, "--config", c.config, "--snapshot", c.snapshot})
	err := root.Execute()
	return gjson.ParseBytes(out.Bytes()), err
}

func TestLifecycle(t *testing.T) {
	c := newCLI(t)

	opened, err := c.run("new", `{"maturity": 1731531000, "now": 1700000000, "assetIn": "10000", "debtIn": 12000, "collateralIn": 1000}`)
	require.NoError(t, err)
	require.Equal(t, "272428", opened.Get("Delta.Y").Raw)
	require.Equal(t, "12000", opened.Get("Due.Debt").Raw)

	quote, err := c.run("quote", `{"now": 1700000000, "side": "lend", "amount": 1000}`)
	require.NoError(t, err)
	require.True(t, quote.Get("MinBond").Exists())

	lent, err := c.run("lend", `{"now": 1700000000, "form": "bond", "assetIn": 1000, "bondOut": 1010}`)
	require.NoError(t, err)
	require.Equal(t, int64(1010), lent.Get("Claims.BondPrincipal").Int()+lent.Get("Claims.BondInterest").Int())
	require.Equal(t, int64(75), lent.Get("Claims.InsurancePrincipal").Int()+lent.Get("Claims.InsuranceInterest").Int())

	borrowed, err := c.run("borrow", `{"now": 1700000000, "form": "percent", "assetOut": 1000}`)
	require.NoError(t, err)
	require.Greater(t, borrowed.Get("Due.Debt").Int(), int64(1000))
	require.Positive(t, borrowed.Get("Due.Collateral").Int())
	require.Equal(t, int64(1), borrowed.Get("DueID").Int())

	repaid, err := c.run("repay", `{"now": 1700000000, "dueId": `+borrowed.Get("DueID").Raw+`, "assetIn": 100}`)
	require.NoError(t, err)
	require.Equal(t, borrowed.Get("Due.Debt").Int()-100, repaid.Get("Due.Debt").Int())

	_, err = c.run("repay", `{"now": 1700000000, "assetIn": 100}`)
	require.ErrorIs(t, err, errInvalidRequest)

	claims := `{"bondPrincipal": ` + lent.Get("Claims.BondPrincipal").Raw +
		`, "bondInterest": ` + lent.Get("Claims.BondInterest").Raw +
		`, "insurancePrincipal": ` + lent.Get("Claims.InsurancePrincipal").Raw +
		`, "insuranceInterest": ` + lent.Get("Claims.InsuranceInterest").Raw + `}`
	_, err = c.run("withdraw", `{"now": 1700000000, "claims": `+claims+`}`)
	require.ErrorIs(t, err, shared.ErrPoolNotMatured)

	withdrawn, err := c.run("withdraw", `{"now": 1731531000, "claims": `+claims+`}`)
	require.NoError(t, err)
	require.Equal(t, "1010", withdrawn.Get("Asset").Raw)
	require.Equal(t, "0", withdrawn.Get("Collateral").Raw)

	state, err := c.run("state", "")
	require.NoError(t, err)
	require.Equal(t, "0", state.Get("State.TotalClaims.BondPrincipal").Raw)
	require.Equal(t, repaid.Get("Due.Debt").Raw, state.Get("State.Dues.1.Debt").Raw)
	require.Equal(t, uint64(1731531000), state.Get("Maturity").Uint())
	require.Equal(t, uint64(shared.DefaultFee), state.Get("Fees.fee").Uint())
}

func TestBadRequests(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("new", `{"now": 1700000000, "assetIn": 10000}`)
	require.ErrorIs(t, err, errInvalidRequest)

	_, err = c.run("new", `{"maturity": 1731531000, "now": 1700000000, "assetIn": "-5", "debtIn": 12000, "collateralIn": 1000}`)
	require.ErrorIs(t, err, errInvalidRequest)

	_, err = c.run("new", `not json`)
	require.ErrorIs(t, err, errInvalidRequest)

	_, err = c.run("lend", `{"assetIn": 1000}`)
	require.Error(t, err)

	_, err = c.run("new", `{"maturity": 1731531000, "now": 1700000000, "assetIn": 10000, "debtIn": 12000, "collateralIn": 1000}`)
	require.NoError(t, err)

	_, err = c.run("lend", `{"now": 1700000000, "form": "swap", "assetIn": 1000}`)
	require.ErrorIs(t, err, errUnknownForm)
}

func TestRequestClaims(t *testing.T) {
	req, err := parseRequest([]byte(`{"claims": {"bondPrincipal": "340282366920938463463374607431768211455", "insuranceInterest": 7}}`))
	require.NoError(t, err)

	claims, err := req.claims("claims")
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211455", claims.BondPrincipal.String())
	require.Equal(t, "0", claims.BondInterest.String())
	require.Equal(t, "7", claims.InsuranceInterest.String())

	_, err = req.claims("missing")
	require.ErrorIs(t, err, errInvalidRequest)
}
