package shared

import (
	"fmt"
	"math/big"
)

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

// Half selects which dimension a given-percent request interpolates on.
type Half uint8

const (
	// LowHalf interpolates the y dimension, percent in [0, 2^31].
	LowHalf Half = 0
	// HighHalf interpolates the z dimension, percent in (2^31, 2^32].
	HighHalf Half = 1
)

func (h Half) String() string {
	if h == HighHalf {
		return "high"
	}
	return "low"
}

// Fees are the per-pool fee rates. Fee is charged on the curve in units of 2^16
// and, together with ProtocolFee, per second of duration in units of 2^40.
type Fees struct {
	Fee         uint16 `json:"fee" yaml:"fee"`
	ProtocolFee uint16 `json:"protocol_fee" yaml:"protocol_fee"`
}

func DefaultFees() Fees {
	return Fees{Fee: DefaultFee, ProtocolFee: DefaultProtocolFee}
}

func (f Fees) Validate() error {
	if f.Fee > MaxFee {
		return fmt.Errorf("%w: fee %d above %d", ErrInvalidFee, f.Fee, MaxFee)
	}
	return nil
}

type Tokens struct {
	Asset      *big.Int
	Collateral *big.Int
}

func ZeroTokens() Tokens {
	return Tokens{Asset: big.NewInt(0), Collateral: big.NewInt(0)}
}

func (t Tokens) Clone() Tokens {
	return Tokens{Asset: cloneInt(t.Asset), Collateral: cloneInt(t.Collateral)}
}

// Claims are the four balances of a lender position.
type Claims struct {
	BondPrincipal      *big.Int
	BondInterest       *big.Int
	InsurancePrincipal *big.Int
	InsuranceInterest  *big.Int
}

func ZeroClaims() Claims {
	return Claims{
		BondPrincipal:      big.NewInt(0),
		BondInterest:       big.NewInt(0),
		InsurancePrincipal: big.NewInt(0),
		InsuranceInterest:  big.NewInt(0),
	}
}

func (c Claims) Clone() Claims {
	return Claims{
		BondPrincipal:      cloneInt(c.BondPrincipal),
		BondInterest:       cloneInt(c.BondInterest),
		InsurancePrincipal: cloneInt(c.InsurancePrincipal),
		InsuranceInterest:  cloneInt(c.InsuranceInterest),
	}
}

func (c Claims) Bond() *big.Int {
	return new(big.Int).Add(orZero(c.BondPrincipal), orZero(c.BondInterest))
}

func (c Claims) Insurance() *big.Int {
	return new(big.Int).Add(orZero(c.InsurancePrincipal), orZero(c.InsuranceInterest))
}

func (c Claims) IsZero() bool {
	return orZero(c.BondPrincipal).Sign() == 0 &&
		orZero(c.BondInterest).Sign() == 0 &&
		orZero(c.InsurancePrincipal).Sign() == 0 &&
		orZero(c.InsuranceInterest).Sign() == 0
}

// Due is a borrower position: Debt owed at maturity, Collateral forfeited if unpaid.
type Due struct {
	Debt       *big.Int
	Collateral *big.Int
}

func (d Due) Clone() Due {
	return Due{Debt: cloneInt(d.Debt), Collateral: cloneInt(d.Collateral)}
}

// CP is the reserve triple of the curve.
type CP struct {
	X *big.Int
	Y *big.Int
	Z *big.Int
}

func (cp CP) Clone() CP {
	return CP{X: cloneInt(cp.X), Y: cloneInt(cp.Y), Z: cloneInt(cp.Z)}
}

func (cp CP) IsZero() bool {
	return orZero(cp.X).Sign() == 0 && orZero(cp.Y).Sign() == 0 && orZero(cp.Z).Sign() == 0
}

// Delta holds unsigned reserve changes. Liquidity actions increase all three,
// lend increases X and decreases Y and Z, borrow decreases X and increases Y and Z.
type Delta struct {
	X *big.Int
	Y *big.Int
	Z *big.Int
}

// State is a snapshot of one pool. Operations never modify a State in place,
// they return a new one.
type State struct {
	Reserves          Tokens
	FeeStored         *big.Int
	ProtocolFeeStored *big.Int
	TotalLiquidity    *big.Int
	ProtocolLiquidity *big.Int
	TotalClaims       Claims
	TotalDebtCreated  *big.Int

	// Dues are the outstanding borrower positions, indexed by due id.
	Dues []Due
	CP
}

func NewState() State {
	return State{
		Reserves:          ZeroTokens(),
		FeeStored:         big.NewInt(0),
		ProtocolFeeStored: big.NewInt(0),
		TotalLiquidity:    big.NewInt(0),
		ProtocolLiquidity: big.NewInt(0),
		TotalClaims:       ZeroClaims(),
		TotalDebtCreated:  big.NewInt(0),
		CP:                CP{X: big.NewInt(0), Y: big.NewInt(0), Z: big.NewInt(0)},
	}
}

func (s State) Clone() State {
	return State{
		Reserves:          s.Reserves.Clone(),
		FeeStored:         cloneInt(s.FeeStored),
		ProtocolFeeStored: cloneInt(s.ProtocolFeeStored),
		TotalLiquidity:    cloneInt(s.TotalLiquidity),
		ProtocolLiquidity: cloneInt(s.ProtocolLiquidity),
		TotalClaims:       s.TotalClaims.Clone(),
		TotalDebtCreated:  cloneInt(s.TotalDebtCreated),
		Dues:              cloneDues(s.Dues),
		CP:                s.CP.Clone(),
	}
}

func cloneDues(dues []Due) []Due {
	if dues == nil {
		return nil
	}
	out := make([]Due, len(dues))
	for i, d := range dues {
		out[i] = d.Clone()
	}
	return out
}

// AvailableAsset is the asset reserve that is not owed as stored fees.
func (s State) AvailableAsset() *big.Int {
	out := new(big.Int).Sub(orZero(s.Reserves.Asset), orZero(s.FeeStored))
	out.Sub(out, orZero(s.ProtocolFeeStored))
	if out.Sign() < 0 {
		return big.NewInt(0)
	}
	return out
}

type FeeSplit struct {
	Pool     *big.Int
	Protocol *big.Int
}

func (f FeeSplit) Total() *big.Int {
	return new(big.Int).Add(orZero(f.Pool), orZero(f.Protocol))
}

type MintResult struct {
	Delta             Delta
	AssetIn           *big.Int
	LiquidityTotal    *big.Int
	LiquidityOut      *big.Int
	ProtocolLiquidity *big.Int
	FeeStoredIncrease *big.Int
	Due               Due
	DueID             uint64
}

type LendResult struct {
	Delta   Delta
	AssetIn *big.Int
	Fees    FeeSplit
	Claims  Claims
}

type BorrowResult struct {
	Delta    Delta
	AssetOut *big.Int
	Fees     FeeSplit
	Due      Due
	DueID    uint64
}

type RepayResult struct {
	AssetIn       *big.Int
	CollateralOut *big.Int
	Due           Due
}

type BurnResult struct {
	AssetOut      *big.Int
	CollateralOut *big.Int
	FeeOut        *big.Int
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}
