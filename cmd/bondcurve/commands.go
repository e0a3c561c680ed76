package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krazyTry/bondcurve-go/pair"
	"github.com/krazyTry/bondcurve-go/pair/helpers"
	"github.com/krazyTry/bondcurve-go/pair/shared"
)

// action runs one request against the stored pool. Mutating actions save the
// next snapshot before printing their result.
func (a *app) action(use, short string, mutates bool, run func(pool *pair.Pool, req request, deadline uint64) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd)
			if err != nil {
				return err
			}
			pool, err := a.loadPool(req)
			if err != nil {
				return err
			}
			now := clock(req)()
			out, err := run(pool, req, req.uintOr("deadline", now))
			if err != nil {
				return err
			}
			if mutates {
				if err := a.savePool(pool); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Open a pool from a seed deposit and write its first snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.request(cmd)
			if err != nil {
				return err
			}
			maturity := req.uintOr("maturity", 0)
			if maturity == 0 {
				return fmt.Errorf("%w: maturity is required", errInvalidRequest)
			}
			params := pair.NewLiquidityParams{}
			if params.AssetIn, err = req.amount("assetIn"); err != nil {
				return err
			}
			if params.DebtIn, err = req.amount("debtIn"); err != nil {
				return err
			}
			if params.CollateralIn, err = req.amount("collateralIn"); err != nil {
				return err
			}
			now := clock(req)
			params.Deadline = req.uintOr("deadline", now())

			pool, err := pair.NewPool(maturity, a.cfg.Fees, pair.WithClock(now), pair.WithLogger(a.logger))
			if err != nil {
				return err
			}
			result, err := pool.Mint(params)
			if err != nil {
				return err
			}
			if err := a.savePool(pool); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func (a *app) mintCmd() *cobra.Command {
	return a.action("mint", "Add liquidity given asset, assetWithFees, debt or collateral", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			params := pair.AddLiquidityParams{Deadline: deadline}
			var err error
			if params.Amount, err = req.amount("amount"); err != nil {
				return nil, err
			}
			if params.MinLiquidity, err = req.optionalAmount("minLiquidity"); err != nil {
				return nil, err
			}
			if params.MaxDebt, err = req.optionalAmount("maxDebt"); err != nil {
				return nil, err
			}
			if params.MaxCollateral, err = req.optionalAmount("maxCollateral"); err != nil {
				return nil, err
			}
			switch form := req.Get("form").String(); form {
			case "asset", "":
				return pool.MintGivenAsset(params)
			case "assetWithFees":
				return pool.MintGivenAssetWithFees(params)
			case "debt":
				return pool.MintGivenDebt(params)
			case "collateral":
				return pool.MintGivenCollateral(params)
			default:
				return nil, fmt.Errorf("%w: %q", errUnknownForm, form)
			}
		})
}

func (a *app) lendCmd() *cobra.Command {
	return a.action("lend", "Lend given bond, insurance or percent", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			assetIn, err := req.amount("assetIn")
			if err != nil {
				return nil, err
			}
			minBond, err := req.optionalAmount("minBond")
			if err != nil {
				return nil, err
			}
			minInsurance, err := req.optionalAmount("minInsurance")
			if err != nil {
				return nil, err
			}
			switch form := req.Get("form").String(); form {
			case "bond":
				bondOut, err := req.amount("bondOut")
				if err != nil {
					return nil, err
				}
				return pool.LendGivenBond(pair.LendGivenBondParams{AssetIn: assetIn, BondOut: bondOut, MinInsurance: minInsurance, Deadline: deadline})
			case "insurance":
				insuranceOut, err := req.amount("insuranceOut")
				if err != nil {
					return nil, err
				}
				return pool.LendGivenInsurance(pair.LendGivenInsuranceParams{AssetIn: assetIn, InsuranceOut: insuranceOut, MinBond: minBond, Deadline: deadline})
			case "percent", "":
				return pool.LendGivenPercent(pair.LendGivenPercentParams{
					AssetIn:      assetIn,
					Percent:      req.uintOr("percent", 1<<31),
					MinBond:      minBond,
					MinInsurance: minInsurance,
					Deadline:     deadline,
				})
			default:
				return nil, fmt.Errorf("%w: %q", errUnknownForm, form)
			}
		})
}

func (a *app) borrowCmd() *cobra.Command {
	return a.action("borrow", "Borrow given debt, collateral or percent", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			assetOut, err := req.amount("assetOut")
			if err != nil {
				return nil, err
			}
			maxDebt, err := req.optionalAmount("maxDebt")
			if err != nil {
				return nil, err
			}
			maxCollateral, err := req.optionalAmount("maxCollateral")
			if err != nil {
				return nil, err
			}
			switch form := req.Get("form").String(); form {
			case "debt":
				debtIn, err := req.amount("debtIn")
				if err != nil {
					return nil, err
				}
				return pool.BorrowGivenDebt(pair.BorrowGivenDebtParams{AssetOut: assetOut, DebtIn: debtIn, MaxCollateral: maxCollateral, Deadline: deadline})
			case "collateral":
				collateralIn, err := req.amount("collateralIn")
				if err != nil {
					return nil, err
				}
				return pool.BorrowGivenCollateral(pair.BorrowGivenCollateralParams{AssetOut: assetOut, CollateralIn: collateralIn, MaxDebt: maxDebt, Deadline: deadline})
			case "percent", "":
				return pool.BorrowGivenPercent(pair.BorrowGivenPercentParams{
					AssetOut:      assetOut,
					Percent:       req.uintOr("percent", 1<<31),
					MaxDebt:       maxDebt,
					MaxCollateral: maxCollateral,
					Deadline:      deadline,
				})
			default:
				return nil, fmt.Errorf("%w: %q", errUnknownForm, form)
			}
		})
}

func (a *app) repayCmd() *cobra.Command {
	return a.action("repay", "Repay part or all of a due before maturity", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			if !req.Get("dueId").Exists() {
				return nil, fmt.Errorf("%w: dueId is required", errInvalidRequest)
			}
			assetIn, err := req.amount("assetIn")
			if err != nil {
				return nil, err
			}
			return pool.Repay(pair.RepayParams{DueID: req.uintOr("dueId", 0), AssetIn: assetIn, Deadline: deadline})
		})
}

func (a *app) withdrawCmd() *cobra.Command {
	return a.action("withdraw", "Redeem claims after maturity", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			claims, err := req.claims("claims")
			if err != nil {
				return nil, err
			}
			return pool.Withdraw(pair.WithdrawParams{Claims: claims, Deadline: deadline})
		})
}

func (a *app) burnCmd() *cobra.Command {
	return a.action("burn", "Redeem liquidity after maturity", true,
		func(pool *pair.Pool, req request, deadline uint64) (any, error) {
			liquidityIn, err := req.amount("liquidityIn")
			if err != nil {
				return nil, err
			}
			return pool.Burn(pair.BurnParams{LiquidityIn: liquidityIn, Deadline: deadline})
		})
}

func (a *app) collectCmd() *cobra.Command {
	return a.action("collect", "Collect the stored protocol fee", true,
		func(pool *pair.Pool, _ request, deadline uint64) (any, error) {
			collected, err := pool.CollectProtocolFee(deadline)
			if err != nil {
				return nil, err
			}
			return map[string]any{"protocolFee": collected}, nil
		})
}

func (a *app) quoteCmd() *cobra.Command {
	return a.action("quote", "Quote a lend or borrow given percent without changing the pool", false,
		func(pool *pair.Pool, req request, _ uint64) (any, error) {
			amount, err := req.amount("amount")
			if err != nil {
				return nil, err
			}
			now := clock(req)()
			if now >= pool.Maturity() {
				return nil, fmt.Errorf("quote: %w", shared.ErrPoolMatured)
			}
			percent := req.uintOr("percent", 1<<31)
			duration := pool.Maturity() - now
			switch side := req.Get("side").String(); side {
			case "lend", "":
				return helpers.QuoteLendGivenPercent(pool.State(), amount, percent, duration, pool.Fees(), a.cfg.Quote.SlippageBps)
			case "borrow":
				return helpers.QuoteBorrowGivenPercent(pool.State(), amount, percent, duration, pool.Fees(), a.cfg.Quote.SlippageBps)
			default:
				return nil, fmt.Errorf("%w: side %q", errUnknownForm, side)
			}
		})
}

func (a *app) stateCmd() *cobra.Command {
	return a.action("state", "Print the stored pool state", false,
		func(pool *pair.Pool, _ request, _ uint64) (any, error) {
			return helpers.Snapshot{Maturity: pool.Maturity(), Fees: pool.Fees(), State: pool.State()}, nil
		})
}
