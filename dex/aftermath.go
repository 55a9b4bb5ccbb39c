package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

// aftermathAllowableSlippage is 100% in the 18 decimal fixed point the
// pool expects. Slippage is enforced once, at settlement.
const aftermathAllowableSlippage uint64 = 1_000_000_000_000_000_000

func swapAftermath(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Aftermath
	if err := requireConfig("aftermath.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	params, err := hc.typeParams(1)
	if err != nil {
		return ptb.Argument{}, err
	}
	expected, err := parseU64(hc.Hop.Swap.ReturnAmount)
	if err != nil {
		return ptb.Argument{}, err
	}

	args, err := hc.shared(ctx, true,
		hc.Hop.Swap.PoolID,
		cfg.PoolRegistry,
		cfg.ProtocolFeeVault,
		cfg.Treasury,
		cfg.InsuranceFund,
		cfg.ReferralVault,
	)
	if err != nil {
		return ptb.Argument{}, err
	}
	args = append(args,
		hc.Input,
		hc.Tx.PureU64(expected),
		hc.Tx.PureU64(aftermathAllowableSlippage),
	)

	return hc.Tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "swap",
		Function:      "swap_exact_in",
		TypeArguments: []string{params[0], hc.Hop.AssetIn(), hc.Hop.AssetOut()},
		Arguments:     args,
	}), nil
}
