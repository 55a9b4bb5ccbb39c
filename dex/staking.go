package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapSpringsui(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	return swapLiquidStaking(ctx, hc, "springsui", hc.Config.Springsui)
}

func swapStsui(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	return swapLiquidStaking(ctx, hc, "stsui", hc.Config.Stsui)
}

// swapLiquidStaking mints the staking token when selling SUI (the pool's
// first coin) and redeems it otherwise.
func swapLiquidStaking(ctx context.Context, hc HopContext, name string, cfg dexconfig.Dex) (ptb.Argument, error) {
	if err := requireConfig(name+".package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	pool, err := hc.pool(ctx)
	if err != nil {
		return ptb.Argument{}, err
	}

	tx := hc.Tx
	call := ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "liquid_staking",
		TypeArguments: []string{hc.Hop.CoinY.Type},
	}
	if hc.Hop.SwapXtoY {
		call.Function = "mint"
		call.Arguments = []ptb.Argument{pool, tx.SystemState(), hc.Input}
	} else {
		call.Function = "redeem"
		call.Arguments = []ptb.Argument{pool, hc.Input, tx.SystemState()}
	}

	return tx.MoveCall(call), nil
}
