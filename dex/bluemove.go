package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapBluemove(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Bluemove
	if err := requireConfig("bluemove.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	dexInfo, err := hc.shared(ctx, true, cfg.DexInfo)
	if err != nil {
		return ptb.Argument{}, err
	}

	amount := hc.inputValue()
	return hc.Tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "router",
		Function:      "swap_exact_input_",
		TypeArguments: []string{hc.Hop.AssetIn(), hc.Hop.AssetOut()},
		Arguments:     []ptb.Argument{amount, hc.Input, hc.Tx.PureU64(0), dexInfo[0]},
	}), nil
}
