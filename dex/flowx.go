package dex

import (
	"context"
	"math"

	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapFlowx(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Flowx
	if err := requireConfig("flowx.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	container, err := hc.shared(ctx, true, cfg.Container)
	if err != nil {
		return ptb.Argument{}, err
	}

	return hc.Tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "router",
		Function:      "swap_exact_input_direct",
		TypeArguments: []string{hc.Hop.AssetIn(), hc.Hop.AssetOut()},
		Arguments:     []ptb.Argument{container[0], hc.Input},
	}), nil
}

func swapFlowxV3(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.FlowxV3
	if err := requireConfig("flowx_v3.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	fee, err := hc.extraU64("swap_fee_rate", "swapFeeRate")
	if err != nil {
		return ptb.Argument{}, err
	}

	x2y := hc.Hop.SwapXtoY
	limit, err := hc.pureU128(AdjustedSqrtPriceLimit(x2y))
	if err != nil {
		return ptb.Argument{}, err
	}

	registry, err := hc.shared(ctx, true, cfg.Registry)
	if err != nil {
		return ptb.Argument{}, err
	}
	version, err := hc.shared(ctx, true, cfg.Version)
	if err != nil {
		return ptb.Argument{}, err
	}

	tx := hc.Tx
	return tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "swap_router",
		Function:      "swap_exact_input",
		TypeArguments: []string{hc.Hop.AssetIn(), hc.Hop.AssetOut()},
		Arguments: []ptb.Argument{
			registry[0],
			tx.PureU64(fee),
			hc.Input,
			tx.PureU64(0),
			limit,
			tx.PureU64(math.MaxUint64),
			version[0],
			tx.Clock(),
		},
	}), nil
}
