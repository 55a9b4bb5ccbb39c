package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

// swapObric prices the trade from the two Pyth feeds named in the hop.
func swapObric(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Obric
	if err := requireConfig("obric.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	xPriceID, err := hc.extra("x_price_id", "xPriceId")
	if err != nil {
		return ptb.Argument{}, err
	}
	yPriceID, err := hc.extra("y_price_id", "yPriceId")
	if err != nil {
		return ptb.Argument{}, err
	}

	pool, err := hc.pool(ctx)
	if err != nil {
		return ptb.Argument{}, err
	}
	feeds, err := hc.shared(ctx, false, cfg.PythState, xPriceID, yPriceID)
	if err != nil {
		return ptb.Argument{}, err
	}

	function := "swap_y_to_x"
	if hc.Hop.SwapXtoY {
		function = "swap_x_to_y"
	}
	return hc.Tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "v2",
		Function:      function,
		TypeArguments: []string{hc.Hop.CoinX.Type, hc.Hop.CoinY.Type},
		Arguments:     []ptb.Argument{pool, hc.Tx.Clock(), feeds[0], feeds[1], feeds[2], hc.Input},
	}), nil
}
