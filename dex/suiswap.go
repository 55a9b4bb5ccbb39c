package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapSuiswap(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Suiswap
	if err := requireConfig("suiswap.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	pool, err := hc.pool(ctx)
	if err != nil {
		return ptb.Argument{}, err
	}

	var (
		tx      = hc.Tx
		assetIn = hc.Hop.AssetIn()
	)
	function := "do_swap_y_to_x_direct"
	if hc.Hop.SwapXtoY {
		function = "do_swap_x_to_y_direct"
	}

	amount := hc.inputValue()
	coins := tx.MakeMoveVec(ptb.CoinType(assetIn), hc.Input)
	res := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "pool",
		Function:      function,
		TypeArguments: []string{hc.Hop.CoinX.Type, hc.Hop.CoinY.Type},
		Arguments:     []ptb.Argument{pool, coins, amount, tx.Clock()},
	})

	if err := hc.sendCoin(assetIn, res.Nested(0)); err != nil {
		return ptb.Argument{}, err
	}

	return res.Nested(1), nil
}
