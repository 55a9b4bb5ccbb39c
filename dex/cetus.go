package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapCetus(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Cetus
	if err := requireConfig("cetus.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	var (
		tx    = hc.Tx
		x2y   = hc.Hop.SwapXtoY
		coinX = hc.Hop.CoinX.Type
		coinY = hc.Hop.CoinY.Type
	)

	objs, err := hc.shared(ctx, true, cfg.GlobalConfig, hc.Hop.Swap.PoolID)
	if err != nil {
		return ptb.Argument{}, err
	}
	limit, err := hc.pureU128(DefaultSqrtPriceLimit(x2y))
	if err != nil {
		return ptb.Argument{}, err
	}

	amount := hc.inputValue()
	var coinA, coinB ptb.Argument
	if x2y {
		coinA, coinB = hc.Input, tx.CoinZero(coinY)
	} else {
		coinA, coinB = tx.CoinZero(coinX), hc.Input
	}

	res := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "router",
		Function:      "swap",
		TypeArguments: []string{coinX, coinY},
		Arguments: []ptb.Argument{
			objs[0],
			objs[1],
			coinA,
			coinB,
			tx.PureBool(x2y),
			tx.PureBool(true),
			amount,
			limit,
			tx.PureBool(false),
			tx.Clock(),
		},
	})

	outA, outB := res.Nested(0), res.Nested(1)
	leftover, bought := outB, outA
	if x2y {
		leftover, bought = outA, outB
	}
	if err := hc.sendCoin(hc.Hop.AssetIn(), leftover); err != nil {
		return ptb.Argument{}, err
	}

	return bought, nil
}
