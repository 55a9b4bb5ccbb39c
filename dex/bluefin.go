package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

func swapBluefin(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Bluefin
	if err := requireConfig("bluefin.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	var (
		tx       = hc.Tx
		x2y      = hc.Hop.SwapXtoY
		coinX    = hc.Hop.CoinX.Type
		coinY    = hc.Hop.CoinY.Type
		assetIn  = hc.Hop.AssetIn()
		assetOut = hc.Hop.AssetOut()
	)

	objs, err := hc.shared(ctx, true, cfg.GlobalConfig, hc.Hop.Swap.PoolID)
	if err != nil {
		return ptb.Argument{}, err
	}
	limit, err := hc.pureU128(AdjustedSqrtPriceLimit(x2y))
	if err != nil {
		return ptb.Argument{}, err
	}

	amount := hc.inputValue()
	balanceIn := tx.CoinIntoBalance(assetIn, hc.Input)
	balanceOut := tx.BalanceZero(assetOut)
	balanceX, balanceY := balanceOut, balanceIn
	if x2y {
		balanceX, balanceY = balanceIn, balanceOut
	}

	res := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "pool",
		Function:      "swap",
		TypeArguments: []string{coinX, coinY},
		Arguments: []ptb.Argument{
			tx.Clock(),
			objs[0],
			objs[1],
			balanceX,
			balanceY,
			tx.PureBool(x2y),
			tx.PureBool(true),
			amount,
			tx.PureU64(0),
			limit,
		},
	})

	outX := tx.CoinFromBalance(coinX, res.Nested(0))
	outY := tx.CoinFromBalance(coinY, res.Nested(1))
	leftover, bought := outY, outX
	if x2y {
		leftover, bought = outX, outY
	}
	if err := hc.sendCoin(assetIn, leftover); err != nil {
		return ptb.Argument{}, err
	}

	return bought, nil
}
