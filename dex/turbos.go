package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

// turbosDeadline is how long a Turbos swap stays valid.
const turbosDeadline int64 = 3 * 60 * 1000

func swapTurbos(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Turbos
	if err := requireConfig("turbos.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	params, err := hc.typeParams(3)
	if err != nil {
		return ptb.Argument{}, err
	}

	x2y := hc.Hop.SwapXtoY
	limit, err := hc.pureU128(DefaultSqrtPriceLimit(x2y))
	if err != nil {
		return ptb.Argument{}, err
	}
	tx := hc.Tx
	recipient, err := tx.PureAddress(hc.Account)
	if err != nil {
		return ptb.Argument{}, err
	}

	objs, err := hc.shared(ctx, true, hc.Hop.Swap.PoolID, cfg.Version)
	if err != nil {
		return ptb.Argument{}, err
	}

	assetIn := hc.Hop.AssetIn()
	function := "swap_b_a_with_return"
	if x2y {
		function = "swap_a_b_with_return"
	}

	amount := hc.inputValue()
	coins := tx.MakeMoveVec(ptb.CoinType(assetIn), hc.Input)
	res := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "amm",
		Function:      function,
		TypeArguments: params,
		Arguments: []ptb.Argument{
			objs[0],
			coins,
			amount,
			tx.PureU64(0),
			limit,
			tx.PureBool(true),
			recipient,
			tx.PureU64(uint64(hc.now().UnixMilli() + turbosDeadline)),
			tx.Clock(),
			objs[1],
		},
	})

	if err := hc.sendCoin(assetIn, res.Nested(1)); err != nil {
		return ptb.Argument{}, err
	}

	return res.Nested(0), nil
}
