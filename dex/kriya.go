package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/holiman/uint256"
)

// Kriya v3 rejects the exact pool bounds and expects these limits instead.
var (
	kriyaV3MinLimit = uint256.NewInt(4295048017)
	kriyaV3MaxLimit = uint256.MustFromDecimal("79226673515401279992447579050")
)

func swapKriya(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Kriya
	if err := requireConfig("kriya.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	pool, err := hc.pool(ctx)
	if err != nil {
		return ptb.Argument{}, err
	}

	function := "swap_token_y"
	if hc.Hop.SwapXtoY {
		function = "swap_token_x"
	}
	amount := hc.inputValue()
	return hc.Tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "spot_dex",
		Function:      function,
		TypeArguments: []string{hc.Hop.CoinX.Type, hc.Hop.CoinY.Type},
		Arguments:     []ptb.Argument{pool, hc.Input, amount, hc.Tx.PureU64(0)},
	}), nil
}

// swapKriyaV3 borrows the output with a flash swap and repays it
// with the input coin.
func swapKriyaV3(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.KriyaV3
	if err := requireConfig("kriya_v3.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	params, err := hc.typeParams(2)
	if err != nil {
		return ptb.Argument{}, err
	}

	x2y := hc.Hop.SwapXtoY
	limit := kriyaV3MaxLimit
	if x2y {
		limit = kriyaV3MinLimit
	}
	pureLimit, err := hc.pureU128(new(uint256.Int).Set(limit))
	if err != nil {
		return ptb.Argument{}, err
	}

	objs, err := hc.shared(ctx, true, hc.Hop.Swap.PoolID, cfg.Version)
	if err != nil {
		return ptb.Argument{}, err
	}
	pool, version := objs[0], objs[1]

	var (
		tx       = hc.Tx
		assetIn  = hc.Hop.AssetIn()
		assetOut = hc.Hop.AssetOut()
	)
	amount := hc.inputValue()
	flash := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "trade",
		Function:      "flash_swap",
		TypeArguments: params,
		Arguments:     []ptb.Argument{pool, tx.PureBool(x2y), tx.PureBool(true), amount, pureLimit, tx.Clock(), version},
	})
	balanceX, balanceY, receipt := flash.Nested(0), flash.Nested(1), flash.Nested(2)

	empty, borrowed := balanceY, balanceX
	if x2y {
		empty, borrowed = balanceX, balanceY
	}
	tx.BalanceDestroyZero(assetIn, empty)

	zero := tx.BalanceZero(assetOut)
	paid := tx.CoinIntoBalance(assetIn, hc.Input)
	repayX, repayY := zero, paid
	if x2y {
		repayX, repayY = paid, zero
	}
	tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Package,
		Module:        "trade",
		Function:      "repay_flash_swap",
		TypeArguments: params,
		Arguments:     []ptb.Argument{pool, receipt, repayX, repayY, version},
	})

	return tx.CoinFromBalance(assetOut, borrowed), nil
}
