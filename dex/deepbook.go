package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

// swapDeepbook trades against a Deepbook v2 order book through a
// throwaway account cap. Selling base rounds the amount down to the lot size.
func swapDeepbook(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.Deepbook
	if err := requireConfig("deepbook.package", cfg.Package); err != nil {
		return ptb.Argument{}, err
	}

	params, err := hc.typeParams(2)
	if err != nil {
		return ptb.Argument{}, err
	}
	base, quote := params[0], params[1]

	var lotSize uint64
	if hc.Hop.SwapXtoY {
		if lotSize, err = hc.extraU64("lot_size", "lotSize"); err != nil {
			return ptb.Argument{}, err
		}
	}

	pool, err := hc.pool(ctx)
	if err != nil {
		return ptb.Argument{}, err
	}

	tx := hc.Tx
	clientOrderID := tx.PureU64(uint64(hc.now().UnixMilli()))
	call := func(module, function string, typeArgs []string, args ...ptb.Argument) ptb.Argument {
		return tx.MoveCall(ptb.MoveCall{
			Package:       cfg.Package,
			Module:        module,
			Function:      function,
			TypeArguments: typeArgs,
			Arguments:     args,
		})
	}

	accountCap := call("clob_v2", "create_account", nil)
	amount := hc.inputValue()

	var res ptb.Argument
	if hc.Hop.SwapXtoY {
		rounded := call("math", "m_round_down", nil, amount, tx.PureU64(lotSize))
		res = call("clob_v2", "swap_exact_base_for_quote", []string{base, quote},
			pool, clientOrderID, accountCap, rounded, hc.Input, tx.CoinZero(quote), tx.Clock())
	} else {
		res = call("clob_v2", "swap_exact_quote_for_base", []string{base, quote},
			pool, clientOrderID, accountCap, amount, tx.Clock(), hc.Input)
	}
	call("custodian_v2", "delete_account_cap", nil, accountCap)

	baseOut, quoteOut := res.Nested(0), res.Nested(1)
	leftover, bought := quoteOut, baseOut
	if hc.Hop.SwapXtoY {
		leftover, bought = baseOut, quoteOut
	}
	if err := hc.sendCoin(hc.Hop.AssetIn(), leftover); err != nil {
		return ptb.Argument{}, err
	}

	return bought, nil
}
