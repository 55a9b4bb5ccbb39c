package dex

import (
	"context"

	"github.com/easypmnt/sui-swap-api/ptb"
)

// swapDeepbookV3 goes through the sponsored wrapper so the trader
// does not need DEEP for fees.
func swapDeepbookV3(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	cfg := hc.Config.DeepbookV3
	if err := requireConfig("deepbook_v3.sponsor", cfg.Sponsor); err != nil {
		return ptb.Argument{}, err
	}

	params, err := hc.typeParams(2)
	if err != nil {
		return ptb.Argument{}, err
	}
	sellBase := hc.Hop.AssetIn() == ptb.NormalizeType(params[0])

	objs, err := hc.shared(ctx, true, cfg.SponsorFund, hc.Hop.Swap.PoolID)
	if err != nil {
		return ptb.Argument{}, err
	}

	function := "swap_exact_quote_for_base"
	if sellBase {
		function = "swap_exact_base_for_quote"
	}
	tx := hc.Tx
	res := tx.MoveCall(ptb.MoveCall{
		Package:       cfg.Sponsor,
		Module:        "sponsored",
		Function:      function,
		TypeArguments: params,
		Arguments:     []ptb.Argument{objs[0], objs[1], hc.Input, tx.PureU64(0), tx.Clock()},
	})

	baseOut, quoteOut := res.Nested(0), res.Nested(1)
	leftover, bought := quoteOut, baseOut
	if sellBase {
		leftover, bought = baseOut, quoteOut
	}
	if err := hc.sendCoin(hc.Hop.AssetIn(), leftover); err != nil {
		return ptb.Argument{}, err
	}

	return bought, nil
}
