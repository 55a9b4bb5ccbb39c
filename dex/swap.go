package dex

import (
	"context"
	"fmt"

	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/swaperr"
)

// Swap emits the hop on the exchange owning its pool and returns the
// bought coin. The input coin is consumed.
func Swap(ctx context.Context, hc HopContext) (ptb.Argument, error) {
	if hc.Tx == nil || hc.Config == nil || hc.Objects == nil {
		return ptb.Argument{}, fmt.Errorf("dex: incomplete hop context")
	}

	switch hc.Hop.Pool.Type {
	case sevenk.Suiswap:
		return swapSuiswap(ctx, hc)
	case sevenk.Turbos:
		return swapTurbos(ctx, hc)
	case sevenk.Cetus:
		return swapCetus(ctx, hc)
	case sevenk.Bluemove:
		return swapBluemove(ctx, hc)
	case sevenk.Kriya:
		return swapKriya(ctx, hc)
	case sevenk.KriyaV3:
		return swapKriyaV3(ctx, hc)
	case sevenk.Aftermath:
		return swapAftermath(ctx, hc)
	case sevenk.Deepbook:
		return swapDeepbook(ctx, hc)
	case sevenk.DeepbookV3:
		return swapDeepbookV3(ctx, hc)
	case sevenk.Flowx:
		return swapFlowx(ctx, hc)
	case sevenk.FlowxV3:
		return swapFlowxV3(ctx, hc)
	case sevenk.Bluefin:
		return swapBluefin(ctx, hc)
	case sevenk.Springsui:
		return swapSpringsui(ctx, hc)
	case sevenk.Obric:
		return swapObric(ctx, hc)
	case sevenk.Stsui:
		return swapStsui(ctx, hc)
	}

	return ptb.Argument{}, swaperr.Validationf("unsupported source %q", hc.Hop.Pool.Type)
}
