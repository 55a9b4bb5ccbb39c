package aggregator

import (
	"context"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/swaperr"
)

// SwapWithRoute emits the hops of one route in order, feeding each hop's
// output coin to the next hop, and returns the last output.
// index is the route position, used in errors only.
func (s *Service) SwapWithRoute(ctx context.Context, index int, route dex.Route, input ptb.Argument, base dex.HopContext) (ptb.Argument, error) {
	coin := input
	for i, hop := range route {
		hc := base
		hc.Hop = hop
		hc.Input = coin

		out, err := s.swap(ctx, hc)
		if err != nil {
			return ptb.Argument{}, swaperr.WithHop(err, index, i, hop.Pool.Type.String())
		}
		coin = out
	}
	return coin, nil
}
