package aggregator

import (
	"strconv"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/pkg/errors"
)

// ErrPoolNotFound is returned when a swap leg names a pool the quote routes do not describe.
var ErrPoolNotFound = errors.New("pool not found in quote routes")

// GroupSwapRoutes rebuilds the hop chains of a quote from its flat swap list.
// A leg with a zero amount continues the previous leg's route; any other
// amount starts a new route funded by its own split of the input coin.
func GroupSwapRoutes(quote *sevenk.QuoteResponse) ([]dex.Route, error) {
	if quote == nil || len(quote.Routes) == 0 || len(quote.Swaps) == 0 {
		return nil, nil
	}

	pools := make(map[string]sevenk.SorPool)
	for id, hop := range quote.HopLookup() {
		pools[normalizeID(id)] = hop.Pool
	}

	amounts := make([]uint64, len(quote.Swaps))
	hops := make([]dex.Hop, len(quote.Swaps))
	for i, swap := range quote.Swaps {
		amount, err := parseAmount(swap.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "swap %d", i)
		}
		amounts[i] = amount

		hop, err := annotate(swap, pools)
		if err != nil {
			return nil, err
		}
		hops[i] = hop
	}

	if amounts[0] == 0 {
		return nil, swaperr.Validationf("first swap continues a route that does not exist")
	}

	var (
		routes  []dex.Route
		current dex.Route
	)
	for i, hop := range hops {
		if len(current) > 0 {
			prev := current[len(current)-1]
			if prev.AssetOut() != hop.AssetIn() {
				return nil, swaperr.Validationf("swap %d sells %s but the previous swap buys %s", i, hop.AssetIn(), prev.AssetOut())
			}
		}
		current = append(current, hop)

		if i+1 == len(hops) || amounts[i+1] > 0 {
			routes = append(routes, current)
			current = nil
		}
	}

	return routes, nil
}

func annotate(swap sevenk.SorSwap, pools map[string]sevenk.SorPool) (dex.Hop, error) {
	pool, ok := pools[normalizeID(swap.PoolID)]
	if !ok {
		return dex.Hop{}, swaperr.NewResolution(swap.PoolID, ErrPoolNotFound)
	}
	if len(pool.AllTokens) < 2 {
		return dex.Hop{}, swaperr.Validationf("pool %s has %d tokens, want at least 2", swap.PoolID, len(pool.AllTokens))
	}

	swap.AssetIn = ptb.NormalizeType(swap.AssetIn)
	swap.AssetOut = ptb.NormalizeType(swap.AssetOut)
	coinX := dex.Coin{Type: ptb.NormalizeType(pool.AllTokens[0].Address), Decimals: pool.AllTokens[0].Decimal}
	coinY := dex.Coin{Type: ptb.NormalizeType(pool.AllTokens[1].Address), Decimals: pool.AllTokens[1].Decimal}

	return dex.Hop{
		Swap:     swap,
		Pool:     pool,
		CoinX:    coinX,
		CoinY:    coinY,
		SwapXtoY: swap.AssetIn == coinX.Type,
	}, nil
}

// routeAmounts returns the funding split of every route.
func routeAmounts(routes []dex.Route) ([]uint64, error) {
	amounts := make([]uint64, len(routes))
	for i, route := range routes {
		amount, err := parseAmount(route[0].Swap.Amount)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}

func parseAmount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, swaperr.NewParse(s, err)
	}
	return n, nil
}

func normalizeID(id string) string {
	if n, err := ptb.NormalizeAddress(id); err == nil {
		return n
	}
	return id
}
