package sui

import (
	"context"
	"sort"

	"github.com/easypmnt/sui-swap-api/swaperr"
)

// SelectCoins returns the owner's coins of the given type, largest first,
// until their balances cover amount.
func (c *Client) SelectCoins(ctx context.Context, owner, coinType string, amount uint64) ([]Coin, error) {
	coins, err := c.GetAllCoins(ctx, owner, coinType)
	if err != nil {
		return nil, err
	}

	return PickCoins(coins, coinType, amount)
}

// PickCoins sorts coins by balance, largest first, and takes as many as
// needed to cover amount.
func PickCoins(coins []Coin, coinType string, amount uint64) ([]Coin, error) {
	sorted := append([]Coin(nil), coins...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Balance > sorted[j].Balance
	})

	var (
		picked []Coin
		total  uint64
	)
	for _, coin := range sorted {
		if total >= amount && len(picked) > 0 {
			break
		}
		picked = append(picked, coin)
		total += uint64(coin.Balance)
	}

	if len(picked) == 0 || total < amount {
		return nil, &swaperr.InsufficientBalanceError{CoinType: coinType, Required: amount, Available: total}
	}

	return picked, nil
}
