package sevenk

import (
	"context"
	"fmt"
	"net/url"

	"github.com/easypmnt/sui-swap-api/utils"
	"golang.org/x/sync/errgroup"
)

// Prices request limits.
const (
	MaxPriceIDs           = 500
	MaxPriceIDsPerRequest = 100
)

type pricesRequest struct {
	IDs    []string `json:"ids"`
	VsCoin string   `json:"vsCoin"`
}

// Price returns the USDC price of the given coin type.
func (c *Client) Price(ctx context.Context, coinType string) (float64, error) {
	params := url.Values{}
	params.Set("ids", coinType)
	params.Set("vsCoin", utils.NativeUSDCType)

	var resp map[string]TokenPrice
	if err := c.get(ctx, c.pricesURL+c.endpointPrice, params, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch token price: %w", err)
	}

	p, ok := resp[coinType]
	if !ok || p.Price == nil {
		return 0, fmt.Errorf("no price for %s", coinType)
	}

	return *p.Price, nil
}

// SuiPrice returns the USDC price of SUI.
func (c *Client) SuiPrice(ctx context.Context) (float64, error) {
	return c.Price(ctx, utils.SuiFullType)
}

// Prices returns the prices of the given coin types quoted in vsCoin
// (native USDC when empty). At most MaxPriceIDs ids are looked up, in
// concurrent batches of MaxPriceIDsPerRequest. Ids without a price are 0.
func (c *Client) Prices(ctx context.Context, ids []string, vsCoin string) (map[string]float64, error) {
	if vsCoin == "" {
		vsCoin = utils.NativeUSDCType
	}
	if len(ids) > MaxPriceIDs {
		ids = ids[:MaxPriceIDs]
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += MaxPriceIDsPerRequest {
		end := start + MaxPriceIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	results := make([]map[string]TokenPrice, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			var resp map[string]TokenPrice
			if err := c.post(gctx, c.pricesURL+c.endpointPrice, pricesRequest{IDs: chunk, VsCoin: vsCoin}, &resp); err != nil {
				return fmt.Errorf("failed to fetch token prices: %w", err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(ids))
	for _, id := range ids {
		prices[id] = 0
	}
	for _, res := range results {
		for id, p := range res {
			if _, ok := prices[id]; ok && p.Price != nil {
				prices[id] = *p.Price
			}
		}
	}

	return prices, nil
}
