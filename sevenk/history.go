package sevenk

import (
	"context"
	"fmt"

	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/google/go-querystring/query"
)

// HistoryParams are the parameters for a swap history request.
type HistoryParams struct {
	Owner     string `url:"addr"`                 // required
	Offset    uint64 `url:"offset"`               // Offset is the number of entries to skip.
	Limit     uint64 `url:"limit"`                // Limit is the page size.
	TokenPair string `url:"token_pair,omitempty"` // TokenPair filters the history by pair. It is optional.
}

// SwapHistory returns a page of swaps made by the given account.
func (c *Client) SwapHistory(ctx context.Context, params HistoryParams) (*TradingHistory, error) {
	if params.Owner == "" {
		return nil, fmt.Errorf("owner address is required")
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history params: %w", err)
	}

	var history TradingHistory
	if err := c.get(ctx, c.statsURL+c.endpointHistory, values, &history); err != nil {
		return nil, fmt.Errorf("failed to fetch swap history: %w", err)
	}

	return &history, nil
}

// FetchConfig returns the current exchange configuration.
func (c *Client) FetchConfig(ctx context.Context) (dexconfig.Config, error) {
	var cfg dexconfig.Config
	if err := c.get(ctx, c.apiURL+c.endpointConfig, nil, &cfg); err != nil {
		return dexconfig.Config{}, fmt.Errorf("failed to fetch dex config: %w", err)
	}
	return cfg, nil
}
