package sevenk

import (
	"context"
	"fmt"

	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/google/go-querystring/query"
)

type (
	// QuoteParams are the parameters for a quote request.
	QuoteParams struct {
		TokenIn       string   // required
		TokenOut      string   // required
		AmountIn      string   // required, raw integer amount of TokenIn
		Sources       []Source // Sources limits routing to the given exchanges, all of them by default.
		TargetPools   []string // TargetPools restricts routing to the given pool ids. It is optional.
		ExcludedPools []string // ExcludedPools removes the given pool ids from routing. It is optional.
	}

	quoteQuery struct {
		Amount        string   `url:"amount"`
		From          string   `url:"from"`
		To            string   `url:"to"`
		Sources       []string `url:"sources,comma"`
		TargetPools   []string `url:"target_pools,comma,omitempty"`
		ExcludedPools []string `url:"excluded_pools,comma,omitempty"`
	}
)

// Quote returns a routed quote for the given parameters.
func (c *Client) Quote(ctx context.Context, params QuoteParams) (*QuoteResponse, error) {
	if params.TokenIn == "" || params.TokenOut == "" || params.AmountIn == "" {
		return nil, fmt.Errorf("token in, token out and amount are required")
	}

	sources := params.Sources
	if len(sources) == 0 {
		sources = AllSources()
	}

	q := quoteQuery{
		Amount:        params.AmountIn,
		From:          ptb.NormalizeType(params.TokenIn),
		To:            ptb.NormalizeType(params.TokenOut),
		TargetPools:   normalizeObjectIDs(params.TargetPools),
		ExcludedPools: normalizeObjectIDs(params.ExcludedPools),
	}
	for _, s := range sources {
		q.Sources = append(q.Sources, s.String())
	}

	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote params: %w", err)
	}

	var quote QuoteResponse
	if err := c.get(ctx, c.apiURL+c.endpointQuote, values, &quote); err != nil {
		return nil, fmt.Errorf("failed to fetch aggregator quote: %w", err)
	}

	return &quote, nil
}

func normalizeObjectIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, err := ptb.NormalizeAddress(id); err == nil {
			id = n
		}
		out = append(out, id)
	}
	return out
}
