package sevenk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type (
	// QuoteResponse is the routed quote returned by the aggregator API.
	QuoteResponse struct {
		TokenIn                     string     `json:"tokenIn"`
		TokenOut                    string     `json:"tokenOut"`
		SwapAmount                  string     `json:"swapAmount"`              // SwapAmount is the human readable input amount.
		SwapAmountWithDecimal       string     `json:"swapAmountWithDecimal"`   // SwapAmountWithDecimal is the raw input amount.
		ReturnAmount                string     `json:"returnAmount"`            // ReturnAmount is the human readable expected output.
		ReturnAmountWithDecimal     string     `json:"returnAmountWithDecimal"` // ReturnAmountWithDecimal is the raw expected output.
		ReturnAmountConsiderGasFees string     `json:"returnAmountConsiderGasFees,omitempty"`
		ReturnAmountWithoutSwapFees string     `json:"returnAmountWithoutSwapFees,omitempty"`
		EffectivePrice              *float64   `json:"effectivePrice,omitempty"`
		EffectivePriceReserved      *float64   `json:"effectivePriceReserved,omitempty"`
		PriceImpact                 *float64   `json:"priceImpact,omitempty"`
		TokenAddresses              []string   `json:"tokenAddresses"`
		MarketSp                    string     `json:"marketSp"`
		Warning                     string     `json:"warning"`
		Swaps                       []SorSwap  `json:"swaps"`
		Routes                      []SorRoute `json:"routes,omitempty"`
	}

	// SorSwap is one swap leg of a quote. An amount of "0" means the leg
	// consumes the output of the previous leg.
	SorSwap struct {
		PoolID        string   `json:"poolId"`
		AssetInIndex  uint64   `json:"assetInIndex"`
		AssetOutIndex uint64   `json:"assetOutIndex"`
		Amount        string   `json:"amount"`
		ReturnAmount  string   `json:"returnAmount"`
		AssetIn       string   `json:"assetIn"`
		AssetOut      string   `json:"assetOut"`
		FunctionName  string   `json:"functionName,omitempty"`
		Arguments     []string `json:"arguments,omitempty"`
		Extra         Extra    `json:"extra,omitempty"`
	}

	// TokenInfo is a pool constituent.
	TokenInfo struct {
		Address string `json:"address"`
		Decimal uint8  `json:"decimal"`
	}

	// SorPool describes a liquidity pool.
	SorPool struct {
		AllTokens []TokenInfo `json:"allTokens"`
		Type      Source      `json:"type"`
	}

	// SorHop ties a pool id to its descriptor.
	SorHop struct {
		PoolID         string  `json:"poolId"`
		Pool           SorPool `json:"pool"`
		TokenIn        string  `json:"tokenIn"`
		TokenInAmount  string  `json:"tokenInAmount"`
		TokenOut       string  `json:"tokenOut"`
		TokenOutAmount string  `json:"tokenOutAmount"`
	}

	// SorRoute is one path of a quote.
	SorRoute struct {
		Hops           []SorHop `json:"hops"`
		Share          *float64 `json:"share,omitempty"`
		TokenIn        string   `json:"tokenIn"`
		TokenInAmount  string   `json:"tokenInAmount"`
		TokenOut       string   `json:"tokenOut"`
		TokenOutAmount string   `json:"tokenOutAmount"`
	}

	// Extra holds protocol specific swap parameters.
	Extra map[string]string

	// TokenPrice is a token price entry of the prices API.
	TokenPrice struct {
		TokenType      string   `json:"token_type,omitempty"`
		Price          *float64 `json:"price,omitempty"`
		PriceChange24h *float64 `json:"price_change_24h,omitempty"`
		Volume24h      *float64 `json:"volume_24h,omitempty"`
		MarketCap      *float64 `json:"market_cap,omitempty"`
	}

	// TradingHistory is a page of the account swap history.
	TradingHistory struct {
		Count   uint64         `json:"count"`
		History []HistoryEntry `json:"history"`
	}

	// HistoryEntry is one executed swap.
	HistoryEntry struct {
		Digest    string `json:"digest"`
		Timestamp string `json:"timestamp"`
		CoinIn    string `json:"coin_in"`
		CoinOut   string `json:"coin_out"`
		AmountIn  string `json:"amount_in"`
		AmountOut string `json:"amount_out"`
		Volume    string `json:"volume,omitempty"`
	}
)

// UnmarshalJSON accepts string, number and bool values; nulls are dropped.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode swap extra: %w", err)
	}
	if raw == nil {
		*e = nil
		return nil
	}

	out := make(Extra, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return fmt.Errorf("failed to decode swap extra %q: %w", k, err)
			}
			out[k] = string(b)
		}
	}
	*e = out

	return nil
}

// Get returns the first non-empty value among the given keys.
func (e Extra) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := e[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// HopLookup maps every pool id referenced by the quote routes to its hop.
func (q *QuoteResponse) HopLookup() map[string]SorHop {
	hops := make(map[string]SorHop)
	for _, r := range q.Routes {
		for _, h := range r.Hops {
			hops[h.PoolID] = h
		}
	}
	return hops
}
