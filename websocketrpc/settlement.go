package websocketrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/easypmnt/sui-swap-api/events"
	"github.com/pkg/errors"
)

type (
	// swapEvent is the parsed body of a settle::Swap event.
	swapEvent struct {
		CoinIn     typeName    `json:"coin_in"`
		CoinOut    typeName    `json:"coin_out"`
		AmountIn   json.Number `json:"amount_in"`
		AmountOut  json.Number `json:"amount_out"`
		Partner    *string     `json:"partner,omitempty"`
		Commission json.Number `json:"commission,omitempty"`
	}

	fireEventFunc func(events.EventName, ...interface{})
)

// SwapEventType returns the settlement event type of the given package.
func SwapEventType(pkg string) string {
	return fmt.Sprintf("%s::settle::Swap", pkg)
}

// WatchSettlements subscribes to the settlement events of the given package
// and fires events.SwapSettled for each of them.
func (c *Client) WatchSettlements(ctx context.Context, pkg string, fire fireEventFunc) (int64, error) {
	return c.Subscribe(ctx, SubscribeEvent, GetEventSubscribeRequestPayload(SwapEventType(pkg)), func(result json.RawMessage) error {
		payload, err := ParseSwapSettled(result)
		if err != nil {
			return err
		}
		fire(events.SwapSettled, payload)
		return nil
	})
}

// ParseSwapSettled decodes a settle::Swap notification.
func ParseSwapSettled(result json.RawMessage) (events.SwapSettledPayload, error) {
	var ev SuiEvent
	if err := json.Unmarshal(result, &ev); err != nil {
		return events.SwapSettledPayload{}, errors.Wrap(err, "error decoding sui event")
	}

	var body swapEvent
	if err := json.Unmarshal(ev.ParsedJSON, &body); err != nil {
		return events.SwapSettledPayload{}, errors.Wrap(err, "error decoding swap event")
	}

	p := events.SwapSettledPayload{
		Digest:     ev.ID.TxDigest,
		Sender:     ev.Sender,
		CoinIn:     body.CoinIn.String(),
		CoinOut:    body.CoinOut.String(),
		AmountIn:   body.AmountIn.String(),
		AmountOut:  body.AmountOut.String(),
		Commission: body.Commission.String(),
	}
	if body.Partner != nil {
		p.Partner = *body.Partner
	}
	if ts, err := strconv.ParseInt(ev.TimestampMs, 10, 64); err == nil {
		p.Timestamp = ts
	}

	return p, nil
}
