package events

// EventName identifies a published event.
type EventName string

// Predefined
const (
	SwapBuilt       EventName = "swap.built"
	SwapBuildFailed EventName = "swap.build_failed"
	GasEstimated    EventName = "swap.gas_estimated"
	SwapSettled     EventName = "swap.settled"
)

// Event payloads.
type (
	SwapBuiltPayload struct {
		BuildID     string `json:"build_id"`
		Sender      string `json:"sender"`
		TokenIn     string `json:"token_in"`
		TokenOut    string `json:"token_out"`
		AmountIn    string `json:"amount_in"`
		MinReceived uint64 `json:"min_received"`
		Routes      int    `json:"routes"`
	}

	SwapBuildFailedPayload struct {
		Sender   string `json:"sender"`
		TokenIn  string `json:"token_in"`
		TokenOut string `json:"token_out"`
		Error    string `json:"error"`
	}

	GasEstimatedPayload struct {
		Sender  string  `json:"sender"`
		FeeMist int64   `json:"fee_mist"`
		FeeUSD  float64 `json:"fee_usd"`
	}

	// SwapSettledPayload is a settle::Swap event emitted on chain.
	SwapSettledPayload struct {
		Digest     string `json:"digest"`
		Sender     string `json:"sender"`
		CoinIn     string `json:"coin_in"`
		CoinOut    string `json:"coin_out"`
		AmountIn   string `json:"amount_in"`
		AmountOut  string `json:"amount_out"`
		Partner    string `json:"partner,omitempty"`
		Commission string `json:"commission,omitempty"`
		Timestamp  int64  `json:"timestamp_ms,omitempty"`
	}
)
