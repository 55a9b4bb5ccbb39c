package aggregator

import (
	"context"

	"github.com/easypmnt/sui-swap-api/events"
)

type (
	// ServiceEvents publishes an event for every build and gas estimate.
	ServiceEvents struct {
		svc       swapService
		fireEvent fireEventFunc
	}

	swapService interface {
		BuildTx(ctx context.Context, params BuildTxParams) (*BuildResult, error)
		EstimateGasFee(ctx context.Context, params BuildTxParams, suiPrice float64) (GasEstimate, error)
	}

	fireEventFunc func(events.EventName, ...interface{})
)

func NewServiceEvents(svc swapService, eventFn fireEventFunc) *ServiceEvents {
	return &ServiceEvents{svc: svc, fireEvent: eventFn}
}

// BuildTx builds the swap transaction.
func (s *ServiceEvents) BuildTx(ctx context.Context, params BuildTxParams) (*BuildResult, error) {
	var tokenIn, tokenOut, amountIn string
	if params.Quote != nil {
		tokenIn, tokenOut, amountIn = params.Quote.TokenIn, params.Quote.TokenOut, params.Quote.SwapAmountWithDecimal
	}

	result, err := s.svc.BuildTx(ctx, params)
	if err != nil {
		s.fireEvent(events.SwapBuildFailed, events.SwapBuildFailedPayload{
			Sender:   params.AccountAddress,
			TokenIn:  tokenIn,
			TokenOut: tokenOut,
			Error:    err.Error(),
		})
		return nil, err
	}

	s.fireEvent(events.SwapBuilt, events.SwapBuiltPayload{
		BuildID:     result.ID.String(),
		Sender:      params.AccountAddress,
		TokenIn:     tokenIn,
		TokenOut:    tokenOut,
		AmountIn:    amountIn,
		MinReceived: result.MinReceived,
		Routes:      len(result.Routes),
	})

	return result, nil
}

// EstimateGasFee estimates the gas fee of the swap.
func (s *ServiceEvents) EstimateGasFee(ctx context.Context, params BuildTxParams, suiPrice float64) (GasEstimate, error) {
	result, err := s.svc.EstimateGasFee(ctx, params, suiPrice)
	if err != nil {
		return GasEstimate{}, err
	}

	s.fireEvent(events.GasEstimated, events.GasEstimatedPayload{
		Sender:  params.AccountAddress,
		FeeMist: result.FeeMist,
		FeeUSD:  result.FeeUSD,
	})

	return result, nil
}
