package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/easypmnt/sui-swap-api/aggregator"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/internal/validator"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/go-kit/kit/endpoint"
)

type (
	// Endpoints is a collection of all the endpoints that comprise a server.
	Endpoints struct {
		GetQuote       endpoint.Endpoint
		BuildTx        endpoint.Endpoint
		EstimateGasFee endpoint.Endpoint
		GetPrices      endpoint.Endpoint
		GetHistory     endpoint.Endpoint
		GetConfig      endpoint.Endpoint
	}

	Config struct {
		DefaultSlippage float64               // DefaultSlippage applies when a build request has none.
		Commission      aggregator.Commission // Commission applies when a build request names no partner.
		Metrics         *Metrics              // Metrics instruments every endpoint. It is optional.
		Now             func() time.Time
	}

	swapService interface {
		BuildTx(ctx context.Context, params aggregator.BuildTxParams) (*aggregator.BuildResult, error)
		EstimateGasFee(ctx context.Context, params aggregator.BuildTxParams, suiPrice float64) (aggregator.GasEstimate, error)
	}

	marketClient interface {
		Quote(ctx context.Context, params sevenk.QuoteParams) (*sevenk.QuoteResponse, error)
		Prices(ctx context.Context, ids []string, vsCoin string) (map[string]float64, error)
		SuiPrice(ctx context.Context) (float64, error)
		SwapHistory(ctx context.Context, params sevenk.HistoryParams) (*sevenk.TradingHistory, error)
	}

	configSource interface {
		GetOrRefresh(ctx context.Context, now time.Time) dexconfig.Config
	}
)

// MakeEndpoints returns an Endpoints struct where each field is an endpoint
// that comprises the server.
func MakeEndpoints(svc swapService, market marketClient, configs configSource, cfg Config) Endpoints {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := Endpoints{
		GetQuote:       makeGetQuoteEndpoint(market),
		BuildTx:        makeBuildTxEndpoint(svc, cfg),
		EstimateGasFee: makeEstimateGasFeeEndpoint(svc, market, cfg),
		GetPrices:      makeGetPricesEndpoint(market),
		GetHistory:     makeGetHistoryEndpoint(market),
		GetConfig:      makeGetConfigEndpoint(configs, cfg),
	}

	if cfg.Metrics != nil {
		e.GetQuote = cfg.Metrics.Instrument("get_quote")(e.GetQuote)
		e.BuildTx = cfg.Metrics.Instrument("build_tx")(e.BuildTx)
		e.EstimateGasFee = cfg.Metrics.Instrument("estimate_gas_fee")(e.EstimateGasFee)
		e.GetPrices = cfg.Metrics.Instrument("get_prices")(e.GetPrices)
		e.GetHistory = cfg.Metrics.Instrument("get_history")(e.GetHistory)
		e.GetConfig = cfg.Metrics.Instrument("get_config")(e.GetConfig)
	}

	return e
}

// GetQuoteRequest is the request type for the GetQuote method.
type GetQuoteRequest struct {
	TokenIn       string `json:"token_in" validate:"required|coinType" label:"Token in"`
	TokenOut      string `json:"token_out" validate:"required|coinType" label:"Token out"`
	AmountIn      string `json:"amount_in" validate:"required|regex:^[1-9][0-9]*$" label:"Amount in"`
	Sources       string `json:"sources,omitempty" validate:"-" label:"Sources"`
	TargetPools   string `json:"target_pools,omitempty" validate:"-" label:"Target pools"`
	ExcludedPools string `json:"excluded_pools,omitempty" validate:"-" label:"Excluded pools"`
}

// makeGetQuoteEndpoint returns an endpoint function for the GetQuote method.
func makeGetQuoteEndpoint(market marketClient) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(GetQuoteRequest)
		if !ok {
			return nil, ErrInvalidRequest
		}
		if v := validator.ValidateStruct(req); len(v) > 0 {
			return nil, validator.NewValidationError(v)
		}

		var sources []sevenk.Source
		for _, name := range splitList(req.Sources) {
			s, err := sevenk.ParseSource(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
			}
			sources = append(sources, s)
		}

		return market.Quote(ctx, sevenk.QuoteParams{
			TokenIn:       req.TokenIn,
			TokenOut:      req.TokenOut,
			AmountIn:      req.AmountIn,
			Sources:       sources,
			TargetPools:   splitList(req.TargetPools),
			ExcludedPools: splitList(req.ExcludedPools),
		})
	}
}

// BuildTxRequest is the request type for the BuildTx and EstimateGasFee methods.
type BuildTxRequest struct {
	Quote         *sevenk.QuoteResponse `json:"quote" validate:"-"`
	Account       string                `json:"account" validate:"required|suiAddress" label:"Account"`
	Slippage      *float64              `json:"slippage,omitempty" validate:"-" label:"Slippage"`
	Partner       string                `json:"partner,omitempty" validate:"suiAddress" label:"Partner"`
	CommissionBps uint16                `json:"commission_bps,omitempty" validate:"-" label:"Commission"`
	DevInspect    bool                  `json:"dev_inspect,omitempty" validate:"-"`
}

// BuildTxResponse is the response type for the BuildTx method.
type BuildTxResponse struct {
	BuildID     string `json:"build_id"`
	Transaction string `json:"transaction"` // Transaction is the base64 BCS transaction kind.
	MinReceived string `json:"min_received"`
	Routes      int    `json:"routes"`
}

func (req BuildTxRequest) params(cfg Config) aggregator.BuildTxParams {
	params := aggregator.BuildTxParams{
		Quote:          req.Quote,
		AccountAddress: req.Account,
		Slippage:       cfg.DefaultSlippage,
		Commission:     cfg.Commission,
		DevInspect:     req.DevInspect,
	}
	if req.Slippage != nil {
		params.Slippage = *req.Slippage
	}
	if req.Partner != "" {
		params.Commission = aggregator.Commission{Partner: req.Partner, CommissionBps: req.CommissionBps}
	}
	return params
}

// makeBuildTxEndpoint returns an endpoint function for the BuildTx method.
func makeBuildTxEndpoint(svc swapService, cfg Config) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(BuildTxRequest)
		if !ok {
			return nil, ErrInvalidRequest
		}
		if v := validator.ValidateStruct(req); len(v) > 0 {
			return nil, validator.NewValidationError(v)
		}

		result, err := svc.BuildTx(ctx, req.params(cfg))
		if err != nil {
			return nil, err
		}

		tx, err := result.Program.EncodeBase64()
		if err != nil {
			return nil, fmt.Errorf("failed to encode transaction: %w", err)
		}

		return BuildTxResponse{
			BuildID:     result.ID.String(),
			Transaction: tx,
			MinReceived: strconv.FormatUint(result.MinReceived, 10),
			Routes:      len(result.Routes),
		}, nil
	}
}

// makeEstimateGasFeeEndpoint returns an endpoint function for the EstimateGasFee method.
func makeEstimateGasFeeEndpoint(svc swapService, market marketClient, cfg Config) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(BuildTxRequest)
		if !ok {
			return nil, ErrInvalidRequest
		}
		if v := validator.ValidateStruct(req); len(v) > 0 {
			return nil, validator.NewValidationError(v)
		}

		suiPrice, err := market.SuiPrice(ctx)
		if err != nil {
			return nil, err
		}

		return svc.EstimateGasFee(ctx, req.params(cfg), suiPrice)
	}
}

// GetPricesRequest is the request type for the GetPrices method.
type GetPricesRequest struct {
	IDs    []string `json:"ids" validate:"required" label:"Coin types"`
	VsCoin string   `json:"vs_coin,omitempty" validate:"coinType" label:"Quote coin"`
}

// makeGetPricesEndpoint returns an endpoint function for the GetPrices method.
func makeGetPricesEndpoint(market marketClient) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(GetPricesRequest)
		if !ok {
			return nil, ErrInvalidRequest
		}
		if v := validator.ValidateStruct(req); len(v) > 0 {
			return nil, validator.NewValidationError(v)
		}
		if len(req.IDs) > sevenk.MaxPriceIDs {
			return nil, fmt.Errorf("%w: at most %d coin types", ErrInvalidParameter, sevenk.MaxPriceIDs)
		}

		return market.Prices(ctx, req.IDs, req.VsCoin)
	}
}

// GetHistoryRequest is the request type for the GetHistory method.
type GetHistoryRequest struct {
	Address   string `json:"-" validate:"required|suiAddress" label:"Address"`
	Offset    uint64 `json:"-" validate:"-"`
	Limit     uint64 `json:"-" validate:"-"`
	TokenPair string `json:"-" validate:"-"`
}

// makeGetHistoryEndpoint returns an endpoint function for the GetHistory method.
func makeGetHistoryEndpoint(market marketClient) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(GetHistoryRequest)
		if !ok {
			return nil, ErrInvalidRequest
		}
		if v := validator.ValidateStruct(req); len(v) > 0 {
			return nil, validator.NewValidationError(v)
		}

		return market.SwapHistory(ctx, sevenk.HistoryParams{
			Owner:     req.Address,
			Offset:    req.Offset,
			Limit:     req.Limit,
			TokenPair: req.TokenPair,
		})
	}
}

// makeGetConfigEndpoint returns an endpoint function for the GetConfig method.
func makeGetConfigEndpoint(configs configSource, cfg Config) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return configs.GetOrRefresh(ctx, cfg.Now()), nil
	}
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
