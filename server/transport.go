package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/easypmnt/sui-swap-api/internal/httpencoder"
	"github.com/easypmnt/sui-swap-api/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
)

type (
	logger interface {
		Log(keyvals ...interface{}) error
	}
)

// MakeHTTPHandler returns an http.Handler that can be used to serve the API.
// The metrics handler is mounted at /metrics when it is not nil.
func MakeHTTPHandler(e Endpoints, log logger, metrics http.Handler) http.Handler {
	r := chi.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(log)),
		httptransport.ServerErrorEncoder(httpencoder.EncodeError(log, codeAndMessageFrom)),
	}

	r.Get("/quote", httptransport.NewServer(
		e.GetQuote,
		decodeGetQuoteRequest,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	r.Post("/build", httptransport.NewServer(
		e.BuildTx,
		decodeBuildTxRequest,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	r.Post("/estimate-gas", httptransport.NewServer(
		e.EstimateGasFee,
		decodeBuildTxRequest,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	r.Get("/prices", httptransport.NewServer(
		e.GetPrices,
		decodeGetPricesRequest,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	r.Get("/history/{address}", httptransport.NewServer(
		e.GetHistory,
		decodeGetHistoryRequest,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	r.Get("/config", httptransport.NewServer(
		e.GetConfig,
		httptransport.NopRequestDecoder,
		httpencoder.EncodeResponse,
		options...,
	).ServeHTTP)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}

// returns http error code by error type
func codeAndMessageFrom(err error) (int, interface{}) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return http.StatusPreconditionFailed, verr.Values
	}
	if resp := NewError(err); resp != nil {
		return resp.Code, resp
	}

	return httpencoder.CodeAndMessageFrom(err)
}

// decodeGetQuoteRequest is a transport/http.DecodeRequestFunc that decodes
// the quote parameters from the query string.
func decodeGetQuoteRequest(_ context.Context, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	return GetQuoteRequest{
		TokenIn:       q.Get("token_in"),
		TokenOut:      q.Get("token_out"),
		AmountIn:      q.Get("amount_in"),
		Sources:       q.Get("sources"),
		TargetPools:   q.Get("target_pools"),
		ExcludedPools: q.Get("excluded_pools"),
	}, nil
}

// decodeBuildTxRequest is a transport/http.DecodeRequestFunc that decodes a
// JSON-encoded request from the HTTP request body.
func decodeBuildTxRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req BuildTxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	return req, nil
}

func decodeGetPricesRequest(_ context.Context, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	return GetPricesRequest{
		IDs:    splitList(q.Get("ids")),
		VsCoin: q.Get("vs_coin"),
	}, nil
}

// decodeGetHistoryRequest reads the account from the path and paging from
// the query string.
func decodeGetHistoryRequest(_ context.Context, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	req := GetHistoryRequest{
		Address:   chi.URLParam(r, "address"),
		TokenPair: q.Get("token_pair"),
	}

	var err error
	if s := q.Get("offset"); s != "" {
		if req.Offset, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: offset: %v", ErrInvalidParameter, err)
		}
	}
	if s := q.Get("limit"); s != "" {
		if req.Limit, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: limit: %v", ErrInvalidParameter, err)
		}
	}

	return req, nil
}
