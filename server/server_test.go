package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easypmnt/sui-swap-api/aggregator"
	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/server"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	account = "0x39a3c55742c0e011b6f65548e73cf589e1ae5e82dbfab449ca57f24c3bcd9514"
	partner = "0x0f8f2d0b7e9b8d9b1c3e6f0e9f4f8a7c1a4e0c3b7e2d9a6b5c4d3e2f1a0b9c8d"
	sui     = "0x2::sui::SUI"
	usdc    = "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC"
)

type fakeSwap struct {
	params aggregator.BuildTxParams
	price  float64
	err    error
}

func (f *fakeSwap) BuildTx(_ context.Context, params aggregator.BuildTxParams) (*aggregator.BuildResult, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	program, err := ptb.NewBuilder().Finalize()
	if err != nil {
		return nil, err
	}
	return &aggregator.BuildResult{
		ID:          uuid.MustParse("6f1c1f5e-4bde-4bd4-9f3a-0c6c4a3f1b2e"),
		Program:     program,
		MinReceived: 3009445,
		Routes:      make([]dex.Route, 2),
	}, nil
}

func (f *fakeSwap) EstimateGasFee(_ context.Context, params aggregator.BuildTxParams, suiPrice float64) (aggregator.GasEstimate, error) {
	f.params, f.price = params, suiPrice
	return aggregator.GasEstimate{FeeMist: 2500000, FeeSui: 0.0025, FeeUSD: 0.0025 * suiPrice}, f.err
}

type fakeMarket struct {
	quote   sevenk.QuoteParams
	history sevenk.HistoryParams
}

func (m *fakeMarket) Quote(_ context.Context, params sevenk.QuoteParams) (*sevenk.QuoteResponse, error) {
	m.quote = params
	return &sevenk.QuoteResponse{TokenIn: params.TokenIn, TokenOut: params.TokenOut, ReturnAmountWithDecimal: "3039844"}, nil
}

func (m *fakeMarket) Prices(_ context.Context, ids []string, _ string) (map[string]float64, error) {
	res := make(map[string]float64, len(ids))
	for _, id := range ids {
		res[id] = 1
	}
	return res, nil
}

func (m *fakeMarket) SuiPrice(context.Context) (float64, error) { return 4, nil }

func (m *fakeMarket) SwapHistory(_ context.Context, params sevenk.HistoryParams) (*sevenk.TradingHistory, error) {
	m.history = params
	return &sevenk.TradingHistory{Count: 1, History: []sevenk.HistoryEntry{{Digest: "9xYz"}}}, nil
}

type staticConfig struct{}

func (staticConfig) GetOrRefresh(context.Context, time.Time) dexconfig.Config { return dexconfig.Default() }

func newServer(t *testing.T, svc *fakeSwap, market *fakeMarket) (*httptest.Server, *server.Metrics) {
	t.Helper()
	metrics := server.NewMetrics("test")
	h := server.MakeHTTPHandler(
		server.MakeEndpoints(svc, market, staticConfig{}, server.Config{
			DefaultSlippage: 0.01,
			Commission:      aggregator.Commission{Partner: partner, CommissionBps: 10},
			Metrics:         metrics,
		}),
		log.NewNopLogger(),
		metrics.Handler(),
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, metrics
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&struct {
		Data interface{} `json:"data"`
	}{Data: v}))
}

func TestBuildTx(t *testing.T) {
	svc, market := &fakeSwap{}, &fakeMarket{}
	srv, _ := newServer(t, svc, market)

	t.Run("defaults", func(t *testing.T) {
		body := `{"quote":{"tokenIn":"` + sui + `","tokenOut":"` + usdc + `","routes":[{}]},"account":"` + account + `"}`
		resp, err := http.Post(srv.URL+"/build", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res server.BuildTxResponse
		decode(t, resp, &res)
		require.Equal(t, "6f1c1f5e-4bde-4bd4-9f3a-0c6c4a3f1b2e", res.BuildID)
		require.Equal(t, "3009445", res.MinReceived)
		require.Equal(t, 2, res.Routes)
		require.Equal(t, "AAAA", res.Transaction)

		require.Equal(t, 0.01, svc.params.Slippage)
		require.Equal(t, partner, svc.params.Commission.Partner)
		require.EqualValues(t, 10, svc.params.Commission.CommissionBps)
	})

	t.Run("overrides", func(t *testing.T) {
		body := `{"quote":{"routes":[{}]},"account":"` + account + `","slippage":0.05,"partner":"` + account + `","commission_bps":25}`
		resp, err := http.Post(srv.URL+"/build", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.Equal(t, 0.05, svc.params.Slippage)
		require.Equal(t, account, svc.params.Commission.Partner)
		require.EqualValues(t, 25, svc.params.Commission.CommissionBps)
	})

	t.Run("invalid account", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/build", "application/json", strings.NewReader(`{"account":"alice"}`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/build", "application/json", strings.NewReader(`{`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBuildTx_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", swaperr.Validationf("slippage must be in [0, 1)"), http.StatusBadRequest},
		{"missing parameter", swaperr.NewMissingParameter("config.cetus.globalConfig"), http.StatusUnprocessableEntity},
		{"unknown pool", swaperr.NewResolution("0xaa", aggregator.ErrPoolNotFound), http.StatusNotFound},
		{"hop failure", swaperr.WithHop(swaperr.NewParse("x", io.EOF), 1, 2, "cetus"), http.StatusUnprocessableEntity},
		{"insufficient balance", &swaperr.InsufficientBalanceError{CoinType: usdc, Required: 10, Available: 1}, http.StatusConflict},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, &fakeSwap{err: tt.err}, &fakeMarket{})
			body := `{"quote":{"routes":[{}]},"account":"` + account + `"}`
			resp, err := http.Post(srv.URL+"/build", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestEstimateGasFee(t *testing.T) {
	svc := &fakeSwap{}
	srv, _ := newServer(t, svc, &fakeMarket{})

	body := `{"quote":{"routes":[{}]},"account":"` + account + `"}`
	resp, err := http.Post(srv.URL+"/estimate-gas", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res aggregator.GasEstimate
	decode(t, resp, &res)
	require.EqualValues(t, 2500000, res.FeeMist)
	require.InDelta(t, 0.01, res.FeeUSD, 1e-12)
	require.Equal(t, 4.0, svc.price)
}

func TestQueries(t *testing.T) {
	market := &fakeMarket{}
	srv, metrics := newServer(t, &fakeSwap{}, market)

	t.Run("quote", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/quote?token_in=" + sui + "&token_out=" + usdc + "&amount_in=1000000000&sources=cetus,turbos&excluded_pools=0xaa")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res sevenk.QuoteResponse
		decode(t, resp, &res)
		require.Equal(t, "3039844", res.ReturnAmountWithDecimal)
		require.Len(t, market.quote.Sources, 2)
		require.Equal(t, []string{"0xaa"}, market.quote.ExcludedPools)
	})

	t.Run("quote with unknown source", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/quote?token_in=" + sui + "&token_out=" + usdc + "&amount_in=1&sources=uniswap")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("quote without amount", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/quote?token_in=" + sui + "&token_out=" + usdc)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	})

	t.Run("prices", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/prices?ids=" + sui + "," + usdc)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res map[string]float64
		decode(t, resp, &res)
		require.Len(t, res, 2)
	})

	t.Run("history", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/history/" + account + "?offset=20&limit=5")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res sevenk.TradingHistory
		decode(t, resp, &res)
		require.EqualValues(t, 1, res.Count)
		require.EqualValues(t, 20, market.history.Offset)
		require.EqualValues(t, 5, market.history.Limit)

		resp, err = http.Get(srv.URL + "/history/" + account + "?limit=-1")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("config", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/config")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dexconfig.Config
		decode(t, resp, &res)
		require.Equal(t, dexconfig.Default().Cetus.Package, res.Cetus.Package)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(b), `test_http_requests_total{endpoint="get_quote",status="ok"} 1`)
		require.NotNil(t, metrics.Requests)
	})
}
