package sevenk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/stretchr/testify/require"
)

func loadQuote(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return b
}

func TestQuoteResponse_Decode(t *testing.T) {
	var q sevenk.QuoteResponse
	require.NoError(t, json.Unmarshal(loadQuote(t, "quote_multi.json"), &q))

	require.Len(t, q.Swaps, 9)
	require.Len(t, q.Routes, 4)
	require.Equal(t, "3013523", q.ReturnAmountWithDecimal)
	require.Equal(t, sevenk.Cetus, q.Routes[0].Hops[0].Pool.Type)
	require.Nil(t, q.Swaps[2].Extra)

	tag, ok := q.Swaps[0].Extra.Get("pool_struct_tag", "poolStructTag")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(tag, "0x1eabed72"))

	lookup := q.HopLookup()
	require.Len(t, lookup, 7)
	require.Equal(t, sevenk.Stsui, lookup["0x1adb343ab351458e151bc392fbf1558b3332467f23bda45ae67cd355a57fd5f5"].Pool.Type)
}

func TestExtra_UnmarshalJSON(t *testing.T) {
	var e sevenk.Extra
	require.NoError(t, json.Unmarshal([]byte(`{"lot_size":100000000,"is_x":true,"fee":"3000","none":null}`), &e))
	require.Equal(t, sevenk.Extra{"lot_size": "100000000", "is_x": "true", "fee": "3000"}, e)

	_, ok := e.Get("none", "missing")
	require.False(t, ok)

	require.Error(t, json.Unmarshal([]byte(`[1]`), &e))
}

func TestSource(t *testing.T) {
	require.Len(t, sevenk.AllSources(), 15)
	for _, s := range sevenk.AllSources() {
		parsed, err := sevenk.ParseSource(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}

	_, err := sevenk.ParseSource("uniswap")
	require.Error(t, err)

	var pool sevenk.SorPool
	require.Error(t, json.Unmarshal([]byte(`{"type":"uniswap","allTokens":[]}`), &pool))

	require.Equal(t, "cetus,kriya_v3", sevenk.JoinSources([]sevenk.Source{sevenk.Cetus, sevenk.KriyaV3}))
}

func TestClient_Quote(t *testing.T) {
	quote := loadQuote(t, "quote_single.json")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "1000000000", q.Get("amount"))
		require.Equal(t, utils.SuiFullType, q.Get("from"))
		require.Equal(t, "obric,cetus", q.Get("sources"))
		require.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", q.Get("excluded_pools"))
		require.Empty(t, q.Get("target_pools"))
		w.Write(quote)
	}))
	defer srv.Close()

	c := sevenk.NewClient(sevenk.WithAPIURL(srv.URL + "/"))
	resp, err := c.Quote(context.Background(), sevenk.QuoteParams{
		TokenIn:       "0x2::sui::SUI",
		TokenOut:      utils.NativeUSDCType,
		AmountIn:      "1000000000",
		Sources:       []sevenk.Source{sevenk.Obric, sevenk.Cetus},
		ExcludedPools: []string{"0xabc"},
	})
	require.NoError(t, err)
	require.Equal(t, "3039844", resp.ReturnAmountWithDecimal)

	_, err = c.Quote(context.Background(), sevenk.QuoteParams{TokenIn: "0x2::sui::SUI"})
	require.Error(t, err)
}

func TestClient_Quote_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Len(t, strings.Split(r.URL.Query().Get("sources"), ","), 15)
		http.Error(w, "no route", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := sevenk.NewClient(sevenk.WithAPIURL(srv.URL))
	_, err := c.Quote(context.Background(), sevenk.QuoteParams{TokenIn: "0x2::sui::SUI", TokenOut: utils.NativeUSDCType, AmountIn: "1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
}

func TestClient_Prices(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		require.Equal(t, "/price", r.URL.Path)

		if r.Method == http.MethodGet {
			id := r.URL.Query().Get("ids")
			require.Equal(t, utils.NativeUSDCType, r.URL.Query().Get("vsCoin"))
			json.NewEncoder(w).Encode(map[string]interface{}{id: map[string]interface{}{"price": 3.5}})
			return
		}

		var req struct {
			IDs    []string `json:"ids"`
			VsCoin string   `json:"vsCoin"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.LessOrEqual(t, len(req.IDs), sevenk.MaxPriceIDsPerRequest)

		resp := map[string]interface{}{}
		for _, id := range req.IDs {
			if id == "unknown" {
				continue
			}
			resp[id] = map[string]interface{}{"price": 1.25}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := sevenk.NewClient(sevenk.WithPricesURL(srv.URL))

	t.Run("single", func(t *testing.T) {
		p, err := c.SuiPrice(context.Background())
		require.NoError(t, err)
		require.Equal(t, 3.5, p)
	})

	t.Run("batched", func(t *testing.T) {
		atomic.StoreInt32(&requests, 0)

		ids := make([]string, 0, 620)
		for i := 0; i < 620; i++ {
			ids = append(ids, "0x2::coin"+strings.Repeat("x", i%7)+"::C"+string(rune('a'+i%26)))
		}
		ids[0] = "unknown"

		prices, err := c.Prices(context.Background(), ids, "")
		require.NoError(t, err)
		require.EqualValues(t, 5, atomic.LoadInt32(&requests))
		require.Equal(t, 0.0, prices["unknown"])
		require.Equal(t, 1.25, prices[ids[1]])
	})
}

func TestClient_SwapHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trading-history", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "0x1", q.Get("addr"))
		require.Equal(t, "0", q.Get("offset"))
		require.Equal(t, "10", q.Get("limit"))
		require.False(t, q.Has("token_pair"))
		w.Write([]byte(`{"count":1,"history":[{"digest":"abc","timestamp":"1700000000","coin_in":"0x2::sui::SUI","coin_out":"usdc","amount_in":"1","amount_out":"3"}]}`))
	}))
	defer srv.Close()

	c := sevenk.NewClient(sevenk.WithStatsURL(srv.URL))
	h, err := c.SwapHistory(context.Background(), sevenk.HistoryParams{Owner: "0x1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, h.Count)
	require.Equal(t, "abc", h.History[0].Digest)

	_, err = c.SwapHistory(context.Background(), sevenk.HistoryParams{})
	require.Error(t, err)
}

func TestClient_FetchConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/config", r.URL.Path)
		w.Write([]byte(`{"cetus":{"name":"Cetus","package":"0xcafe","globalConfig":"0xbeef"},"deepbook_v3":{"name":"Deepbook V3","package":"","sponsor":"0x1","sponsorFund":"0x2"}}`))
	}))
	defer srv.Close()

	cfg, err := sevenk.NewClient(sevenk.WithAPIURL(srv.URL)).FetchConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0xcafe", cfg.Cetus.Package)
	require.Equal(t, "0xbeef", cfg.Cetus.GlobalConfig)
	require.Equal(t, "0x2", cfg.DeepbookV3.SponsorFund)
}
