package websocketrpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easypmnt/sui-swap-api/events"
	"github.com/easypmnt/sui-swap-api/websocketrpc"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const settlePkg = "0x7ea6e27ad7af6f3b8671d59df1aaebd7c03dddab893e52a714227b2f4fe91519"

const swapNotification = `{
	"jsonrpc": "2.0",
	"method": "suix_subscribeEvent",
	"params": {
		"subscription": 42,
		"result": {
			"id": {"txDigest": "9xYz", "eventSeq": "0"},
			"packageId": "` + settlePkg + `",
			"transactionModule": "settle",
			"sender": "0xabc",
			"type": "` + settlePkg + `::settle::Swap",
			"parsedJson": {
				"coin_in": {"name": "0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"},
				"coin_out": "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC",
				"amount_in": "1000000000",
				"amount_out": "3039844",
				"partner": null,
				"commission": "0"
			},
			"timestampMs": "1700000000000"
		}
	}
}`

// newNode starts a fake full node. It acknowledges subscriptions with id 42,
// then pushes one swap event.
func newNode(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var req websocketrpc.Request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			switch req.Method {
			case string(websocketrpc.SubscribeEvent):
				filter := req.Params[0].(map[string]interface{})
				if filter["MoveEventType"] != settlePkg+"::settle::Swap" {
					conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "error": map[string]interface{}{"code": -32602, "message": "bad filter"}})
					continue
				}
				conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": 42})
				// let the client register the handler before the first notification
				time.Sleep(100 * time.Millisecond)
				conn.WriteMessage(websocket.TextMessage, []byte(swapNotification))
			case string(websocketrpc.UnsubscribeEvent):
				conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": true})
			default:
				conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "error": map[string]interface{}{"code": -32601, "message": "method not found"}})
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocketrpc.Client {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	c, err := websocketrpc.NewClient(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"),
		websocketrpc.WithLogger(log),
		websocketrpc.WithRequestTimeout(time.Second),
	)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_WatchSettlements(t *testing.T) {
	c := dial(t, newNode(t))
	ctx := context.Background()

	got := make(chan events.SwapSettledPayload, 1)
	id, err := c.WatchSettlements(ctx, settlePkg, func(name events.EventName, payload ...interface{}) {
		require.Equal(t, events.SwapSettled, name)
		got <- payload[0].(events.SwapSettledPayload)
	})
	require.NoError(t, err)
	require.EqualValues(t, 42, id)

	select {
	case p := <-got:
		require.Equal(t, "9xYz", p.Digest)
		require.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI", p.CoinIn)
		require.Equal(t, "3039844", p.AmountOut)
		require.Empty(t, p.Partner)
		require.EqualValues(t, 1700000000000, p.Timestamp)
	case <-time.After(2 * time.Second):
		t.Fatal("swap event not delivered")
	}

	require.NoError(t, c.Unsubscribe(ctx, websocketrpc.UnsubscribeEvent, id))
}

func TestClient_Errors(t *testing.T) {
	c := dial(t, newNode(t))
	ctx := context.Background()

	_, err := c.Subscribe(ctx, websocketrpc.SubscribeEvent, websocketrpc.GetEventSubscribeRequestPayload("0x1::m::E"), func(json.RawMessage) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad filter")

	err = c.Call(ctx, "sui_unknown", nil, nil)
	require.Contains(t, err.Error(), "method not found")

	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Call(ctx, "sui_unknown", nil, nil), websocketrpc.ErrClientClosed)
}
