// Package websocketrpc is a Sui JSON-RPC client over WebSocket for event
// subscriptions.
package websocketrpc

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Predefined errors.
var (
	ErrClientClosed   = errors.New("websocket client closed")
	ErrRequestTimeout = errors.New("websocket request timed out")
)

type (
	// Client represents a WebSocket JSON-RPC client
	Client struct {
		conn    *websocket.Conn
		writeMu sync.Mutex
		log     logger

		nextReqID      uint64
		requestTimeout time.Duration
		pending        *pendingRequests
		subs           *subscriptions

		done      chan struct{}
		closeOnce sync.Once
	}

	// ClientOption is a function that configures the Client.
	ClientOption func(*Client)

	// EventHandler handles the result of one subscription notification.
	EventHandler func(result json.RawMessage) error

	logger interface {
		Debugf(format string, args ...interface{})
		Errorf(format string, args ...interface{})
	}
)

// NewClient dials the endpoint and starts reading from it.
func NewClient(ctx context.Context, endpoint string, opts ...ClientOption) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error dialing endpoint")
	}

	c := &Client{
		conn:           conn,
		log:            logrus.StandardLogger(),
		requestTimeout: 30 * time.Second,
		pending:        newPendingRequests(),
		subs:           newSubscriptions(),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.listen()

	return c, nil
}

// Done is closed when the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the WebSocket connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		err = c.conn.Close()
		close(c.done)
	})
	return err
}

// Call sends a JSON-RPC request and decodes its result into v.
func (c *Client) Call(ctx context.Context, method string, params []interface{}, v interface{}) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	if params == nil {
		params = []interface{}{}
	}
	id := atomic.AddUint64(&c.nextReqID, 1)
	wait := c.pending.Add(id)
	defer c.pending.Delete(id)

	c.writeMu.Lock()
	err := c.conn.WriteJSON(&Request{Version: "2.0", ID: id, Method: method, Params: params})
	c.writeMu.Unlock()
	if err != nil {
		return errors.Wrapf(err, "error sending %s request", method)
	}

	timer := time.NewTimer(c.requestTimeout)
	defer timer.Stop()

	select {
	case res := <-wait:
		if res.Error != nil {
			return errors.Wrap(res.Error, method)
		}
		if v == nil {
			return nil
		}
		return errors.Wrapf(json.Unmarshal(res.Result, v), "error decoding %s result", method)
	case <-timer.C:
		return errors.Wrap(ErrRequestTimeout, method)
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe subscribes with the given method and returns a subscription id.
// The handler is called from the read loop for every notification.
func (c *Client) Subscribe(ctx context.Context, method RequestType, params []interface{}, handler EventHandler) (int64, error) {
	var id int64
	if err := c.Call(ctx, string(method), params, &id); err != nil {
		return 0, errors.Wrap(err, "error subscribing to event")
	}
	c.subs.Set(id, handler)
	c.log.Debugf("subscribed: method=%s id=%d", method, id)
	return id, nil
}

// Unsubscribe cancels the given subscription.
func (c *Client) Unsubscribe(ctx context.Context, method RequestType, id int64) error {
	c.subs.Delete(id)

	var ok bool
	if err := c.Call(ctx, string(method), GetUnsubscribeRequestPayload(id), &ok); err != nil {
		return errors.Wrap(err, "error unsubscribing from event")
	}
	if !ok {
		return errors.Errorf("subscription %d was not active", id)
	}
	return nil
}

func (c *Client) listen() {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.log.Errorf("error reading JSON-RPC message: %v", err)
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Errorf("error decoding JSON-RPC message: %v", err)
			continue
		}

		if msg.ID != nil {
			c.pending.Resolve(&Response{ID: *msg.ID, Result: msg.Result, Error: msg.Error})
			continue
		}

		var n Notification
		if err := json.Unmarshal(data, &n); err != nil {
			c.log.Errorf("error decoding notification: %v", err)
			continue
		}
		handler, ok := c.subs.Get(n.Params.Subscription)
		if !ok {
			c.log.Debugf("notification for unknown subscription %d", n.Params.Subscription)
			continue
		}
		if err := handler(n.Params.Result); err != nil {
			c.log.Errorf("subscription %d handler: %v", n.Params.Subscription, err)
		}
	}
}
