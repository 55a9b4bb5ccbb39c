// Package sui is a thin Sui JSON-RPC client with the lookups the transaction
// builder needs: objects, owned coins, the reference gas price and dev-inspect.
package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// DefaultRPCEndpoint is the public mainnet full node.
const DefaultRPCEndpoint = "https://fullnode.mainnet.sui.io:443"

type (
	// Client is a Sui JSON-RPC client over HTTP.
	Client struct {
		client   *http.Client
		endpoint string
		nextID   uint64
	}

	// ClientOption is a function that configures the Client.
	ClientOption func(*Client)
)

// NewClient creates a new Client instance.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: DefaultRPCEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.endpoint == "" {
		panic("rpc endpoint is empty")
	}
	return c
}

// WithRPCEndpoint sets the rpc endpoint.
func WithRPCEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the http client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// call sends a JSON-RPC request and decodes its result into v.
func (c *Client) call(ctx context.Context, method string, params []interface{}, v interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(request{
		Version: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s request", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to create %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to call %s", method)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to call %s: unexpected status code: %d", method, resp.StatusCode)
	}

	var res response
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	if res.Error != nil {
		return errors.Wrap(res.Error, method)
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(res.Result, v); err != nil {
		return errors.Wrapf(err, "failed to decode %s result", method)
	}

	return nil
}

// GetObject returns the object reference and owner of the given object id.
func (c *Client) GetObject(ctx context.Context, objectID string) (*ObjectData, error) {
	var res objectResponse
	err := c.call(ctx, "sui_getObject", []interface{}{
		objectID,
		map[string]bool{"showOwner": true, "showType": true},
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		if len(res.Error) > 0 && bytes.Contains(res.Error, []byte("deleted")) {
			return nil, ErrObjectDeleted
		}
		return nil, ErrObjectNotFound
	}

	return res.Data, nil
}

// GetCoins returns one page of the owner's coins of the given type.
// An empty cursor requests the first page.
func (c *Client) GetCoins(ctx context.Context, owner, coinType, cursor string, limit uint) (*CoinPage, error) {
	var cur interface{}
	if cursor != "" {
		cur = cursor
	}
	var lim interface{}
	if limit > 0 {
		lim = limit
	}

	var page CoinPage
	if err := c.call(ctx, "suix_getCoins", []interface{}{owner, coinType, cur, lim}, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// GetAllCoins walks every page of the owner's coins of the given type.
func (c *Client) GetAllCoins(ctx context.Context, owner, coinType string) ([]Coin, error) {
	var (
		coins  []Coin
		cursor string
	)
	for {
		page, err := c.GetCoins(ctx, owner, coinType, cursor, 0)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get coins")
		}
		coins = append(coins, page.Data...)
		if !page.HasNextPage || page.NextCursor == nil || *page.NextCursor == "" {
			return coins, nil
		}
		cursor = *page.NextCursor
	}
}

// GetBalance returns the total balance of the owner's coins of the given type.
func (c *Client) GetBalance(ctx context.Context, owner, coinType string, decimals uint8) (Balance, error) {
	var res struct {
		CoinType     string `json:"coinType"`
		TotalBalance Uint64 `json:"totalBalance"`
	}
	if err := c.call(ctx, "suix_getBalance", []interface{}{owner, coinType}, &res); err != nil {
		return Balance{}, errors.Wrap(err, "failed to get balance")
	}

	return NewBalance(uint64(res.TotalBalance), decimals), nil
}

// GetReferenceGasPrice returns the reference gas price of the current epoch in MIST.
func (c *Client) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price Uint64
	if err := c.call(ctx, "suix_getReferenceGasPrice", nil, &price); err != nil {
		return 0, errors.Wrap(ErrGetReferenceGasFee, err.Error())
	}
	return uint64(price), nil
}

// DevInspectTransactionBlock runs a base64 encoded transaction kind
// without committing it and returns its effects.
func (c *Client) DevInspectTransactionBlock(ctx context.Context, sender, txKindBase64 string) (*DevInspectResults, error) {
	var res DevInspectResults
	if err := c.call(ctx, "sui_devInspectTransactionBlock", []interface{}{sender, txKindBase64, nil, nil}, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, errors.Wrap(ErrDevInspectFailed, res.Error)
	}
	if res.Effects.Status.Status != "success" {
		return &res, errors.Wrap(ErrDevInspectFailed, res.Effects.Status.Error)
	}

	return &res, nil
}
