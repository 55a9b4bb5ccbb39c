package websocketrpc

import "time"

// WithLogger sets the logger for the client.
func WithLogger(l logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRequestTimeout sets how long a request waits for its response.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}
