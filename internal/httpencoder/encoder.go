// Package httpencoder encodes endpoint responses and errors as JSON.
package httpencoder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
)

type (
	// Response is the envelope of every response body.
	Response struct {
		Data  interface{} `json:"data,omitempty"`
		Error interface{} `json:"error,omitempty"`
	}

	// ErrorResponse is the default error body.
	ErrorResponse struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	logger interface {
		Log(keyvals ...interface{}) error
	}

	// CodeAndMessageFunc maps an error to a status code and a body.
	CodeAndMessageFunc func(err error) (int, interface{})
)

// EncodeResponse is a transport/http.EncodeResponseFunc that wraps the
// response in the data envelope. A nil response gives 204 No Content.
func EncodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	if response == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	return json.NewEncoder(w).Encode(Response{Data: response})
}

// EncodeError returns a transport/http.ErrorEncoder using fn to pick the
// status code. Server errors are logged.
func EncodeError(log logger, fn CodeAndMessageFunc) httptransport.ErrorEncoder {
	if fn == nil {
		fn = CodeAndMessageFrom
	}

	return func(_ context.Context, err error, w http.ResponseWriter) {
		code, msg := fn(err)
		if code >= http.StatusInternalServerError && log != nil {
			log.Log("msg", "request failed", "code", code, "error", err)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(Response{Error: msg})
	}
}

// CodeAndMessageFrom is the fallback error mapping.
func CodeAndMessageFrom(err error) (int, interface{}) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		code = http.StatusRequestTimeout
	}

	return code, ErrorResponse{Code: code, Message: err.Error()}
}
