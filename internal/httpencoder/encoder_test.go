package httpencoder_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easypmnt/sui-swap-api/internal/httpencoder"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func TestEncodeResponse(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpencoder.EncodeResponse(context.Background(), w, map[string]int{"routes": 4}))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"data":{"routes":4}}`, w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, httpencoder.EncodeResponse(context.Background(), w, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestEncodeError(t *testing.T) {
	enc := httpencoder.EncodeError(log.NewNopLogger(), nil)

	w := httptest.NewRecorder()
	enc(context.Background(), context.DeadlineExceeded, w)
	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = httptest.NewRecorder()
	enc(context.Background(), errors.New("boom"), w)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error httpencoder.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "boom", body.Error.Message)
}
