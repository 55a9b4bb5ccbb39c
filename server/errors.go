package server

import (
	"errors"
	"net/http"

	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/easypmnt/sui-swap-api/swaperr"
)

// Predefined http encoder errors.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Error is the error body of a failed request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewError maps a known error to its response, nil otherwise.
func NewError(err error) *Error {
	var code int
	var kind string

	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidParameter):
		code, kind = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, swaperr.ErrValidation):
		code, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, swaperr.ErrMissingParameter):
		code, kind = http.StatusUnprocessableEntity, "missing_parameter"
	case errors.Is(err, swaperr.ErrParse):
		code, kind = http.StatusUnprocessableEntity, "parse"
	case errors.Is(err, swaperr.ErrResolution):
		code, kind = http.StatusNotFound, "resolution"
	case errors.Is(err, swaperr.ErrInsufficientBalance), errors.Is(err, sui.ErrNoCoinsFound):
		code, kind = http.StatusConflict, "insufficient_balance"
	case errors.Is(err, sui.ErrDevInspectFailed):
		code, kind = http.StatusUnprocessableEntity, "dev_inspect"
	default:
		return nil
	}

	return &Error{Code: code, Kind: kind, Message: err.Error()}
}
