// Package swaperr defines the error taxonomy shared by the transaction
// compiler: validation, object resolution, missing adapter parameters,
// malformed numbers and insufficient funds.
package swaperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Predefined sentinel errors. Every typed error below matches one of them with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrResolution          = errors.New("resolution error")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrParse               = errors.New("parse error")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type (
	// ValidationError is returned when a build request fails its preconditions.
	ValidationError struct {
		Err error
	}

	// ResolutionError is returned when an on-chain object or a pool can not be resolved.
	ResolutionError struct {
		Object string // Object is the id that could not be resolved.
		Err    error
	}

	// MissingParameterError is returned by adapters when a required extra field is absent.
	MissingParameterError struct {
		Field string
	}

	// ParseError is returned for non-numeric or malformed values.
	ParseError struct {
		Value string
		Err   error
	}

	// InsufficientBalanceError is returned when the sender's coins do not cover the requested amount.
	InsufficientBalanceError struct {
		CoinType  string
		Required  uint64
		Available uint64
	}

	// HopError annotates an error with the route and hop it happened in.
	HopError struct {
		Route  int
		Hop    int
		Source string
		Err    error
	}
)

// NewValidation wraps err as a ValidationError.
func NewValidation(err error) error {
	return &ValidationError{Err: err}
}

// Validationf returns a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewResolution returns a ResolutionError for the given object id.
func NewResolution(object string, err error) error {
	return &ResolutionError{Object: object, Err: err}
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: failed to resolve %s: %v", ErrResolution, e.Object, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// NewMissingParameter returns a MissingParameterError for the given field.
func NewMissingParameter(field string) error {
	return &MissingParameterError{Field: field}
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParameter, e.Field)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// NewParse returns a ParseError for the given value.
func NewParse(value string, err error) error {
	return &ParseError{Value: value, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrParse, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: %s: required %d, available %d", ErrInsufficientBalance, e.CoinType, e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// WithHop annotates err with the route and hop indexes and the pool source.
// A nil error stays nil.
func WithHop(err error, route, hop int, source string) error {
	if err == nil {
		return nil
	}
	return &HopError{Route: route, Hop: hop, Source: source, Err: err}
}

func (e *HopError) Error() string {
	return fmt.Sprintf("route %d, hop %d (%s): %v", e.Route, e.Hop, e.Source, e.Err)
}

func (e *HopError) Unwrap() error { return e.Err }
