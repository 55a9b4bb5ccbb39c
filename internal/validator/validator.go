// Package validator validates request structs declared with `validate` tags.
package validator

import (
	"errors"
	"net/url"
	"strings"

	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/gookit/validate"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation error")

// ValidationError holds the failed rules per field.
type ValidationError struct {
	Err    error
	Values url.Values
}

func init() {
	validate.Config(func(opt *validate.GlobalOption) {
		opt.StopOnError = false
		opt.SkipOnEmpty = true
	})

	validate.AddValidator("suiAddress", func(val interface{}) bool {
		s, ok := val.(string)
		return ok && ptb.IsValidAddress(s)
	})
	validate.AddValidator("coinType", func(val interface{}) bool {
		s, ok := val.(string)
		if !ok {
			return false
		}
		_, err := ptb.ParseStructTag(s)
		return err == nil
	})
	validate.AddGlobalMessages(map[string]string{
		"suiAddress": "{field} must be a valid Sui address",
		"coinType":   "{field} must be a fully qualified coin type",
	})
}

// NewValidationError wraps the failed rules.
func NewValidationError(values url.Values) *ValidationError {
	return &ValidationError{Err: ErrValidation, Values: values}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Values))
	for field, msgs := range e.Values {
		fields = append(fields, field+": "+strings.Join(msgs, ", "))
	}
	if len(fields) == 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + strings.Join(fields, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateStruct returns the failed rules of s, keyed by field name.
// It returns nil when s is valid.
func ValidateStruct(s interface{}) url.Values {
	v := validate.Struct(s)
	if v.Validate() {
		return nil
	}

	result := make(url.Values, len(v.Errors))
	for field, msgs := range v.Errors.All() {
		for _, msg := range msgs {
			result.Add(field, msg)
		}
	}
	return result
}
