package aggregator

import (
	"time"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/go-kit/log"
)

// WithLogger sets the service logger.
func WithLogger(logger log.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSwapFunc replaces the exchange adapter dispatch.
func WithSwapFunc(fn dex.SwapFunc) ServiceOption {
	return func(s *Service) {
		if fn == nil {
			panic("swap func can't be nil")
		}
		s.swap = fn
	}
}

// WithClock sets the time source used for config refreshes and deadlines.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSettlement overrides the settlement package and its shared objects.
func WithSettlement(settlement Settlement) ServiceOption {
	return func(s *Service) {
		if settlement.Package == "" || settlement.Config == "" || settlement.Vault == "" {
			panic("settlement package, config and vault are required")
		}
		s.settlement = settlement
	}
}
