package aggregator

import (
	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type (
	// BuildTxParams is the input for compiling a quote into a transaction.
	BuildTxParams struct {
		Quote          *sevenk.QuoteResponse // Quote is the routed quote to execute.
		AccountAddress string                // AccountAddress is the sender. Leftovers and the output coin go here.
		Slippage       float64               // Slippage is a fraction in [0,1), e.g. 0.01 for 1%.
		Commission     Commission            // Commission is optional.
		DevInspect     bool                  // DevInspect builds for a dry run: the gas coin is never split.
		ExtendTx       *ExtendTx             // ExtendTx continues a caller's unfinished transaction. It is optional.
	}

	// Commission is the partner fee taken at settlement.
	Commission struct {
		Partner       string `json:"partner"`        // Partner is the fee recipient. Empty means no partner.
		CommissionBps uint16 `json:"commission_bps"` // CommissionBps is the fee in basis points.
	}

	// ExtendTx is an in-progress transaction the swap is appended to.
	// The result is neither transferred nor finalized.
	ExtendTx struct {
		Tx     *ptb.Builder
		CoinIn *ptb.Argument // CoinIn funds the swap instead of the sender's coins. It is optional.
	}

	// BuildResult is a compiled swap.
	BuildResult struct {
		ID          uuid.UUID
		Tx          *ptb.Builder
		Program     *ptb.ProgrammableTransaction // Program is nil when the transaction was extended.
		CoinOut     ptb.Argument                 // CoinOut is the merged output coin.
		MinReceived uint64
		Routes      []dex.Route
	}

	// GasEstimate is the dry run cost of a swap.
	GasEstimate struct {
		FeeMist int64   `json:"fee_mist"` // FeeMist is computation plus storage minus rebate.
		FeeSui  float64 `json:"fee_sui"`
		FeeUSD  float64 `json:"fee_usd"`
	}
)

// Validate collects every failed precondition of a build.
func (p BuildTxParams) Validate() error {
	var result *multierror.Error

	if p.AccountAddress == "" {
		result = multierror.Append(result, errors.New("sender address is required"))
	} else if !ptb.IsValidAddress(p.AccountAddress) {
		result = multierror.Append(result, errors.Errorf("invalid sender address %q", p.AccountAddress))
	}

	if p.Quote == nil || len(p.Quote.Routes) == 0 {
		result = multierror.Append(result, errors.New("invalid quote response: routes are required"))
	}

	if p.Commission.Partner != "" && !ptb.IsValidAddress(p.Commission.Partner) {
		result = multierror.Append(result, errors.Errorf("invalid commission partner address %q", p.Commission.Partner))
	}

	if p.Slippage < 0 || p.Slippage >= 1 {
		result = multierror.Append(result, errors.Errorf("slippage must be in [0, 1), got %v", p.Slippage))
	}

	if p.ExtendTx != nil {
		switch {
		case p.ExtendTx.Tx == nil:
			result = multierror.Append(result, errors.New("extended transaction is nil"))
		case p.ExtendTx.Tx.Finalized():
			result = multierror.Append(result, errors.New("extended transaction is already finalized"))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return swaperr.NewValidation(err)
	}

	return nil
}
