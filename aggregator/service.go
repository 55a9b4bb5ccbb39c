// Package aggregator compiles a routed quote into one Sui programmable
// transaction: it funds every route, runs the hops through the exchange
// adapters, merges the outputs and settles them with the minimum received
// bound and the partner commission.
package aggregator

import (
	"context"
	"time"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type (
	// Service builds swap transactions.
	Service struct {
		chain   chainClient
		configs configSource
		swap    dex.SwapFunc
		logger  log.Logger
		now     func() time.Time

		settlement Settlement
	}

	// ServiceOption is the type for service options that can be passed to NewService function.
	ServiceOption func(*Service)

	chainClient interface {
		GetObject(ctx context.Context, objectID string) (*sui.ObjectData, error)
		SelectCoins(ctx context.Context, owner, coinType string, amount uint64) ([]sui.Coin, error)
		DevInspectTransactionBlock(ctx context.Context, sender, txKindBase64 string) (*sui.DevInspectResults, error)
	}

	configSource interface {
		GetOrRefresh(ctx context.Context, now time.Time) dexconfig.Config
	}
)

// NewService creates a new aggregator service.
func NewService(chain chainClient, configs configSource, opts ...ServiceOption) *Service {
	s := &Service{
		chain:      chain,
		configs:    configs,
		swap:       dex.Swap,
		logger:     log.NewNopLogger(),
		now:        time.Now,
		settlement: DefaultSettlement(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildTx compiles the quote into a transaction. Unless the caller extends
// its own transaction, the output coin is sent to the sender and the
// program is finalized.
func (s *Service) BuildTx(ctx context.Context, params BuildTxParams) (_ *BuildResult, err error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	quote := params.Quote
	routes, err := GroupSwapRoutes(quote)
	if err != nil {
		return nil, errors.Wrap(err, "failed to group swap routes")
	}
	if len(routes) == 0 {
		return nil, swaperr.Validationf("quote has no swaps")
	}

	splits, err := routeAmounts(routes)
	if err != nil {
		return nil, err
	}
	swapAmount, err := parseAmount(quote.SwapAmountWithDecimal)
	if err != nil {
		return nil, errors.Wrap(err, "swap amount")
	}
	expected, err := parseAmount(quote.ReturnAmountWithDecimal)
	if err != nil {
		return nil, errors.Wrap(err, "return amount")
	}

	cfg := s.configs.GetOrRefresh(ctx, s.now())
	resolver := sui.NewResolver(s.chain)
	if err := resolver.Prefetch(ctx, s.objectIDs(routes)...); err != nil {
		return nil, err
	}

	tx := ptb.NewBuilder()
	if params.ExtendTx != nil {
		tx = params.ExtendTx.Tx
	}
	// A half-built program must never finalize.
	defer func() {
		if err != nil {
			tx.Abort(err)
		}
	}()

	inputs, err := s.fundRoutes(ctx, tx, params, swapAmount, splits)
	if err != nil {
		return nil, err
	}

	base := dex.HopContext{
		Tx:      tx,
		Config:  &cfg,
		Account: params.AccountAddress,
		Objects: resolver,
		Now:     s.now,
	}
	outputs := make([]ptb.Argument, 0, len(routes))
	for i, route := range routes {
		out, err := s.SwapWithRoute(ctx, i, route, inputs[i], base)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	coinOut := tx.MergeAll(outputs...)

	minReceived := MinReceived(expected, params.Slippage)
	if err := s.settle(ctx, tx, resolver, settleParams{
		tokenIn:     quote.TokenIn,
		tokenOut:    quote.TokenOut,
		swapAmount:  swapAmount,
		coin:        coinOut,
		minReceived: minReceived,
		expected:    expected,
		commission:  params.Commission,
	}); err != nil {
		return nil, err
	}

	result := &BuildResult{
		ID:          uuid.New(),
		Tx:          tx,
		CoinOut:     coinOut,
		MinReceived: minReceived,
		Routes:      routes,
	}

	if params.ExtendTx == nil {
		recipient, err := tx.PureAddress(params.AccountAddress)
		if err != nil {
			return nil, err
		}
		tx.TransferObjects([]ptb.Argument{coinOut}, recipient)

		program, err := tx.Finalize()
		if err != nil {
			return nil, errors.Wrap(err, "failed to finalize transaction")
		}
		result.Program = program
	} else if err := tx.Err(); err != nil {
		return nil, err
	}

	level.Debug(s.logger).Log(
		"msg", "swap transaction built",
		"build_id", result.ID,
		"sender", params.AccountAddress,
		"token_in", quote.TokenIn,
		"token_out", quote.TokenOut,
		"routes", len(routes),
		"commands", len(tx.Commands()),
		"min_received", minReceived,
	)

	return result, nil
}

// objectIDs lists the shared objects every build touches for sure.
func (s *Service) objectIDs(routes []dex.Route) []string {
	ids := []string{s.settlement.Config, s.settlement.Vault}
	for _, route := range routes {
		for _, hop := range route {
			ids = append(ids, hop.Swap.PoolID)
		}
	}
	return ids
}
