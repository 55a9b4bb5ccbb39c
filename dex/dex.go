// Package dex translates one route hop into the instruction sequence of the
// exchange that owns the pool. Every adapter consumes the hop's input coin
// and returns a single handle to the bought coin.
package dex

import (
	"context"
	"time"

	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/holiman/uint256"
)

// UtilsPackage hosts the helpers returning leftover coins to their owner.
const UtilsPackage = "0x6f5e582ede61fe5395b50c4a449ec11479a54d7ff8e0158247adfda60d98970b"

// Extra keys shared by several protocols.
var poolStructTagKeys = []string{"pool_struct_tag", "poolStructTag"}

type (
	// Coin is one side of a pool.
	Coin struct {
		Type     string
		Decimals uint8
	}

	// Hop is a swap leg annotated with its pool.
	Hop struct {
		Swap     sevenk.SorSwap
		Pool     sevenk.SorPool
		CoinX    Coin // CoinX is the pool's first constituent.
		CoinY    Coin // CoinY is the pool's second constituent.
		SwapXtoY bool // SwapXtoY is true when the hop sells CoinX.
	}

	// Route is an ordered hop chain funded by one split of the input coin.
	Route []Hop

	// ObjectResolver turns object ids into transaction object inputs.
	ObjectResolver interface {
		OwnedObject(ctx context.Context, id string) (ptb.ObjectArg, error)
		SharedObject(ctx context.Context, id string, mutable bool) (ptb.ObjectArg, error)
	}

	// HopContext is everything an adapter needs to emit one hop.
	HopContext struct {
		Hop     Hop
		Input   ptb.Argument // Input is the coin sold by this hop.
		Tx      *ptb.Builder
		Config  *dexconfig.Config
		Account string // Account receives leftover coins.
		Objects ObjectResolver
		Now     func() time.Time
	}

	// SwapFunc emits one hop and returns the bought coin.
	SwapFunc func(ctx context.Context, hc HopContext) (ptb.Argument, error)
)

// AssetIn returns the normalized type of the sold coin.
func (h Hop) AssetIn() string {
	return ptb.NormalizeType(h.Swap.AssetIn)
}

// AssetOut returns the normalized type of the bought coin.
func (h Hop) AssetOut() string {
	return ptb.NormalizeType(h.Swap.AssetOut)
}

func (hc HopContext) now() time.Time {
	if hc.Now != nil {
		return hc.Now()
	}
	return time.Now()
}

// shared adds the shared objects with the given ids, in order.
func (hc HopContext) shared(ctx context.Context, mutable bool, ids ...string) ([]ptb.Argument, error) {
	args := make([]ptb.Argument, 0, len(ids))
	for _, id := range ids {
		obj, err := hc.Objects.SharedObject(ctx, id, mutable)
		if err != nil {
			return nil, err
		}
		args = append(args, hc.Tx.Object(obj))
	}
	return args, nil
}

func (hc HopContext) pool(ctx context.Context) (ptb.Argument, error) {
	args, err := hc.shared(ctx, true, hc.Hop.Swap.PoolID)
	if err != nil {
		return ptb.Argument{}, err
	}
	return args[0], nil
}

// inputValue emits coin::value of the input coin.
func (hc HopContext) inputValue() ptb.Argument {
	return hc.Tx.CoinValue(hc.Hop.AssetIn(), hc.Input)
}

// typeParams returns the type parameters of the pool struct tag.
func (hc HopContext) typeParams(n int) ([]string, error) {
	tag, ok := hc.Hop.Swap.Extra.Get(poolStructTagKeys...)
	if !ok {
		return nil, swaperr.NewMissingParameter(poolStructTagKeys[0])
	}
	params, err := ptb.TypeParams(tag)
	if err != nil {
		return nil, err
	}
	if len(params) < n {
		return nil, swaperr.NewParse(tag, swaperr.Validationf("expected %d type parameters, got %d", n, len(params)))
	}
	return params, nil
}

func (hc HopContext) extra(keys ...string) (string, error) {
	v, ok := hc.Hop.Swap.Extra.Get(keys...)
	if !ok {
		return "", swaperr.NewMissingParameter(keys[0])
	}
	return v, nil
}

func (hc HopContext) extraU64(keys ...string) (uint64, error) {
	v, err := hc.extra(keys...)
	if err != nil {
		return 0, err
	}
	n, err := parseU64(v)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// sendCoin returns a coin, possibly empty, to the account.
func (hc HopContext) sendCoin(coinType string, coin ptb.Argument) error {
	return TransferOrDestroyZeroCoin(hc.Tx, coinType, coin, hc.Account)
}

// TransferOrDestroyZeroCoin sends coin to the given address, or destroys it
// when its value is zero. An empty address sends it to the transaction sender.
func TransferOrDestroyZeroCoin(tx *ptb.Builder, coinType string, coin ptb.Argument, to string) error {
	call := ptb.MoveCall{
		Package:       UtilsPackage,
		Module:        "utils",
		Function:      "transfer_coin_to_sender",
		TypeArguments: []string{coinType},
		Arguments:     []ptb.Argument{coin},
	}
	if to != "" {
		addr, err := tx.PureAddress(to)
		if err != nil {
			return err
		}
		call.Function = "send_coin"
		call.Arguments = append(call.Arguments, addr)
	}
	tx.MoveCall(call)
	return nil
}

func (hc HopContext) pureU128(v *uint256.Int) (ptb.Argument, error) {
	return hc.Tx.PureU128(v)
}

func requireConfig(field, value string) error {
	if value == "" {
		return swaperr.NewMissingParameter("config." + field)
	}
	return nil
}
