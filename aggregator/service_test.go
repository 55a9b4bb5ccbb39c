package aggregator_test

import (
	"context"
	"encoding/json"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/easypmnt/sui-swap-api/aggregator"
	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/dexconfig"
	"github.com/easypmnt/sui-swap-api/events"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sevenk"
	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	sender   = "0x8b4f5c5e5b37a4f0e8ef3f2f8c1b8e7a2d6c3b4a5f6e7d8c9b0a1f2e3d4c5b6a"
	partner  = "0x1111111111111111111111111111111111111111111111111111111111111111"
	digest32 = "11111111111111111111111111111111"
)

type fakeChain struct {
	coins       []sui.Coin
	coinsErr    error
	missing     map[string]bool
	selectCalls int32
	inspected   string
}

func (c *fakeChain) GetObject(_ context.Context, id string) (*sui.ObjectData, error) {
	if c.missing[id] {
		return nil, sui.ErrObjectNotFound
	}
	isv := sui.Uint64(5)
	return &sui.ObjectData{ObjectID: id, Version: 9, Digest: digest32, Owner: &sui.ObjectOwner{InitialSharedVersion: &isv}}, nil
}

func (c *fakeChain) SelectCoins(_ context.Context, owner, coinType string, amount uint64) ([]sui.Coin, error) {
	atomic.AddInt32(&c.selectCalls, 1)
	if c.coinsErr != nil {
		return nil, c.coinsErr
	}
	return c.coins, nil
}

func (c *fakeChain) DevInspectTransactionBlock(_ context.Context, _, kind string) (*sui.DevInspectResults, error) {
	c.inspected = kind
	res := &sui.DevInspectResults{}
	res.Effects.Status.Status = "success"
	res.Effects.GasUsed = sui.GasCostSummary{ComputationCost: 1_000_000, StorageCost: 2_000_000, StorageRebate: 500_000}
	return res, nil
}

type staticConfig struct{}

func (staticConfig) GetOrRefresh(context.Context, time.Time) dexconfig.Config { return dexconfig.Default() }

func suiCoins() []sui.Coin {
	return []sui.Coin{
		{CoinType: "0x2::sui::SUI", CoinObjectID: "0xc1", Version: 3, Digest: digest32, Balance: 800_000_000},
		{CoinType: "0x2::sui::SUI", CoinObjectID: "0xc2", Version: 4, Digest: digest32, Balance: 700_000_000},
	}
}

func loadQuote(t *testing.T, name string) *sevenk.QuoteResponse {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	var q sevenk.QuoteResponse
	require.NoError(t, json.Unmarshal(b, &q))
	return &q
}

func newService(chain *fakeChain, opts ...aggregator.ServiceOption) *aggregator.Service {
	opts = append([]aggregator.ServiceOption{
		aggregator.WithClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) }),
	}, opts...)
	return aggregator.NewService(chain, staticConfig{}, opts...)
}

func moveCalls(tx *ptb.Builder) map[int]*ptb.MoveCall {
	out := make(map[int]*ptb.MoveCall)
	for i, cmd := range tx.Commands() {
		if mc, ok := cmd.(*ptb.MoveCall); ok {
			out[i] = mc
		}
	}
	return out
}

func findCall(t *testing.T, tx *ptb.Builder, module, function string) (int, *ptb.MoveCall) {
	t.Helper()
	for i, cmd := range tx.Commands() {
		if mc, ok := cmd.(*ptb.MoveCall); ok && mc.Module == module && mc.Function == function {
			return i, mc
		}
	}
	t.Fatalf("no %s::%s call", module, function)
	return 0, nil
}

func pureBytes(tx *ptb.Builder, arg ptb.Argument) []byte {
	return tx.Inputs()[arg.Index].Pure
}

func TestBuildTx_SingleRoute(t *testing.T) {
	chain := &fakeChain{coins: suiCoins()}
	svc := newService(chain)

	res, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: sender,
		Slippage:       0.01,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Program)
	require.EqualValues(t, 3_009_445, res.MinReceived)
	require.Len(t, res.Routes, 1)

	tx := res.Tx
	split, ok := tx.Commands()[0].(*ptb.SplitCoins)
	require.True(t, ok)
	require.Equal(t, ptb.GasCoin(), split.Coin)
	require.Len(t, split.Amounts, 1)
	require.Equal(t, ptb.EncodeU64(1_000_000_000), pureBytes(tx, split.Amounts[0]))

	_, swap := findCall(t, tx, "v2", "swap_x_to_y")
	require.Equal(t, dexconfig.Default().Obric.Package, swap.Package)

	settleIdx, settle := findCall(t, tx, "settle", "settle")
	require.Equal(t, aggregator.SettlePackage, settle.Package)
	require.Equal(t, []string{ptb.NormalizeType("0x2::sui::SUI"), ptb.NormalizeType(res.Routes[0][0].Swap.AssetOut)}, settle.TypeArguments)
	require.Len(t, settle.Arguments, 8)
	require.Equal(t, ptb.EncodeU64(1_000_000_000), pureBytes(tx, settle.Arguments[2]))
	require.Equal(t, res.CoinOut, settle.Arguments[3])
	require.Equal(t, ptb.EncodeU64(3_009_445), pureBytes(tx, settle.Arguments[4]))
	require.Equal(t, ptb.EncodeU64(3_039_844), pureBytes(tx, settle.Arguments[5]))
	require.Equal(t, ptb.EncodeU16(0), pureBytes(tx, settle.Arguments[7]))

	none := moveCalls(tx)[int(settle.Arguments[6].Index)]
	require.Equal(t, "option::none", none.Module+"::"+none.Function)

	config := tx.Inputs()[settle.Arguments[0].Index].Object
	require.NotNil(t, config)
	require.True(t, config.Mutable)
	require.EqualValues(t, 5, config.InitialSharedVersion)

	// The merged coin is handed to settle and then transferred again.
	cmds := tx.Commands()
	require.Equal(t, len(cmds)-1, settleIdx+1)
	transfer, ok := cmds[len(cmds)-1].(*ptb.TransferObjects)
	require.True(t, ok)
	require.Equal(t, []ptb.Argument{res.CoinOut}, transfer.Objects)
	require.Equal(t, settle.Arguments[3], transfer.Objects[0])
}

func TestBuildTx_MultiRoute(t *testing.T) {
	chain := &fakeChain{coins: suiCoins()}
	svc := newService(chain)

	res, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_multi.json"),
		AccountAddress: sender,
		Slippage:       0.005,
		Commission:     aggregator.Commission{Partner: partner, CommissionBps: 25},
	})
	require.NoError(t, err)
	require.Len(t, res.Routes, 4)
	require.EqualValues(t, 2_998_455, res.MinReceived)

	tx := res.Tx
	var (
		splits   []*ptb.SplitCoins
		merges   []int
		mergeCmd *ptb.MergeCoins
	)
	for i, cmd := range tx.Commands() {
		switch c := cmd.(type) {
		case *ptb.SplitCoins:
			splits = append(splits, c)
		case *ptb.MergeCoins:
			merges = append(merges, i)
			mergeCmd = c
		}
	}
	require.Len(t, splits, 1)
	require.Len(t, splits[0].Amounts, 4)
	for i, want := range []uint64{389041257, 382146692, 197601241, 31210809} {
		require.Equal(t, ptb.EncodeU64(want), pureBytes(tx, splits[0].Amounts[i]))
	}

	require.Len(t, merges, 1)
	require.Len(t, mergeCmd.Sources, 3)
	require.Equal(t, res.CoinOut, mergeCmd.Destination)
	settleIdx, settle := findCall(t, tx, "settle", "settle")
	require.Less(t, merges[0], settleIdx)

	some := moveCalls(tx)[int(settle.Arguments[6].Index)]
	require.Equal(t, "option::some", some.Module+"::"+some.Function)
	addr, err := ptb.EncodeAddress(partner)
	require.NoError(t, err)
	require.Equal(t, addr, pureBytes(tx, some.Arguments[0]))
	require.Equal(t, ptb.EncodeU16(25), pureBytes(tx, settle.Arguments[7]))
}

func TestBuildTx_ChainsHops(t *testing.T) {
	type call struct {
		in, out ptb.Argument
		source  sevenk.Source
	}
	var calls []call
	fake := func(ctx context.Context, hc dex.HopContext) (ptb.Argument, error) {
		out := hc.Tx.MoveCall(ptb.MoveCall{Package: "0x2", Module: "fake", Function: "hop", Arguments: []ptb.Argument{hc.Input}})
		calls = append(calls, call{in: hc.Input, out: out, source: hc.Hop.Pool.Type})
		return out, nil
	}

	svc := newService(&fakeChain{coins: suiCoins()}, aggregator.WithSwapFunc(fake))
	res, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_multi.json"),
		AccountAddress: sender,
	})
	require.NoError(t, err)
	require.Len(t, calls, 9)

	n := 0
	for r, route := range res.Routes {
		for h := range route {
			c := calls[n]
			if h == 0 {
				require.Equal(t, ptb.ArgumentNestedResult, c.in.Kind, "route %d", r)
				require.EqualValues(t, r, c.in.SubIndex)
			} else {
				require.Equal(t, calls[n-1].out, c.in, "route %d hop %d", r, h)
			}
			require.Equal(t, route[h].Pool.Type, c.source)
			n++
		}
	}
}

func TestBuildTx_HopError(t *testing.T) {
	fail := func(ctx context.Context, hc dex.HopContext) (ptb.Argument, error) {
		if hc.Hop.Pool.Type == sevenk.Cetus {
			return ptb.Argument{}, swaperr.NewMissingParameter("pool_struct_tag")
		}
		return hc.Tx.MoveCall(ptb.MoveCall{Package: "0x2", Module: "fake", Function: "hop"}), nil
	}

	svc := newService(&fakeChain{coins: suiCoins()}, aggregator.WithSwapFunc(fail))
	_, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_multi.json"),
		AccountAddress: sender,
	})
	require.ErrorIs(t, err, swaperr.ErrMissingParameter)

	var hopErr *swaperr.HopError
	require.True(t, errors.As(err, &hopErr))
	require.Equal(t, 0, hopErr.Route)
	require.Equal(t, 0, hopErr.Hop)
	require.Equal(t, "cetus", hopErr.Source)
}

func TestBuildTx_HopErrorExtendTx(t *testing.T) {
	fail := func(ctx context.Context, hc dex.HopContext) (ptb.Argument, error) {
		if hc.Hop.Pool.Type == sevenk.Cetus {
			return ptb.Argument{}, swaperr.NewMissingParameter("pool_struct_tag")
		}
		return hc.Tx.MoveCall(ptb.MoveCall{Package: "0x2", Module: "fake", Function: "hop"}), nil
	}

	tx := ptb.NewBuilder()
	coinIn := tx.SplitCoinsU64(tx.Gas(), 1000000000)[0]

	svc := newService(&fakeChain{coins: suiCoins()}, aggregator.WithSwapFunc(fail))
	_, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_multi.json"),
		AccountAddress: sender,
		ExtendTx:       &aggregator.ExtendTx{Tx: tx, CoinIn: &coinIn},
	})
	require.ErrorIs(t, err, swaperr.ErrMissingParameter)
	require.Greater(t, len(tx.Commands()), 1)

	_, ferr := tx.Finalize()
	require.ErrorIs(t, ferr, swaperr.ErrMissingParameter)
}

func TestBuildTx_FinalizedExtendTx(t *testing.T) {
	tx := ptb.NewBuilder()
	_, err := tx.Finalize()
	require.NoError(t, err)

	svc := newService(&fakeChain{coins: suiCoins()})
	require.NotPanics(t, func() {
		_, err = svc.BuildTx(context.Background(), aggregator.BuildTxParams{
			Quote:          loadQuote(t, "quote_single.json"),
			AccountAddress: sender,
			ExtendTx:       &aggregator.ExtendTx{Tx: tx},
		})
	})
	require.ErrorIs(t, err, swaperr.ErrValidation)
	require.Contains(t, err.Error(), "already finalized")
}

func TestBuildTx_Validation(t *testing.T) {
	svc := newService(&fakeChain{coins: suiCoins()})

	_, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:      &sevenk.QuoteResponse{},
		Slippage:   1,
		Commission: aggregator.Commission{Partner: "not an address"},
	})
	require.ErrorIs(t, err, swaperr.ErrValidation)
	for _, msg := range []string{"sender address is required", "routes are required", "commission partner", "slippage"} {
		require.Contains(t, err.Error(), msg)
	}

	_, err = svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: "0xzz",
	})
	require.ErrorIs(t, err, swaperr.ErrValidation)
}

func TestBuildTx_UnknownPool(t *testing.T) {
	quote := loadQuote(t, "quote_multi.json")
	quote.Swaps[4].PoolID = "0xdead"

	tx := ptb.NewBuilder()
	chain := &fakeChain{coins: suiCoins()}
	svc := newService(chain)
	_, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          quote,
		AccountAddress: sender,
		ExtendTx:       &aggregator.ExtendTx{Tx: tx},
	})
	require.ErrorIs(t, err, swaperr.ErrResolution)
	require.ErrorIs(t, err, aggregator.ErrPoolNotFound)
	require.Empty(t, tx.Commands())
	require.Empty(t, tx.Inputs())
	require.Zero(t, atomic.LoadInt32(&chain.selectCalls))
}

func TestBuildTx_MissingObject(t *testing.T) {
	chain := &fakeChain{coins: suiCoins(), missing: map[string]bool{aggregator.SettleVault: true}}
	_, err := newService(chain).BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: sender,
	})
	require.ErrorIs(t, err, swaperr.ErrResolution)
	require.ErrorIs(t, err, sui.ErrObjectNotFound)
}

func TestBuildTx_Funding(t *testing.T) {
	t.Run("dev inspect merges owned coins", func(t *testing.T) {
		res, err := newService(&fakeChain{coins: suiCoins()}).BuildTx(context.Background(), aggregator.BuildTxParams{
			Quote:          loadQuote(t, "quote_single.json"),
			AccountAddress: sender,
			DevInspect:     true,
		})
		require.NoError(t, err)

		tx := res.Tx
		merge, ok := tx.Commands()[0].(*ptb.MergeCoins)
		require.True(t, ok)
		require.Len(t, merge.Sources, 1)
		split, ok := tx.Commands()[1].(*ptb.SplitCoins)
		require.True(t, ok)
		require.Equal(t, merge.Destination, split.Coin)

		coin := tx.Inputs()[merge.Destination.Index].Object
		require.NotNil(t, coin)
		require.Equal(t, ptb.ObjectImmOrOwned, coin.Kind)
		require.EqualValues(t, 3, coin.Version)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		chain := &fakeChain{coinsErr: &swaperr.InsufficientBalanceError{CoinType: "0x2::sui::SUI", Required: 1_000_000_000, Available: 10}}
		_, err := newService(chain).BuildTx(context.Background(), aggregator.BuildTxParams{
			Quote:          loadQuote(t, "quote_single.json"),
			AccountAddress: sender,
		})
		require.ErrorIs(t, err, swaperr.ErrInsufficientBalance)
	})

	t.Run("no coins", func(t *testing.T) {
		_, err := newService(&fakeChain{}).BuildTx(context.Background(), aggregator.BuildTxParams{
			Quote:          loadQuote(t, "quote_single.json"),
			AccountAddress: sender,
		})
		require.ErrorIs(t, err, sui.ErrNoCoinsFound)
	})

	t.Run("extended transaction with coin in", func(t *testing.T) {
		chain := &fakeChain{}
		tx := ptb.NewBuilder()
		coinIn := tx.SplitCoinsU64(tx.Gas(), 1_000_000_000)[0]

		res, err := newService(chain).BuildTx(context.Background(), aggregator.BuildTxParams{
			Quote:          loadQuote(t, "quote_multi.json"),
			AccountAddress: sender,
			ExtendTx:       &aggregator.ExtendTx{Tx: tx, CoinIn: &coinIn},
		})
		require.NoError(t, err)
		require.Nil(t, res.Program)
		require.Same(t, tx, res.Tx)
		require.Zero(t, atomic.LoadInt32(&chain.selectCalls))

		split, ok := tx.Commands()[1].(*ptb.SplitCoins)
		require.True(t, ok)
		require.Equal(t, coinIn, split.Coin)
		require.Len(t, split.Amounts, 4)

		send := moveCalls(tx)[2]
		require.Equal(t, "utils::send_coin", send.Module+"::"+send.Function)
		require.Equal(t, coinIn, send.Arguments[0])

		for _, cmd := range tx.Commands() {
			_, isTransfer := cmd.(*ptb.TransferObjects)
			require.False(t, isTransfer)
		}

		// The caller can keep appending.
		tx.TransferObjects([]ptb.Argument{res.CoinOut}, tx.Gas())
		_, err = tx.Finalize()
		require.NoError(t, err)
	})
}

func TestEstimateGasFee(t *testing.T) {
	chain := &fakeChain{coins: suiCoins()}
	est, err := newService(chain).EstimateGasFee(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: sender,
		Slippage:       0.01,
	}, 4)
	require.NoError(t, err)
	require.EqualValues(t, 2_500_000, est.FeeMist)
	require.InDelta(t, 0.0025, est.FeeSui, 1e-12)
	require.InDelta(t, 0.01, est.FeeUSD, 1e-12)
	require.NotEmpty(t, chain.inspected)
}

func TestMinReceived(t *testing.T) {
	require.EqualValues(t, 3_009_445, aggregator.MinReceived(3_039_844, 0.01))
	require.EqualValues(t, 3_039_844, aggregator.MinReceived(3_039_844, 0))
	require.EqualValues(t, 0, aggregator.MinReceived(3_039_844, 1))

	prev := aggregator.MinReceived(3_039_844, 0)
	for _, s := range []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 0.99} {
		got := aggregator.MinReceived(3_039_844, s)
		require.LessOrEqual(t, got, prev, "slippage %v", s)
		prev = got
	}
}

func TestServiceEvents(t *testing.T) {
	var fired []events.EventName
	svc := aggregator.NewServiceEvents(newService(&fakeChain{coins: suiCoins()}), func(name events.EventName, payload ...interface{}) {
		fired = append(fired, name)
	})

	res, err := svc.BuildTx(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: sender,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	_, err = svc.BuildTx(context.Background(), aggregator.BuildTxParams{})
	require.Error(t, err)

	_, err = svc.EstimateGasFee(context.Background(), aggregator.BuildTxParams{
		Quote:          loadQuote(t, "quote_single.json"),
		AccountAddress: sender,
	}, 1)
	require.NoError(t, err)

	require.Equal(t, []events.EventName{events.SwapBuilt, events.SwapBuildFailed, events.GasEstimated}, fired)
}
