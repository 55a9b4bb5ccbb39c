package aggregator

import (
	"context"
	"math/big"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/shopspring/decimal"
)

// Mainnet settlement contract of the 7k aggregator.
const (
	SettlePackage = "0x7ea6e27ad7af6f3b8671d59df1aaebd7c03dddab893e52a714227b2f4fe91519"
	SettleConfig  = "0x0f8fc23dbcc9362b72c7a4c5aa53fcefa02ebfbb83a812c8c262ccd2c076d9ee"
	SettleVault   = "0x39a3c55742c0e011b6f65548e73cf589e1ae5e82dbfab449ca57f24c3bcd9514"
)

type (
	// Settlement locates the settle::settle entry point and its shared objects.
	Settlement struct {
		Package string
		Config  string
		Vault   string
	}

	settleParams struct {
		tokenIn     string
		tokenOut    string
		swapAmount  uint64
		coin        ptb.Argument
		minReceived uint64
		expected    uint64
		commission  Commission
	}
)

// DefaultSettlement returns the mainnet settlement contract.
func DefaultSettlement() Settlement {
	return Settlement{Package: SettlePackage, Config: SettleConfig, Vault: SettleVault}
}

// MinReceived returns floor((1 - slippage) * expected).
func MinReceived(expected uint64, slippage float64) uint64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(slippage))
	if factor.IsNegative() {
		return 0
	}
	min := decimal.NewFromBigInt(new(big.Int).SetUint64(expected), 0).Mul(factor).Floor()
	return min.BigInt().Uint64()
}

// settle emits settle::settle<In, Out>. The coin argument is the merged
// output that BuildTx transfers to the sender afterwards.
func (s *Service) settle(ctx context.Context, tx *ptb.Builder, objects dex.ObjectResolver, p settleParams) error {
	config, err := objects.SharedObject(ctx, s.settlement.Config, true)
	if err != nil {
		return err
	}
	vault, err := objects.SharedObject(ctx, s.settlement.Vault, true)
	if err != nil {
		return err
	}

	partner := tx.OptionNone("address")
	if p.commission.Partner != "" {
		addr, err := tx.PureAddress(p.commission.Partner)
		if err != nil {
			return err
		}
		partner = tx.OptionSome("address", addr)
	}

	tx.MoveCall(ptb.MoveCall{
		Package:       s.settlement.Package,
		Module:        "settle",
		Function:      "settle",
		TypeArguments: []string{ptb.NormalizeType(p.tokenIn), ptb.NormalizeType(p.tokenOut)},
		Arguments: []ptb.Argument{
			tx.Object(config),
			tx.Object(vault),
			tx.PureU64(p.swapAmount),
			p.coin,
			tx.PureU64(p.minReceived),
			tx.PureU64(p.expected),
			partner,
			tx.PureU16(p.commission.CommissionBps),
		},
	})

	return nil
}
