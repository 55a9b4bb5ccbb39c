package aggregator

import (
	"context"

	"github.com/easypmnt/sui-swap-api/dex"
	"github.com/easypmnt/sui-swap-api/ptb"
	"github.com/easypmnt/sui-swap-api/sui"
	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/pkg/errors"
)

// fundRoutes splits the input coin into one coin per route.
//
// A caller supplied coin is split directly and its remainder returned to the
// sender. Otherwise the sender's coins are selected: SUI is split from the gas
// coin, unless the build is a dry run, and any other type is merged into its
// largest coin before splitting.
func (s *Service) fundRoutes(ctx context.Context, tx *ptb.Builder, params BuildTxParams, total uint64, splits []uint64) ([]ptb.Argument, error) {
	tokenIn := ptb.NormalizeType(params.Quote.TokenIn)

	if ext := params.ExtendTx; ext != nil && ext.CoinIn != nil {
		coins := tx.SplitCoinsU64(*ext.CoinIn, splits...)
		if err := dex.TransferOrDestroyZeroCoin(tx, tokenIn, *ext.CoinIn, params.AccountAddress); err != nil {
			return nil, err
		}
		return coins, nil
	}

	owned, err := s.chain.SelectCoins(ctx, params.AccountAddress, utils.DenormalizeTokenType(tokenIn), total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select coins")
	}
	if len(owned) == 0 {
		return nil, sui.ErrNoCoinsFound
	}

	if tokenIn == utils.SuiFullType && !params.DevInspect {
		return tx.SplitCoinsU64(tx.Gas(), splits...), nil
	}

	args := make([]ptb.Argument, 0, len(owned))
	for _, c := range owned {
		args = append(args, tx.Object(ptb.OwnedObject(c.CoinObjectID, uint64(c.Version), c.Digest)))
	}
	return tx.SplitCoinsU64(tx.MergeAll(args...), splits...), nil
}
