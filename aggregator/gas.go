package aggregator

import (
	"context"

	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EstimateGasFee dry runs the swap and prices its gas in USD at suiPrice.
// The build always runs in dev-inspect mode so the gas coin stays untouched.
func (s *Service) EstimateGasFee(ctx context.Context, params BuildTxParams, suiPrice float64) (GasEstimate, error) {
	params.DevInspect = true
	params.ExtendTx = nil

	result, err := s.BuildTx(ctx, params)
	if err != nil {
		return GasEstimate{}, err
	}

	kind, err := result.Program.EncodeBase64()
	if err != nil {
		return GasEstimate{}, errors.Wrap(err, "failed to encode transaction")
	}

	res, err := s.chain.DevInspectTransactionBlock(ctx, params.AccountAddress, kind)
	if err != nil {
		return GasEstimate{}, err
	}

	fee := res.Effects.GasUsed.Fee()
	feeSui := decimal.NewFromInt(fee).Shift(-utils.SuiDecimals)
	feeUSD := feeSui.Mul(decimal.NewFromFloat(suiPrice))

	return GasEstimate{
		FeeMist: fee,
		FeeSui:  feeSui.InexactFloat64(),
		FeeUSD:  feeUSD.InexactFloat64(),
	}, nil
}
