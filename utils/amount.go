package utils

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FormatBalance converts a raw on-chain amount into a human readable decimal,
// e.g. 1000000000 with 9 decimals -> 1.
func FormatBalance(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
}

// FormatRawBalance converts a human readable amount into raw units, truncating
// anything below the token precision, e.g. "1.5" with 9 decimals -> 1500000000.
func FormatRawBalance(amount string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", amount)
	}
	if d.IsNegative() {
		return 0, errors.Errorf("amount %q is negative", amount)
	}

	raw := d.Shift(int32(decimals)).Truncate(0)
	if !raw.BigInt().IsUint64() {
		return 0, errors.Errorf("amount %q overflows u64", amount)
	}

	return raw.BigInt().Uint64(), nil
}

// AmountToString returns the human readable representation of a raw amount.
func AmountToString(raw uint64, decimals uint8) string {
	return FormatBalance(raw, decimals).String()
}

// AmountToFloat64 returns the human readable amount as float64.
// Precision is lost for large amounts, use it for display only.
func AmountToFloat64(raw uint64, decimals uint8) float64 {
	f, _ := FormatBalance(raw, decimals).Float64()
	return f
}
