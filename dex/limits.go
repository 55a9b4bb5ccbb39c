package dex

import (
	"strconv"

	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/holiman/uint256"
)

// Bounds of a concentrated liquidity pool's sqrt price, Q64.64.
var (
	minSqrtPrice = uint256.NewInt(4295048016)
	maxSqrtPrice = uint256.MustFromDecimal("79226673515401279992447579055")
)

// MinSqrtPrice returns the lowest sqrt price a pool accepts.
func MinSqrtPrice() *uint256.Int { return new(uint256.Int).Set(minSqrtPrice) }

// MaxSqrtPrice returns the highest sqrt price a pool accepts.
func MaxSqrtPrice() *uint256.Int { return new(uint256.Int).Set(maxSqrtPrice) }

// DefaultSqrtPriceLimit is the price limit that never stops an a2b
// (price decreasing) or b2a swap early.
func DefaultSqrtPriceLimit(a2b bool) *uint256.Int {
	if a2b {
		return MinSqrtPrice()
	}
	return MaxSqrtPrice()
}

// AdjustedSqrtPriceLimit is DefaultSqrtPriceLimit moved one unit inside the
// range, for pools that reject the bounds themselves.
func AdjustedSqrtPriceLimit(a2b bool) *uint256.Int {
	if a2b {
		return new(uint256.Int).AddUint64(minSqrtPrice, 1)
	}
	return new(uint256.Int).SubUint64(maxSqrtPrice, 1)
}

func parseU64(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, swaperr.NewParse(s, err)
	}
	return n, nil
}
