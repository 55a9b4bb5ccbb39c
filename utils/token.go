package utils

import "strings"

// Well-known coin types.
const (
	SuiType        = "0x2::sui::SUI"
	SuiFullType    = "0x0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"
	SuiDecimals    = 9
	USDCType       = "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN"
	NativeUSDCType = "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC"
)

// NormalizeTokenType expands the short SUI type into its full form.
// Any other type is returned unchanged.
func NormalizeTokenType(t string) string {
	if t == SuiType {
		return SuiFullType
	}
	return t
}

// DenormalizeTokenType collapses the full SUI type into its short form.
// Any other type is returned unchanged.
func DenormalizeTokenType(t string) string {
	if t == SuiFullType {
		return SuiType
	}
	return t
}

// IsSui reports whether t is the SUI coin type, in either form.
func IsSui(t string) bool {
	t = strings.TrimSpace(t)
	return t == SuiType || t == SuiFullType
}
