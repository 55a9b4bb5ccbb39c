package utils_test

import (
	"bytes"
	"testing"

	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/stretchr/testify/require"
)

func TestFormatBalance(t *testing.T) {
	require.Equal(t, "1", utils.AmountToString(1000000000, 9))
	require.Equal(t, "3.039844", utils.AmountToString(3039844, 6))
	require.Equal(t, "0", utils.AmountToString(0, 6))
	require.InDelta(t, 0.5, utils.AmountToFloat64(500000000, 9), 1e-12)
}

func TestFormatRawBalance(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		raw, err := utils.FormatRawBalance("1.5", 9)
		require.NoError(t, err)
		require.EqualValues(t, 1500000000, raw)

		raw, err = utils.FormatRawBalance("0.0000001234", 6)
		require.NoError(t, err)
		require.EqualValues(t, 0, raw)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := utils.FormatRawBalance("abc", 9)
		require.Error(t, err)

		_, err = utils.FormatRawBalance("-1", 9)
		require.Error(t, err)

		_, err = utils.FormatRawBalance("100000000000000", 9)
		require.Error(t, err)
	})
}

func TestTokenTypes(t *testing.T) {
	require.Equal(t, utils.SuiFullType, utils.NormalizeTokenType(utils.SuiType))
	require.Equal(t, utils.SuiType, utils.DenormalizeTokenType(utils.SuiFullType))
	require.Equal(t, utils.NativeUSDCType, utils.NormalizeTokenType(utils.NativeUSDCType))
	require.True(t, utils.IsSui(utils.SuiType))
	require.True(t, utils.IsSui(utils.SuiFullType))
	require.False(t, utils.IsSui(utils.USDCType))
}

func TestPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.PrettyPrint(&buf, map[string]uint64{"min_received": 3009445}, []string{"cetus"}))
	require.Equal(t, "{\n  \"min_received\": 3009445\n}\n[\n  \"cetus\"\n]\n", buf.String())
}
