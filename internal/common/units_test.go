package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "0.024981836", FormatUnits(24981836, 9))
	assert.Equal(t, "1.000000000", FormatUnits(1000000000, 9))
	assert.Equal(t, "0.000000000", FormatUnits(0, 9))
	assert.Equal(t, "12.500000", FormatUnits(12500000, 6))
	assert.Equal(t, "42", FormatUnits(42, 0))
}

func TestParseUnits(t *testing.T) {
	t.Run("plain integer", func(t *testing.T) {
		n, err := ParseUnits("2", 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(2000000000), n)
	})

	t.Run("decimal", func(t *testing.T) {
		n, err := ParseUnits("0.024981836", 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(24981836), n)
	})

	t.Run("short fraction is padded", func(t *testing.T) {
		n, err := ParseUnits("1.5", 6)
		require.NoError(t, err)
		assert.Equal(t, uint64(1500000), n)
	})

	t.Run("long fraction is truncated", func(t *testing.T) {
		n, err := ParseUnits("0.1234567891", 6)
		require.NoError(t, err)
		assert.Equal(t, uint64(123456), n)
	})

	t.Run("rejects amounts over uint64 range", func(t *testing.T) {
		// 18446744074 SOL in lamports exceeds uint64 and must not wrap
		_, err := ParseUnits("18446744074", 9)
		assert.Error(t, err)

		n, err := ParseUnits("18.446744073", 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(18446744073), n)
	})

	t.Run("rejects empty and malformed", func(t *testing.T) {
		_, err := ParseUnits("", 6)
		assert.Error(t, err)
		_, err = ParseUnits("1.2.3", 6)
		assert.Error(t, err)
		_, err = ParseUnits("abc", 6)
		assert.Error(t, err)
	})
}

func TestSOLRoundTrip(t *testing.T) {
	n, err := SOLToLamports(LamportsToSOL(123456789))
	require.NoError(t, err)
	assert.Equal(t, uint64(123456789), n)
}

func TestCompareAmounts(t *testing.T) {
	cmp, err := CompareAmounts("1.5", "1.50", 6)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareAmounts("0.999999", "1", 6)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareAmounts("2", "1.999999", 6)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = CompareAmounts("x", "1", 6)
	assert.Error(t, err)
}
