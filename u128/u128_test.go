package u128

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	u, err := Parse("340282366920938463463374607431768211455")
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), u.Lo)
	require.Equal(t, ^uint64(0), u.Hi)

	v, err := ParseBig("18446744073709551616")
	require.NoError(t, err)
	require.Equal(t, "18446744073709551616", v.String())

	_, err = Parse("340282366920938463463374607431768211456")
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Parse("-1")
	require.ErrorIs(t, err, ErrNegative)

	_, err = Parse("abc")
	require.Error(t, err)
}

func TestFromBig112(t *testing.T) {
	max112 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 112), big.NewInt(1))
	u, err := FromBig112(max112)
	require.NoError(t, err)
	require.Equal(t, max112.String(), ToBig(u).String())

	_, err = FromBig112(new(big.Int).Lsh(big.NewInt(1), 112))
	require.ErrorIs(t, err, ErrOverflow112)
}

func TestSplitWide(t *testing.T) {
	v, ok := new(big.Int).SetString("123456789012345678901234567890123456789012345678901234567890", 10)
	require.True(t, ok)

	hi, lo, err := SplitWide(v)
	require.NoError(t, err)
	require.NotZero(t, hi.Lo)
	require.Equal(t, v.String(), JoinWide(hi, lo).String())

	_, _, err = SplitWide(new(big.Int).Lsh(big.NewInt(1), 256))
	require.ErrorIs(t, err, ErrOverflow)

	hi, lo, err = SplitWide(nil)
	require.NoError(t, err)
	require.Equal(t, "0", JoinWide(hi, lo).String())
}
