package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

var (
	ErrNegative    = errors.New("value cannot be negative")
	ErrOverflow    = errors.New("value overflows Uint128")
	ErrOverflow112 = errors.New("value overflows Uint112")
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	}
	v, err := FromBig(i)
	if err != nil {
		return err
	}
	*u = Uint128(v)
	return nil
}

// Parse reads a base 10 string into a little endian Uint128.
func Parse(num string) (binary.Uint128, error) {
	u := Uint128(*binary.NewUint128LittleEndian())
	if _, err := fmt.Sscan(num, &u); err != nil {
		return binary.Uint128{}, fmt.Errorf("parse %q: %w", num, err)
	}
	return binary.Uint128(u), nil
}

// ParseBig reads a base 10 string that must fit 128 bits.
func ParseBig(num string) (*big.Int, error) {
	u, err := Parse(num)
	if err != nil {
		return nil, err
	}
	return ToBig(u), nil
}

func FromBig(v *big.Int) (binary.Uint128, error) {
	if v == nil {
		return *binary.NewUint128LittleEndian(), nil
	}
	if v.Sign() < 0 {
		return binary.Uint128{}, ErrNegative
	}
	if v.BitLen() > 128 {
		return binary.Uint128{}, ErrOverflow
	}
	u := binary.NewUint128LittleEndian()
	u.Lo = v.Uint64()
	u.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return *u, nil
}

// FromBig112 is FromBig for reserve values, which are bound to 112 bits.
func FromBig112(v *big.Int) (binary.Uint128, error) {
	if v != nil && v.BitLen() > 112 {
		return binary.Uint128{}, ErrOverflow112
	}
	return FromBig(v)
}

func ToBig(u binary.Uint128) *big.Int {
	out := new(big.Int).SetUint64(u.Hi)
	out.Lsh(out, 64)
	return out.Or(out, new(big.Int).SetUint64(u.Lo))
}

// SplitWide breaks a value of up to 256 bits into its high and low 128 bit words.
func SplitWide(v *big.Int) (hi, lo binary.Uint128, err error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 {
		return binary.Uint128{}, binary.Uint128{}, ErrNegative
	}
	if v.BitLen() > 256 {
		return binary.Uint128{}, binary.Uint128{}, ErrOverflow
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	if hi, err = FromBig(new(big.Int).Rsh(v, 128)); err != nil {
		return
	}
	lo, err = FromBig(new(big.Int).And(v, mask))
	return
}

func JoinWide(hi, lo binary.Uint128) *big.Int {
	out := ToBig(hi)
	out.Lsh(out, 128)
	return out.Or(out, ToBig(lo))
}
