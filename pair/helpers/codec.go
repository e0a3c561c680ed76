package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"

	"github.com/krazyTry/bondcurve-go/pair/shared"
	"github.com/krazyTry/bondcurve-go/u128"
)

const SnapshotVersion uint8 = 1

// dueSize is the encoded size of one due, debt and collateral as u128.
const dueSize = 32

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot is everything needed to resume a pool bit-exactly.
type Snapshot struct {
	Maturity uint64
	Fees     shared.Fees
	State    shared.State
}

// EncodeSnapshot writes a snapshot in Borsh layout. Curve reserves are
// written as u128 and rejected above 112 bits. Liquidity and debt totals
// can pass 128 bits and are written as two u128 words, high first. Dues
// follow as a u32 count and a debt, collateral pair each.
func EncodeSnapshot(snapshot Snapshot) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)

	if err := enc.WriteUint8(SnapshotVersion); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(snapshot.Maturity, binary.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(snapshot.Fees.Fee, binary.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(snapshot.Fees.ProtocolFee, binary.LE); err != nil {
		return nil, err
	}

	s := snapshot.State
	for _, v := range []*big.Int{s.X, s.Y, s.Z} {
		if err := writeUint112(enc, v); err != nil {
			return nil, err
		}
	}
	for _, v := range []*big.Int{
		s.Reserves.Asset, s.Reserves.Collateral, s.FeeStored, s.ProtocolFeeStored,
		s.TotalClaims.BondPrincipal, s.TotalClaims.BondInterest,
		s.TotalClaims.InsurancePrincipal, s.TotalClaims.InsuranceInterest,
	} {
		if err := writeUint128(enc, v); err != nil {
			return nil, err
		}
	}
	for _, v := range []*big.Int{s.TotalLiquidity, s.ProtocolLiquidity, s.TotalDebtCreated} {
		if err := writeWide(enc, v); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteUint32(uint32(len(s.Dues)), binary.LE); err != nil {
		return nil, err
	}
	for _, due := range s.Dues {
		for _, v := range []*big.Int{due.Debt, due.Collateral} {
			if err := writeUint128(enc, v); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	dec := binary.NewBorshDecoder(data)

	version, err := dec.ReadUint8()
	if err != nil {
		return Snapshot{}, err
	}
	if version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, version)
	}

	var out Snapshot
	if out.Maturity, err = dec.ReadUint64(binary.LE); err != nil {
		return Snapshot{}, err
	}
	if out.Fees.Fee, err = dec.ReadUint16(binary.LE); err != nil {
		return Snapshot{}, err
	}
	if out.Fees.ProtocolFee, err = dec.ReadUint16(binary.LE); err != nil {
		return Snapshot{}, err
	}

	s := shared.NewState()
	for _, dst := range []**big.Int{&s.X, &s.Y, &s.Z} {
		if *dst, err = readUint112(dec); err != nil {
			return Snapshot{}, err
		}
	}
	for _, dst := range []**big.Int{
		&s.Reserves.Asset, &s.Reserves.Collateral, &s.FeeStored, &s.ProtocolFeeStored,
		&s.TotalClaims.BondPrincipal, &s.TotalClaims.BondInterest,
		&s.TotalClaims.InsurancePrincipal, &s.TotalClaims.InsuranceInterest,
	} {
		if *dst, err = readUint128(dec); err != nil {
			return Snapshot{}, err
		}
	}
	for _, dst := range []**big.Int{&s.TotalLiquidity, &s.ProtocolLiquidity, &s.TotalDebtCreated} {
		if *dst, err = readWide(dec); err != nil {
			return Snapshot{}, err
		}
	}
	count, err := dec.ReadUint32(binary.LE)
	if err != nil {
		return Snapshot{}, err
	}
	if uint64(count)*dueSize > uint64(dec.Remaining()) {
		return Snapshot{}, fmt.Errorf("snapshot lists %d dues in %d bytes", count, dec.Remaining())
	}
	if count > 0 {
		s.Dues = make([]shared.Due, count)
	}
	for i := range s.Dues {
		if s.Dues[i].Debt, err = readUint128(dec); err != nil {
			return Snapshot{}, err
		}
		if s.Dues[i].Collateral, err = readUint128(dec); err != nil {
			return Snapshot{}, err
		}
	}
	if dec.Remaining() != 0 {
		return Snapshot{}, fmt.Errorf("snapshot has %d trailing bytes", dec.Remaining())
	}
	out.State = s
	return out, nil
}

func writeUint112(enc *binary.Encoder, v *big.Int) error {
	u, err := u128.FromBig112(v)
	if err != nil {
		return err
	}
	return enc.WriteUint128(u, binary.LE)
}

func writeUint128(enc *binary.Encoder, v *big.Int) error {
	u, err := u128.FromBig(v)
	if err != nil {
		return err
	}
	return enc.WriteUint128(u, binary.LE)
}

func writeWide(enc *binary.Encoder, v *big.Int) error {
	hi, lo, err := u128.SplitWide(v)
	if err != nil {
		return err
	}
	if err := enc.WriteUint128(hi, binary.LE); err != nil {
		return err
	}
	return enc.WriteUint128(lo, binary.LE)
}

func readUint112(dec *binary.Decoder) (*big.Int, error) {
	v, err := readUint128(dec)
	if err != nil {
		return nil, err
	}
	if v.BitLen() > shared.Uint112Bits {
		return nil, u128.ErrOverflow112
	}
	return v, nil
}

func readUint128(dec *binary.Decoder) (*big.Int, error) {
	u, err := dec.ReadUint128(binary.LE)
	if err != nil {
		return nil, err
	}
	return u128.ToBig(u), nil
}

func readWide(dec *binary.Decoder) (*big.Int, error) {
	hi, err := dec.ReadUint128(binary.LE)
	if err != nil {
		return nil, err
	}
	lo, err := dec.ReadUint128(binary.LE)
	if err != nil {
		return nil, err
	}
	return u128.JoinWide(hi, lo), nil
}
