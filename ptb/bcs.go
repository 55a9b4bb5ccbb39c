package ptb

import (
	"bytes"
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// bcsEncoder writes values in Binary Canonical Serialization.
type bcsEncoder struct {
	buf bytes.Buffer
}

func (e *bcsEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *bcsEncoder) uleb128(v uint64) {
	for v >= 0x80 {
		e.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	e.buf.WriteByte(byte(v))
}

func (e *bcsEncoder) u8(v uint8) {
	e.buf.WriteByte(v)
}

func (e *bcsEncoder) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *bcsEncoder) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *bcsEncoder) boolean(v bool) {
	if v {
		e.buf.WriteByte(1)
		return
	}
	e.buf.WriteByte(0)
}

// vec writes a length-prefixed byte vector.
func (e *bcsEncoder) vec(b []byte) {
	e.uleb128(uint64(len(b)))
	e.buf.Write(b)
}

func (e *bcsEncoder) str(s string) {
	e.vec([]byte(s))
}

func (e *bcsEncoder) fixed(b []byte) {
	e.buf.Write(b)
}

func (e *bcsEncoder) address(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	e.fixed(addr[:])
	return nil
}

func (e *bcsEncoder) argument(a Argument) {
	e.u8(uint8(a.Kind))
	switch a.Kind {
	case ArgumentInput, ArgumentResult:
		e.u16(a.Index)
	case ArgumentNestedResult:
		e.u16(a.Index)
		e.u16(a.SubIndex)
	}
}

func (e *bcsEncoder) arguments(args []Argument) {
	e.uleb128(uint64(len(args)))
	for _, a := range args {
		e.argument(a)
	}
}

func (e *bcsEncoder) typeTag(t TypeTag) {
	e.u8(uint8(t.Kind))
	switch t.Kind {
	case TypeVector:
		e.typeTag(*t.Elem)
	case TypeStruct:
		e.fixed(t.Struct.Address[:])
		e.str(t.Struct.Module)
		e.str(t.Struct.Name)
		e.uleb128(uint64(len(t.Struct.TypeParams)))
		for _, tp := range t.Struct.TypeParams {
			e.typeTag(tp)
		}
	}
}

func (e *bcsEncoder) objectArg(o ObjectArg) error {
	e.u8(uint8(o.Kind))
	if err := e.address(o.ID); err != nil {
		return err
	}

	switch o.Kind {
	case ObjectImmOrOwned:
		digest, err := base58.Decode(o.Digest)
		if err != nil {
			return errors.Wrapf(err, "invalid digest of object %s", o.ID)
		}
		if len(digest) != 32 {
			return errors.Errorf("invalid digest length %d of object %s", len(digest), o.ID)
		}
		e.u64(o.Version)
		e.vec(digest)
	case ObjectShared:
		e.u64(o.InitialSharedVersion)
		e.boolean(o.Mutable)
	default:
		return errors.Errorf("unsupported object kind %d", o.Kind)
	}

	return nil
}

func (e *bcsEncoder) callArg(c CallArg) error {
	if c.IsPure() {
		e.u8(0)
		e.vec(c.Pure)
		return nil
	}
	e.u8(1)
	return e.objectArg(*c.Object)
}

// Pure value encoders.

// EncodeU64 returns the BCS bytes of a u64.
func EncodeU64(v uint64) []byte {
	var e bcsEncoder
	e.u64(v)
	return e.Bytes()
}

// EncodeU16 returns the BCS bytes of a u16.
func EncodeU16(v uint16) []byte {
	var e bcsEncoder
	e.u16(v)
	return e.Bytes()
}

// EncodeBool returns the BCS bytes of a bool.
func EncodeBool(v bool) []byte {
	var e bcsEncoder
	e.boolean(v)
	return e.Bytes()
}

// EncodeU128 returns the BCS bytes of a u128.
func EncodeU128(v *uint256.Int) ([]byte, error) {
	if v == nil {
		return nil, errors.New("nil u128 value")
	}
	if v.BitLen() > 128 {
		return nil, errors.Errorf("value %s overflows u128", v.Dec())
	}

	be := v.Bytes32()
	out := make([]byte, 16)
	for i := 0; i < 16; i++ {
		out[i] = be[31-i]
	}
	return out, nil
}

// EncodeAddress returns the BCS bytes of an address.
func EncodeAddress(s string) ([]byte, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return addr[:], nil
}
