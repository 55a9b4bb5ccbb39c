package ptb

import (
	"encoding/hex"
	"strings"

	"github.com/easypmnt/sui-swap-api/swaperr"
	"github.com/pkg/errors"
)

// AddressLength is the size of a Sui address or object id in bytes.
const AddressLength = 32

// Predefined errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidType    = errors.New("invalid type tag")
)

// ParseAddress decodes a hex address with an optional 0x prefix. Short forms
// such as 0x2 are left padded with zeros.
func ParseAddress(s string) ([AddressLength]byte, error) {
	var addr [AddressLength]byte

	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if h == "" || len(h) > AddressLength*2 {
		return addr, errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return addr, errors.Wrapf(ErrInvalidAddress, "%q: %v", s, err)
	}
	copy(addr[AddressLength-len(b):], b)

	return addr, nil
}

// NormalizeAddress returns the 0x-prefixed 64 hex chars form of an address.
func NormalizeAddress(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(addr[:]), nil
}

// IsValidAddress reports whether s is a syntactically valid address.
func IsValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// TypeTagKind enumerates Move type kinds. The order matches the BCS variant index.
type TypeTagKind uint8

// TypeTagKind enum.
const (
	TypeBool TypeTagKind = iota
	TypeU8
	TypeU64
	TypeU128
	TypeAddress
	TypeSigner
	TypeVector
	TypeStruct
	TypeU16
	TypeU32
	TypeU256
)

var primitiveTypes = map[string]TypeTagKind{
	"bool":    TypeBool,
	"u8":      TypeU8,
	"u16":     TypeU16,
	"u32":     TypeU32,
	"u64":     TypeU64,
	"u128":    TypeU128,
	"u256":    TypeU256,
	"address": TypeAddress,
	"signer":  TypeSigner,
}

type (
	// TypeTag is a parsed Move type.
	TypeTag struct {
		Kind   TypeTagKind
		Elem   *TypeTag   // vector element type
		Struct *StructTag // struct type
	}

	// StructTag is a fully qualified Move struct type, e.g. 0x2::coin::Coin<0x2::sui::SUI>.
	StructTag struct {
		Address    [AddressLength]byte
		Module     string
		Name       string
		TypeParams []TypeTag
	}
)

// ParseTypeTag parses a Move type string.
func ParseTypeTag(s string) (TypeTag, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return TypeTag{}, swaperr.NewParse(s, err)
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return TypeTag{}, swaperr.NewParse(s, errors.Wrapf(ErrInvalidType, "unexpected %q at %d", p.src[p.pos:], p.pos))
	}
	return t, nil
}

// ParseStructTag parses a Move struct type string.
func ParseStructTag(s string) (StructTag, error) {
	t, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}
	if t.Kind != TypeStruct {
		return StructTag{}, swaperr.NewParse(s, errors.Wrap(ErrInvalidType, "not a struct type"))
	}
	return *t.Struct, nil
}

// TypeParams returns the type parameters of a struct type as strings,
// e.g. pkg::pool::Pool<A, B> -> [A, B].
func TypeParams(s string) ([]string, error) {
	st, err := ParseStructTag(s)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(st.TypeParams))
	for _, tp := range st.TypeParams {
		out = append(out, tp.String())
	}
	return out, nil
}

// NormalizeType returns the canonical long form of a Move type string.
// Strings that do not parse are returned unchanged.
func NormalizeType(s string) string {
	t, err := ParseTypeTag(s)
	if err != nil {
		return s
	}
	return t.String()
}

// String returns the canonical long form of the type.
func (t TypeTag) String() string {
	switch t.Kind {
	case TypeVector:
		return "vector<" + t.Elem.String() + ">"
	case TypeStruct:
		return t.Struct.String()
	}
	for name, kind := range primitiveTypes {
		if kind == t.Kind {
			return name
		}
	}
	return "unknown"
}

// String returns the canonical long form of the struct type.
func (s StructTag) String() string {
	var sb strings.Builder
	sb.WriteString("0x")
	sb.WriteString(hex.EncodeToString(s.Address[:]))
	sb.WriteString("::")
	sb.WriteString(s.Module)
	sb.WriteString("::")
	sb.WriteString(s.Name)
	if len(s.TypeParams) > 0 {
		sb.WriteString("<")
		for i, tp := range s.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tp.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(tok string) error {
	p.skipSpaces()
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return errors.Wrapf(ErrInvalidType, "expected %q at %d", tok, p.pos)
	}
	p.pos += len(tok)
	return nil
}

func (p *typeParser) peek(tok string) bool {
	p.skipSpaces()
	return strings.HasPrefix(p.src[p.pos:], tok)
}

func (p *typeParser) parseType() (TypeTag, error) {
	name := p.ident()
	if name == "" {
		return TypeTag{}, errors.Wrapf(ErrInvalidType, "empty identifier at %d", p.pos)
	}

	if kind, ok := primitiveTypes[name]; ok {
		return TypeTag{Kind: kind}, nil
	}

	if name == "vector" {
		if err := p.expect("<"); err != nil {
			return TypeTag{}, err
		}
		elem, err := p.parseType()
		if err != nil {
			return TypeTag{}, err
		}
		if err := p.expect(">"); err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: TypeVector, Elem: &elem}, nil
	}

	addr, err := ParseAddress(name)
	if err != nil {
		return TypeTag{}, err
	}
	if err := p.expect("::"); err != nil {
		return TypeTag{}, err
	}
	module := p.ident()
	if err := p.expect("::"); err != nil {
		return TypeTag{}, err
	}
	structName := p.ident()
	if module == "" || structName == "" {
		return TypeTag{}, errors.Wrap(ErrInvalidType, "empty module or struct name")
	}

	st := &StructTag{Address: addr, Module: module, Name: structName}
	if p.peek("<") {
		p.pos++
		for {
			tp, err := p.parseType()
			if err != nil {
				return TypeTag{}, err
			}
			st.TypeParams = append(st.TypeParams, tp)
			if p.peek(",") {
				p.pos++
				continue
			}
			if err := p.expect(">"); err != nil {
				return TypeTag{}, err
			}
			break
		}
	}

	return TypeTag{Kind: TypeStruct, Struct: st}, nil
}
