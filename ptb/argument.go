package ptb

import "fmt"

// ArgumentKind enumerates the kinds of values a command can reference.
type ArgumentKind uint8

// ArgumentKind enum. The order matches the on-chain BCS variant index.
const (
	ArgumentGasCoin ArgumentKind = iota
	ArgumentInput
	ArgumentResult
	ArgumentNestedResult
)

// Argument is a handle to an input or to the output of a command in the
// builder that produced it. It is only meaningful inside that builder.
type Argument struct {
	Kind     ArgumentKind
	Index    uint16 // Input or command index.
	SubIndex uint16 // Output slot, NestedResult only.
}

// GasCoin returns the gas coin argument.
func GasCoin() Argument {
	return Argument{Kind: ArgumentGasCoin}
}

// Nested selects output i of a command result.
// It panics when called on anything but a Result argument.
func (a Argument) Nested(i uint16) Argument {
	if a.Kind != ArgumentResult {
		panic(fmt.Sprintf("ptb: nested output of non-result argument %s", a))
	}
	return Argument{Kind: ArgumentNestedResult, Index: a.Index, SubIndex: i}
}

// Split selects the first n outputs of a multi-output command result.
func (a Argument) Split(n int) []Argument {
	out := make([]Argument, n)
	for i := range out {
		out[i] = a.Nested(uint16(i))
	}
	return out
}

// String returns a human readable representation, e.g. Result(3) or NestedResult(3,1).
func (a Argument) String() string {
	switch a.Kind {
	case ArgumentGasCoin:
		return "GasCoin"
	case ArgumentInput:
		return fmt.Sprintf("Input(%d)", a.Index)
	case ArgumentResult:
		return fmt.Sprintf("Result(%d)", a.Index)
	case ArgumentNestedResult:
		return fmt.Sprintf("NestedResult(%d,%d)", a.Index, a.SubIndex)
	default:
		return fmt.Sprintf("Argument(%d)", a.Kind)
	}
}
