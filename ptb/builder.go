// Package ptb builds Sui programmable transaction blocks symbolically:
// every appended command returns an Argument handle that later commands
// can consume, and the finished program is encoded once into its BCS form.
package ptb

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Predefined errors.
var (
	ErrAlreadyFinalized = errors.New("transaction builder already finalized")
	ErrTooManyCommands  = errors.New("too many commands or inputs")
)

// Builder is an append-only arena of inputs and commands.
// It is not safe for concurrent use: one builder has exactly one writer.
type Builder struct {
	inputs   []CallArg
	commands []Command
	objects  map[string]uint16 // normalized object id -> input index

	err       error // first deferred error, reported by Finalize
	finalized bool
}

// NewBuilder returns an empty transaction builder.
func NewBuilder() *Builder {
	return &Builder{objects: make(map[string]uint16)}
}

// Err returns the first deferred error recorded while building, if any.
func (b *Builder) Err() error {
	return b.err
}

// Inputs returns the inputs recorded so far.
func (b *Builder) Inputs() []CallArg {
	return b.inputs
}

// Commands returns the commands recorded so far.
func (b *Builder) Commands() []Command {
	return b.commands
}

// Abort marks the builder as failed so that Finalize reports err.
// It is used by callers that give up halfway through appending commands.
func (b *Builder) Abort(err error) {
	if err != nil {
		b.fail(err)
	}
}

// Finalized reports whether Finalize has already been called.
func (b *Builder) Finalized() bool {
	return b.finalized
}

func (b *Builder) mustBeOpen() {
	if b.finalized {
		panic(ErrAlreadyFinalized)
	}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) addInput(arg CallArg) Argument {
	b.mustBeOpen()
	if len(b.inputs) >= math.MaxUint16 {
		b.fail(ErrTooManyCommands)
	}
	b.inputs = append(b.inputs, arg)
	return Argument{Kind: ArgumentInput, Index: uint16(len(b.inputs) - 1)}
}

func (b *Builder) addCommand(cmd Command) Argument {
	b.mustBeOpen()
	if len(b.commands) >= math.MaxUint16 {
		b.fail(ErrTooManyCommands)
	}
	b.commands = append(b.commands, cmd)
	return Argument{Kind: ArgumentResult, Index: uint16(len(b.commands) - 1)}
}

// Gas returns the gas coin argument.
func (b *Builder) Gas() Argument {
	return GasCoin()
}

// Pure adds an input carrying already BCS encoded bytes.
func (b *Builder) Pure(value []byte) Argument {
	return b.addInput(CallArg{Pure: value})
}

// PureU8 adds a u8 input.
func (b *Builder) PureU8(v uint8) Argument {
	return b.Pure([]byte{v})
}

// PureU16 adds a u16 input.
func (b *Builder) PureU16(v uint16) Argument {
	return b.Pure(EncodeU16(v))
}

// PureU64 adds a u64 input.
func (b *Builder) PureU64(v uint64) Argument {
	return b.Pure(EncodeU64(v))
}

// PureBool adds a bool input.
func (b *Builder) PureBool(v bool) Argument {
	return b.Pure(EncodeBool(v))
}

// PureU128 adds a u128 input.
func (b *Builder) PureU128(v *uint256.Int) (Argument, error) {
	enc, err := EncodeU128(v)
	if err != nil {
		return Argument{}, err
	}
	return b.Pure(enc), nil
}

// PureAddress adds an address input.
func (b *Builder) PureAddress(addr string) (Argument, error) {
	enc, err := EncodeAddress(addr)
	if err != nil {
		return Argument{}, err
	}
	return b.Pure(enc), nil
}

// Object adds an object input. The same object is only added once; a shared
// object requested both mutably and immutably is passed mutably.
func (b *Builder) Object(obj ObjectArg) Argument {
	b.mustBeOpen()

	key, err := NormalizeAddress(obj.ID)
	if err != nil {
		b.fail(errors.Wrap(err, "object input"))
		key = obj.ID
	}

	if idx, ok := b.objects[key]; ok {
		existing := b.inputs[idx].Object
		if existing.Kind == ObjectShared && obj.Kind == ObjectShared && obj.Mutable {
			existing.Mutable = true
		}
		return Argument{Kind: ArgumentInput, Index: idx}
	}

	o := obj
	arg := b.addInput(CallArg{Object: &o})
	b.objects[key] = arg.Index
	return arg
}

// Clock adds the shared clock object.
func (b *Builder) Clock() Argument {
	return b.Object(SharedObject(ClockObjectID, 1, false))
}

// SystemState adds the shared Sui system state object.
func (b *Builder) SystemState() Argument {
	return b.Object(SharedObject(SystemStateObjectID, 1, true))
}

// MoveCall appends a Move call and returns a handle to its first output.
// Use Argument.Nested to select other outputs.
func (b *Builder) MoveCall(call MoveCall) Argument {
	c := call
	return b.addCommand(&c)
}

// SplitCoins splits coin into one new coin per amount and returns their handles.
func (b *Builder) SplitCoins(coin Argument, amounts ...Argument) []Argument {
	res := b.addCommand(&SplitCoins{Coin: coin, Amounts: amounts})
	return res.Split(len(amounts))
}

// SplitCoinsU64 is SplitCoins with pure u64 amounts.
func (b *Builder) SplitCoinsU64(coin Argument, amounts ...uint64) []Argument {
	args := make([]Argument, 0, len(amounts))
	for _, a := range amounts {
		args = append(args, b.PureU64(a))
	}
	return b.SplitCoins(coin, args...)
}

// MergeCoins merges sources into destination.
func (b *Builder) MergeCoins(destination Argument, sources ...Argument) {
	b.addCommand(&MergeCoins{Destination: destination, Sources: sources})
}

// TransferObjects transfers objects to the given address argument.
func (b *Builder) TransferObjects(objects []Argument, address Argument) {
	b.addCommand(&TransferObjects{Objects: objects, Address: address})
}

// MakeMoveVec builds a vector of the given element type.
func (b *Builder) MakeMoveVec(elemType string, elements ...Argument) Argument {
	return b.addCommand(&MakeMoveVec{Type: elemType, Elements: elements})
}

// Finalize validates the program and seals the builder.
// It can be called only once; appending after it panics.
func (b *Builder) Finalize() (*ProgrammableTransaction, error) {
	if b.finalized {
		return nil, ErrAlreadyFinalized
	}
	b.finalized = true

	if b.err != nil {
		return nil, b.err
	}
	for _, cmd := range b.commands {
		if err := cmd.validate(); err != nil {
			return nil, err
		}
	}

	return &ProgrammableTransaction{
		Inputs:   append([]CallArg(nil), b.inputs...),
		Commands: append([]Command(nil), b.commands...),
	}, nil
}
