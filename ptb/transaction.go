package ptb

import (
	"github.com/easypmnt/sui-swap-api/utils"
	"github.com/pkg/errors"
)

// transactionKindProgrammable is the TransactionKind variant index on the wire.
const transactionKindProgrammable = 0

// ProgrammableTransaction is a finalized, immutable program.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

// MarshalBCS returns the BCS bytes of the program wrapped as a TransactionKind,
// the payload expected by dev-inspect and by transaction data builders.
func (p *ProgrammableTransaction) MarshalBCS() ([]byte, error) {
	var e bcsEncoder
	e.u8(transactionKindProgrammable)

	e.uleb128(uint64(len(p.Inputs)))
	for i, in := range p.Inputs {
		if err := e.callArg(in); err != nil {
			return nil, errors.Wrapf(err, "failed to encode input %d", i)
		}
	}

	e.uleb128(uint64(len(p.Commands)))
	for i, cmd := range p.Commands {
		if err := cmd.encode(&e); err != nil {
			return nil, errors.Wrapf(err, "failed to encode command %d", i)
		}
	}

	return e.Bytes(), nil
}

// EncodeBase64 returns the base64 encoded BCS bytes of the program.
func (p *ProgrammableTransaction) EncodeBase64() (string, error) {
	b, err := p.MarshalBCS()
	if err != nil {
		return "", errors.Wrap(err, "failed to build transaction: serialize")
	}
	return utils.BytesToBase64(b), nil
}

// MoveCalls returns the Move call commands in program order.
func (p *ProgrammableTransaction) MoveCalls() []*MoveCall {
	var calls []*MoveCall
	for _, cmd := range p.Commands {
		if c, ok := cmd.(*MoveCall); ok {
			calls = append(calls, c)
		}
	}
	return calls
}
