package ptb

import "github.com/pkg/errors"

// Command variant indexes on the wire.
const (
	commandMoveCall        = 0
	commandTransferObjects = 1
	commandSplitCoins      = 2
	commandMergeCoins      = 3
	commandMakeMoveVec     = 5
)

type (
	// Command is one instruction of a programmable transaction.
	Command interface {
		encode(e *bcsEncoder) error
		validate() error
	}

	// MoveCall calls a public Move function.
	MoveCall struct {
		Package       string
		Module        string
		Function      string
		TypeArguments []string
		Arguments     []Argument
	}

	// SplitCoins splits Coin into one new coin per amount.
	SplitCoins struct {
		Coin    Argument
		Amounts []Argument
	}

	// MergeCoins merges Sources into Destination.
	MergeCoins struct {
		Destination Argument
		Sources     []Argument
	}

	// TransferObjects sends Objects to Address.
	TransferObjects struct {
		Objects []Argument
		Address Argument
	}

	// MakeMoveVec builds a vector<Type> out of Elements.
	MakeMoveVec struct {
		Type     string // Optional when Elements are objects.
		Elements []Argument
	}
)

// Target returns the package::module::function string of the call.
func (c *MoveCall) Target() string {
	return c.Package + "::" + c.Module + "::" + c.Function
}

func (c *MoveCall) validate() error {
	if _, err := ParseAddress(c.Package); err != nil {
		return errors.Wrapf(err, "move call %s", c.Target())
	}
	for _, t := range c.TypeArguments {
		if _, err := ParseTypeTag(t); err != nil {
			return errors.Wrapf(err, "move call %s", c.Target())
		}
	}
	return nil
}

func (c *MoveCall) encode(e *bcsEncoder) error {
	e.u8(commandMoveCall)
	if err := e.address(c.Package); err != nil {
		return err
	}
	e.str(c.Module)
	e.str(c.Function)
	e.uleb128(uint64(len(c.TypeArguments)))
	for _, t := range c.TypeArguments {
		tag, err := ParseTypeTag(t)
		if err != nil {
			return err
		}
		e.typeTag(tag)
	}
	e.arguments(c.Arguments)
	return nil
}

func (c *SplitCoins) validate() error { return nil }

func (c *SplitCoins) encode(e *bcsEncoder) error {
	e.u8(commandSplitCoins)
	e.argument(c.Coin)
	e.arguments(c.Amounts)
	return nil
}

func (c *MergeCoins) validate() error {
	if len(c.Sources) == 0 {
		return errors.New("merge coins without sources")
	}
	return nil
}

func (c *MergeCoins) encode(e *bcsEncoder) error {
	e.u8(commandMergeCoins)
	e.argument(c.Destination)
	e.arguments(c.Sources)
	return nil
}

func (c *TransferObjects) validate() error {
	if len(c.Objects) == 0 {
		return errors.New("transfer objects without objects")
	}
	return nil
}

func (c *TransferObjects) encode(e *bcsEncoder) error {
	e.u8(commandTransferObjects)
	e.arguments(c.Objects)
	e.argument(c.Address)
	return nil
}

func (c *MakeMoveVec) validate() error {
	if c.Type == "" {
		return nil
	}
	_, err := ParseTypeTag(c.Type)
	return err
}

func (c *MakeMoveVec) encode(e *bcsEncoder) error {
	e.u8(commandMakeMoveVec)
	if c.Type == "" {
		e.u8(0)
	} else {
		tag, err := ParseTypeTag(c.Type)
		if err != nil {
			return err
		}
		e.u8(1)
		e.typeTag(tag)
	}
	e.arguments(c.Elements)
	return nil
}
