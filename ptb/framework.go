package ptb

// Sui framework packages.
const (
	StdlibPackage    = "0x1"
	FrameworkPackage = "0x2"
)

// CoinType returns the type of a coin holding T.
func CoinType(t string) string {
	return FrameworkPackage + "::coin::Coin<" + t + ">"
}

func (b *Builder) framework(module, function string, typeArg string, args ...Argument) Argument {
	return b.MoveCall(MoveCall{
		Package:       FrameworkPackage,
		Module:        module,
		Function:      function,
		TypeArguments: []string{typeArg},
		Arguments:     args,
	})
}

// CoinValue calls 0x2::coin::value<T>(coin).
func (b *Builder) CoinValue(coinType string, coin Argument) Argument {
	return b.framework("coin", "value", coinType, coin)
}

// CoinZero calls 0x2::coin::zero<T>().
func (b *Builder) CoinZero(coinType string) Argument {
	return b.framework("coin", "zero", coinType)
}

// CoinIntoBalance calls 0x2::coin::into_balance<T>(coin).
func (b *Builder) CoinIntoBalance(coinType string, coin Argument) Argument {
	return b.framework("coin", "into_balance", coinType, coin)
}

// CoinFromBalance calls 0x2::coin::from_balance<T>(balance).
func (b *Builder) CoinFromBalance(coinType string, balance Argument) Argument {
	return b.framework("coin", "from_balance", coinType, balance)
}

// BalanceZero calls 0x2::balance::zero<T>().
func (b *Builder) BalanceZero(coinType string) Argument {
	return b.framework("balance", "zero", coinType)
}

// BalanceDestroyZero calls 0x2::balance::destroy_zero<T>(balance).
func (b *Builder) BalanceDestroyZero(coinType string, balance Argument) {
	b.framework("balance", "destroy_zero", coinType, balance)
}

// OptionSome calls 0x1::option::some<T>(value).
func (b *Builder) OptionSome(typ string, value Argument) Argument {
	return b.MoveCall(MoveCall{
		Package:       StdlibPackage,
		Module:        "option",
		Function:      "some",
		TypeArguments: []string{typ},
		Arguments:     []Argument{value},
	})
}

// OptionNone calls 0x1::option::none<T>().
func (b *Builder) OptionNone(typ string) Argument {
	return b.MoveCall(MoveCall{
		Package:       StdlibPackage,
		Module:        "option",
		Function:      "none",
		TypeArguments: []string{typ},
	})
}

// MergeAll merges every coin into the first one and returns it.
// A single coin is returned as is. It panics on an empty list.
func (b *Builder) MergeAll(coins ...Argument) Argument {
	if len(coins) == 0 {
		panic("ptb: merge of an empty coin list")
	}
	if len(coins) > 1 {
		b.MergeCoins(coins[0], coins[1:]...)
	}
	return coins[0]
}
