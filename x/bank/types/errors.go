package types

import (
	"cosmossdk.io/errors"
)

// Bank module sentinel errors
var (
	ErrInvalidCoin       = errors.Register(ModuleName, 1, "invalid coin")
	ErrInvalidAddress    = errors.Register(ModuleName, 2, "invalid address")
	ErrInsufficientFunds = errors.Register(ModuleName, 3, "insufficient funds")
)
