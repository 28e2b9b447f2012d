package types

import (
	"cosmossdk.io/errors"
)

// Curve module sentinel errors
var (
	ErrInvalidInput          = errors.Register(ModuleName, 1, "invalid input")
	ErrAssetNotFound         = errors.Register(ModuleName, 2, "curve asset not found")
	ErrAssetAlreadyExists    = errors.Register(ModuleName, 3, "curve asset already exists")
	ErrSlippageExceeded      = errors.Register(ModuleName, 4, "slippage exceeded")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 5, "insufficient backing reserve")
	ErrUnauthorized          = errors.Register(ModuleName, 6, "unauthorized")
	ErrPriceFloorDecrease    = errors.Register(ModuleName, 7, "price floor cannot decrease")
)
