package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidInput                = errors.Register(ModuleName, 1, "invalid input")
	ErrInvalidTokenPair            = errors.Register(ModuleName, 2, "invalid token pair")
	ErrPoolNotFound                = errors.Register(ModuleName, 3, "pool not found")
	ErrPoolAlreadyExists           = errors.Register(ModuleName, 4, "pool already exists")
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 5, "insufficient liquidity")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 6, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 7, "insufficient liquidity burned")
	ErrSlippageExceeded            = errors.Register(ModuleName, 8, "slippage exceeded")
	ErrInsufficientShares          = errors.Register(ModuleName, 9, "insufficient liquidity shares")
	ErrInvalidPoolState            = errors.Register(ModuleName, 10, "invalid pool state")
)
