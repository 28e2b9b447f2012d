package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the AMM message server interface.
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
}

// MsgCreatePool defines a message to create a new empty liquidity pool.
type MsgCreatePool struct {
	Creator string `json:"creator"`
	TokenA  string `json:"token_a"`
	TokenB  string `json:"token_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgCreatePool) ValidateBasic() error {
	if msg.Creator == "" {
		return ErrInvalidInput.Wrap("creator cannot be empty")
	}
	if msg.TokenA == "" || msg.TokenB == "" {
		return ErrInvalidTokenPair.Wrap("token denominations cannot be empty")
	}
	if msg.TokenA == msg.TokenB {
		return ErrInvalidTokenPair.Wrap("tokens must be different")
	}
	return nil
}

// MsgCreatePoolResponse defines the response for CreatePool.
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgAddLiquidity defines a message to deposit both assets into a pool.
type MsgAddLiquidity struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
}

// ValidateBasic performs stateless validation.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if msg.Provider == "" {
		return ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if msg.PoolId == 0 {
		return ErrInvalidInput.Wrap("pool id cannot be zero")
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return ErrInvalidInput.Wrap("amount A must be positive")
	}
	if msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return ErrInvalidInput.Wrap("amount B must be positive")
	}
	return nil
}

// MsgAddLiquidityResponse defines the response for AddLiquidity.
type MsgAddLiquidityResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgRemoveLiquidity defines a message to burn shares for both assets.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	Shares   math.Int `json:"shares"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if msg.Provider == "" {
		return ErrInvalidInput.Wrap("provider cannot be empty")
	}
	if msg.PoolId == 0 {
		return ErrInvalidInput.Wrap("pool id cannot be zero")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return ErrInvalidInput.Wrap("shares must be positive")
	}
	return nil
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwap defines a message to swap one pool asset for the other.
type MsgSwap struct {
	Trader       string   `json:"trader"`
	PoolId       uint64   `json:"pool_id"`
	TokenIn      string   `json:"token_in"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSwap) ValidateBasic() error {
	if msg.Trader == "" {
		return ErrInvalidInput.Wrap("trader cannot be empty")
	}
	if msg.PoolId == 0 {
		return ErrInvalidInput.Wrap("pool id cannot be zero")
	}
	if msg.TokenIn == "" {
		return ErrInvalidTokenPair.Wrap("token in cannot be empty")
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return ErrInvalidInput.Wrap("amount in must be positive")
	}
	if msg.MinAmountOut.IsNil() || msg.MinAmountOut.IsNegative() {
		return ErrInvalidInput.Wrap("min amount out cannot be negative")
	}
	return nil
}

// MsgSwapResponse defines the response for Swap.
type MsgSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}
