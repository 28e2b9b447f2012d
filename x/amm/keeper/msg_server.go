package keeper

import (
	"context"

	"github.com/thryx-chain/thryx/x/amm/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns the AMM MsgServer backed by the keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m *msgServer) CreatePool(_ context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	pool, err := m.Keeper.CreatePool(msg.Creator, msg.TokenA, msg.TokenB)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreatePoolResponse{PoolId: pool.Id}, nil
}

func (m *msgServer) AddLiquidity(_ context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	shares, err := m.Keeper.AddLiquidity(msg.Provider, msg.PoolId, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, err
	}
	return &types.MsgAddLiquidityResponse{Shares: shares}, nil
}

func (m *msgServer) RemoveLiquidity(_ context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	amountA, amountB, err := m.Keeper.RemoveLiquidity(msg.Provider, msg.PoolId, msg.Shares)
	if err != nil {
		return nil, err
	}
	return &types.MsgRemoveLiquidityResponse{AmountA: amountA, AmountB: amountB}, nil
}

func (m *msgServer) Swap(_ context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	amountOut, err := m.Keeper.Swap(msg.Trader, msg.PoolId, msg.TokenIn, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{AmountOut: amountOut}, nil
}
