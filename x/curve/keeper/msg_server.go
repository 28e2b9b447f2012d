package keeper

import (
	"context"

	"github.com/thryx-chain/thryx/x/curve/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns the curve MsgServer backed by the keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m *msgServer) CreateAsset(_ context.Context, msg *types.MsgCreateAsset) (*types.MsgCreateAssetResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	asset, err := m.Keeper.CreateAsset(msg.Creator, msg.Denom)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateAssetResponse{Denom: asset.Denom}, nil
}

func (m *msgServer) Buy(_ context.Context, msg *types.MsgBuy) (*types.MsgBuyResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	tokens, err := m.Keeper.Buy(msg.Buyer, msg.Denom, msg.EthIn, msg.MinTokensOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgBuyResponse{TokensOut: tokens}, nil
}

func (m *msgServer) Sell(_ context.Context, msg *types.MsgSell) (*types.MsgSellResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	eth, err := m.Keeper.Sell(msg.Seller, msg.Denom, msg.Tokens, msg.MinEthOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgSellResponse{EthOut: eth}, nil
}

func (m *msgServer) RaisePriceFloor(_ context.Context, msg *types.MsgRaisePriceFloor) (*types.MsgRaisePriceFloorResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.RaisePriceFloor(msg.Authority, msg.Denom, msg.NewFloor); err != nil {
		return nil, err
	}
	return &types.MsgRaisePriceFloorResponse{}, nil
}
