package keeper

import (
	"context"

	"github.com/thryx-chain/thryx/x/oracle/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns the oracle MsgServer backed by the keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

func (m *msgServer) SubmitPrice(_ context.Context, msg *types.MsgSubmitPrice) (*types.MsgSubmitPriceResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	feed, err := m.Keeper.Submit(msg.Reporter, msg.Pair, msg.Price)
	if err != nil {
		return nil, err
	}
	resp := &types.MsgSubmitPriceResponse{}
	if feed != nil {
		resp.ConsensusReached = true
		resp.ConsensusPrice = feed.Price
	}
	return resp, nil
}
