package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the oracle message server interface.
type MsgServer interface {
	SubmitPrice(context.Context, *MsgSubmitPrice) (*MsgSubmitPriceResponse, error)
}

// MsgSubmitPrice defines a message to report a price for a trading pair.
type MsgSubmitPrice struct {
	Reporter string   `json:"reporter"`
	Pair     string   `json:"pair"`
	Price    math.Int `json:"price"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSubmitPrice) ValidateBasic() error {
	if msg.Reporter == "" {
		return ErrInvalidInput.Wrap("reporter cannot be empty")
	}
	if msg.Pair == "" {
		return ErrInvalidInput.Wrap("pair cannot be empty")
	}
	if msg.Price.IsNil() || !msg.Price.IsPositive() {
		return ErrInvalidInput.Wrap("price must be positive")
	}
	return nil
}

// MsgSubmitPriceResponse defines the response for SubmitPrice.
type MsgSubmitPriceResponse struct {
	// ConsensusReached reports whether this submission completed a round.
	ConsensusReached bool `json:"consensus_reached"`
	// ConsensusPrice is the new median when a round completed, nil otherwise.
	ConsensusPrice math.Int `json:"consensus_price,omitempty"`
}
