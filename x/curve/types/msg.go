package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the curve message server interface.
type MsgServer interface {
	CreateAsset(context.Context, *MsgCreateAsset) (*MsgCreateAssetResponse, error)
	Buy(context.Context, *MsgBuy) (*MsgBuyResponse, error)
	Sell(context.Context, *MsgSell) (*MsgSellResponse, error)
	RaisePriceFloor(context.Context, *MsgRaisePriceFloor) (*MsgRaisePriceFloorResponse, error)
}

// MsgCreateAsset defines a message to deploy a new bonding-curve asset.
type MsgCreateAsset struct {
	Creator string `json:"creator"`
	Denom   string `json:"denom"`
}

// ValidateBasic performs stateless validation.
func (msg MsgCreateAsset) ValidateBasic() error {
	if msg.Creator == "" {
		return ErrInvalidInput.Wrap("creator cannot be empty")
	}
	if msg.Denom == "" {
		return ErrInvalidInput.Wrap("denom cannot be empty")
	}
	return nil
}

// MsgCreateAssetResponse defines the response for CreateAsset.
type MsgCreateAssetResponse struct {
	Denom string `json:"denom"`
}

// MsgBuy defines a message to buy curve tokens with ETH.
type MsgBuy struct {
	Buyer        string   `json:"buyer"`
	Denom        string   `json:"denom"`
	EthIn        math.Int `json:"eth_in"`
	MinTokensOut math.Int `json:"min_tokens_out"`
}

// ValidateBasic performs stateless validation.
func (msg MsgBuy) ValidateBasic() error {
	if msg.Buyer == "" {
		return ErrInvalidInput.Wrap("buyer cannot be empty")
	}
	if msg.Denom == "" {
		return ErrInvalidInput.Wrap("denom cannot be empty")
	}
	if msg.EthIn.IsNil() || !msg.EthIn.IsPositive() {
		return ErrInvalidInput.Wrap("eth in must be positive")
	}
	if msg.MinTokensOut.IsNil() || msg.MinTokensOut.IsNegative() {
		return ErrInvalidInput.Wrap("min tokens out cannot be negative")
	}
	return nil
}

// MsgBuyResponse defines the response for Buy.
type MsgBuyResponse struct {
	TokensOut math.Int `json:"tokens_out"`
}

// MsgSell defines a message to sell curve tokens back to the reserve.
type MsgSell struct {
	Seller    string   `json:"seller"`
	Denom     string   `json:"denom"`
	Tokens    math.Int `json:"tokens"`
	MinEthOut math.Int `json:"min_eth_out"`
}

// ValidateBasic performs stateless validation.
func (msg MsgSell) ValidateBasic() error {
	if msg.Seller == "" {
		return ErrInvalidInput.Wrap("seller cannot be empty")
	}
	if msg.Denom == "" {
		return ErrInvalidInput.Wrap("denom cannot be empty")
	}
	if msg.Tokens.IsNil() || !msg.Tokens.IsPositive() {
		return ErrInvalidInput.Wrap("token amount must be positive")
	}
	if msg.MinEthOut.IsNil() || msg.MinEthOut.IsNegative() {
		return ErrInvalidInput.Wrap("min eth out cannot be negative")
	}
	return nil
}

// MsgSellResponse defines the response for Sell.
type MsgSellResponse struct {
	EthOut math.Int `json:"eth_out"`
}

// MsgRaisePriceFloor defines a message to raise an asset's price floor.
type MsgRaisePriceFloor struct {
	Authority string   `json:"authority"`
	Denom     string   `json:"denom"`
	NewFloor  math.Int `json:"new_floor"`
}

// ValidateBasic performs stateless validation.
func (msg MsgRaisePriceFloor) ValidateBasic() error {
	if msg.Authority == "" {
		return ErrInvalidInput.Wrap("authority cannot be empty")
	}
	if msg.Denom == "" {
		return ErrInvalidInput.Wrap("denom cannot be empty")
	}
	if msg.NewFloor.IsNil() || msg.NewFloor.IsNegative() {
		return ErrInvalidInput.Wrap("floor cannot be negative")
	}
	return nil
}

// MsgRaisePriceFloorResponse defines the response for RaisePriceFloor.
type MsgRaisePriceFloorResponse struct{}
