package types

import (
	"cosmossdk.io/math"

	banktypes "github.com/thryx-chain/thryx/x/bank/types"
)

// BankKeeper defines the ledger interface the curve module needs: settling
// ETH payments through the module escrow and minting/burning the curve
// token itself.
type BankKeeper interface {
	SendCoins(from, to string, coins ...banktypes.Coin) error
	MintCoins(addr string, coins ...banktypes.Coin) error
	BurnCoins(addr string, coins ...banktypes.Coin) error
	GetBalance(addr, denom string) math.Int
}
