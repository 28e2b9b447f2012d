package types

import (
	"cosmossdk.io/math"

	banktypes "github.com/thryx-chain/thryx/x/bank/types"
)

// BankKeeper defines the ledger interface the AMM module needs: moving the
// pool assets between traders and the module escrow account.
type BankKeeper interface {
	SendCoins(from, to string, coins ...banktypes.Coin) error
	GetBalance(addr, denom string) math.Int
}
