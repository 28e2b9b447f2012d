package types

import (
	"fmt"
	"sort"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "bank"

	// Event types
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"
	EventTypeBurn     = "burn"

	// Event attribute keys
	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
	AttributeKeyDenom     = "denom"
)

// Coin is a denominated amount in the denom's smallest unit.
type Coin struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

// NewCoin creates a coin.
func NewCoin(denom string, amount math.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

// Validate checks the coin is well formed and non-negative.
func (c Coin) Validate() error {
	if c.Denom == "" {
		return fmt.Errorf("coin denom cannot be empty")
	}
	if c.Amount.IsNil() || c.Amount.IsNegative() {
		return fmt.Errorf("coin amount must be non-negative: %s", c.Amount)
	}
	return nil
}

// String implements fmt.Stringer.
func (c Coin) String() string {
	return fmt.Sprintf("%s%s", c.Amount, c.Denom)
}

// Balance is an address's holdings in one denom, used for genesis state.
type Balance struct {
	Address string   `json:"address"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// SortBalances orders balances deterministically for export.
func SortBalances(balances []Balance) {
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Address != balances[j].Address {
			return balances[i].Address < balances[j].Address
		}
		return balances[i].Denom < balances[j].Denom
	})
}
