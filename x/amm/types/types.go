package types

import (
	"fmt"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"
)

// Pool holds the two reserves of a trading pair plus the liquidity-share
// ledger totals. Tokens are stored in lexicographic order. The constant
// product ReserveA*ReserveB never decreases across a swap; the 0.3% fee
// stays in the reserves and makes it strictly increase.
type Pool struct {
	Id           uint64   `json:"id"`
	TokenA       string   `json:"token_a"`
	TokenB       string   `json:"token_b"`
	ReserveA     math.Int `json:"reserve_a"`
	ReserveB     math.Int `json:"reserve_b"`
	TotalShares  math.Int `json:"total_shares"`
	AccruedFeesA math.Int `json:"accrued_fees_a"`
	AccruedFeesB math.Int `json:"accrued_fees_b"`
	Creator      string   `json:"creator"`
}

// Validate checks structural pool invariants.
func (p Pool) Validate() error {
	if p.TokenA == "" || p.TokenB == "" {
		return fmt.Errorf("pool tokens cannot be empty")
	}
	if p.TokenA == p.TokenB {
		return fmt.Errorf("pool tokens must differ")
	}
	if p.TokenA > p.TokenB {
		return fmt.Errorf("pool tokens must be lexicographically ordered: %s > %s", p.TokenA, p.TokenB)
	}
	for name, v := range map[string]math.Int{
		"reserve A":      p.ReserveA,
		"reserve B":      p.ReserveB,
		"total shares":   p.TotalShares,
		"accrued fees A": p.AccruedFeesA,
		"accrued fees B": p.AccruedFeesB,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("pool %s must be non-negative", name)
		}
	}
	// A pool with reserves but no shares (or vice versa) is corrupted.
	if p.TotalShares.IsZero() != (p.ReserveA.IsZero() && p.ReserveB.IsZero()) {
		return fmt.Errorf("pool shares and reserves out of sync")
	}
	return nil
}

// HasToken reports whether denom is one of the pool's two assets.
func (p Pool) HasToken(denom string) bool {
	return denom == p.TokenA || denom == p.TokenB
}

// OtherToken returns the counterpart asset for denom.
func (p Pool) OtherToken(denom string) string {
	if denom == p.TokenA {
		return p.TokenB
	}
	return p.TokenA
}

// SharePosition is a provider's stake in one pool, used for genesis state.
type SharePosition struct {
	PoolId   uint64   `json:"pool_id"`
	Provider string   `json:"provider"`
	Shares   math.Int `json:"shares"`
}
