package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds module-level curve parameters: the payment denom buys are
// settled in, the fee split, and where the protocol fee goes. Fees are in
// basis points and come off the top of every buy and sell.
type Params struct {
	PaymentDenom    string   `json:"payment_denom"`
	CreatorFeeBps   math.Int `json:"creator_fee_bps"`
	ProtocolFeeBps  math.Int `json:"protocol_fee_bps"`
	TreasuryAddress string   `json:"treasury_address"`
}

// DefaultParams returns the deployment defaults: 5% creator fee, 1%
// protocol fee.
func DefaultParams() Params {
	return Params{
		PaymentDenom:    "aeth",
		CreatorFeeBps:   math.NewInt(500),
		ProtocolFeeBps:  math.NewInt(100),
		TreasuryAddress: "thryx-module/treasury",
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.PaymentDenom == "" {
		return fmt.Errorf("payment denom cannot be empty")
	}
	if p.TreasuryAddress == "" {
		return fmt.Errorf("treasury address cannot be empty")
	}
	for name, v := range map[string]math.Int{
		"creator fee":  p.CreatorFeeBps,
		"protocol fee": p.ProtocolFeeBps,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if p.CreatorFeeBps.Add(p.ProtocolFeeBps).GTE(math.NewInt(10000)) {
		return fmt.Errorf("combined fees must stay below 100%%")
	}
	return nil
}
