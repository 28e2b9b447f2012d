package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Params holds AMM module parameters. The swap fee is an integer
// numerator/denominator pair so all fee math stays in integer space:
// the trader's effective input is amountIn * FeeNumerator / FeeDenominator
// and the remainder accrues to the pool.
type Params struct {
	FeeNumerator   math.Int `json:"fee_numerator"`
	FeeDenominator math.Int `json:"fee_denominator"`
	MinLiquidity   math.Int `json:"min_liquidity"`
}

// DefaultParams returns default AMM parameters: a 0.3% swap fee.
func DefaultParams() Params {
	return Params{
		FeeNumerator:   math.NewInt(997),
		FeeDenominator: math.NewInt(1000),
		MinLiquidity:   math.NewInt(1000),
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.FeeDenominator.IsNil() || !p.FeeDenominator.IsPositive() {
		return fmt.Errorf("fee denominator must be positive")
	}
	if p.FeeNumerator.IsNil() || p.FeeNumerator.IsNegative() {
		return fmt.Errorf("fee numerator must be non-negative")
	}
	if p.FeeNumerator.GT(p.FeeDenominator) {
		return fmt.Errorf("fee numerator %s exceeds denominator %s", p.FeeNumerator, p.FeeDenominator)
	}
	if p.MinLiquidity.IsNil() || p.MinLiquidity.IsNegative() {
		return fmt.Errorf("min liquidity must be non-negative")
	}
	return nil
}
