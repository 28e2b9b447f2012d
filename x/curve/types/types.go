package types

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/thryx-chain/thryx/x/shared/safemath"
)

const (
	// ModuleName defines the module name
	ModuleName = "curve"
)

// CurveParams are the per-asset pricing constants. The unit price at a given
// circulating supply is
//
//	price(s) = BasePrice + (s/CurveScale)^2 * GrowthFactor / ScalingConstant
//
// clamped from below by the asset's price floor. CurveScale normalizes the
// smallest-unit supply into whole tokens so the squared term stays bounded.
type CurveParams struct {
	BasePrice       math.Int `json:"base_price"`
	GrowthFactor    math.Int `json:"growth_factor"`
	ScalingConstant math.Int `json:"scaling_constant"`
	CurveScale      math.Int `json:"curve_scale"`
}

// DefaultCurveParams returns the deployment defaults: base price 0.0001 ETH
// per token at zero supply.
func DefaultCurveParams() CurveParams {
	return CurveParams{
		BasePrice:       math.NewIntWithDecimal(1, 14),
		GrowthFactor:    math.NewIntWithDecimal(1, 9),
		ScalingConstant: math.NewInt(1000),
		CurveScale:      safemath.Scale,
	}
}

// Validate checks curve constants.
func (p CurveParams) Validate() error {
	if p.BasePrice.IsNil() || !p.BasePrice.IsPositive() {
		return fmt.Errorf("base price must be positive")
	}
	if p.GrowthFactor.IsNil() || p.GrowthFactor.IsNegative() {
		return fmt.Errorf("growth factor must be non-negative")
	}
	if p.ScalingConstant.IsNil() || !p.ScalingConstant.IsPositive() {
		return fmt.Errorf("scaling constant must be positive")
	}
	if p.CurveScale.IsNil() || !p.CurveScale.IsPositive() {
		return fmt.Errorf("curve scale must be positive")
	}
	return nil
}

// Asset is a bonding-curve token: supply-indexed pricing against an ETH
// backing reserve, with a monotonically non-decreasing price floor.
type Asset struct {
	Denom       string      `json:"denom"`
	Creator     string      `json:"creator"`
	Supply      math.Int    `json:"supply"`
	Reserve     math.Int    `json:"reserve"`
	PriceFloor  math.Int    `json:"price_floor"`
	AllTimeHigh math.Int    `json:"all_time_high"`
	Curve       CurveParams `json:"curve"`
}

// Validate checks structural asset invariants.
func (a Asset) Validate() error {
	if a.Denom == "" {
		return fmt.Errorf("asset denom cannot be empty")
	}
	if a.Creator == "" {
		return fmt.Errorf("asset creator cannot be empty")
	}
	for name, v := range map[string]math.Int{
		"supply":        a.Supply,
		"reserve":       a.Reserve,
		"price floor":   a.PriceFloor,
		"all-time high": a.AllTimeHigh,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("asset %s must be non-negative", name)
		}
	}
	return a.Curve.Validate()
}

// CurrentPrice evaluates the curve at the given supply. Pure function; this
// is the single pricing source used by buys, sells and quoting alike.
func (a Asset) CurrentPrice(supply math.Int) math.Int {
	normalized := supply.Quo(a.Curve.CurveScale)
	growth := normalized.Mul(normalized).Mul(a.Curve.GrowthFactor).Quo(a.Curve.ScalingConstant)
	price := a.Curve.BasePrice.Add(growth)
	return safemath.Max(price, a.PriceFloor)
}
