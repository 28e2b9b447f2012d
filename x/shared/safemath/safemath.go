package safemath

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// Fixed-point conventions shared by every pricing component. All monetary
// quantities are unsigned integers in the asset's smallest unit; divisions
// truncate toward zero so rounding dust always stays with the pool.
var (
	// Scale is the 18-decimal fixed-point scale used for prices and
	// ETH-denominated amounts.
	Scale = math.NewIntWithDecimal(1, 18)

	// StableScale is the 6-decimal scale used for USDC-like assets.
	StableScale = math.NewIntWithDecimal(1, 6)

	// OracleScale is the 8-decimal scale used for oracle price submissions.
	OracleScale = math.NewIntWithDecimal(1, 8)

	// BpsDenominator converts basis-point ratios: 10000 bps = 100%.
	BpsDenominator = math.NewInt(10000)
)

// Sqrt returns the integer square root of x (the largest s with s*s <= x).
func Sqrt(x math.Int) (math.Int, error) {
	if x.IsNegative() {
		return math.Int{}, fmt.Errorf("square root of negative value %s", x.String())
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt())), nil
}

// Min returns the smaller of a and b.
func Min(a, b math.Int) math.Int {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}

// MulDiv computes (a * b) / c with floor division.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, fmt.Errorf("division by zero")
	}
	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return math.NewIntFromBigInt(product.Quo(product, c.BigInt())), nil
}

// SafeSub subtracts b from a, failing on underflow. Balances and reserves
// are unsigned quantities so a negative intermediate is always a bug.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, fmt.Errorf("underflow: cannot subtract %s from %s", b.String(), a.String())
	}
	return a.Sub(b), nil
}

// DeviationBps returns |a-b| * 10000 / b, the relative deviation of a from
// the reference value b in basis points. Floor division, matching the
// integer-only percentage math used across the oracle.
func DeviationBps(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, fmt.Errorf("deviation reference cannot be zero")
	}
	diff := a.Sub(b).Abs()
	return MulDiv(diff, BpsDenominator, b)
}

// WithinBps reports whether a deviates from b by no more than maxBps.
func WithinBps(a, b math.Int, maxBps math.Int) (bool, error) {
	dev, err := DeviationBps(a, b)
	if err != nil {
		return false, err
	}
	return dev.LTE(maxBps), nil
}
