package safemath_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/thryx-chain/thryx/x/shared/safemath"
)

func TestSqrt(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"perfect square", 144, 12},
		{"rounds down", 145, 12},
		{"just below next square", 168, 12},
		{"large", 1_000_000_000_000, 1_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := safemath.Sqrt(math.NewInt(tt.in))
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tt.want), got)
		})
	}
}

func TestSqrtNegative(t *testing.T) {
	_, err := safemath.Sqrt(math.NewInt(-1))
	require.Error(t, err)
}

func TestSqrtLargeProduct(t *testing.T) {
	// sqrt(10000e6 * 10e18) for the USDC/ETH seed pool: the geometric mean
	// of the two reserves must be exact floor sqrt.
	product := math.NewInt(10000).Mul(safemath.StableScale).
		Mul(math.NewInt(10).Mul(safemath.Scale))
	got, err := safemath.Sqrt(product)
	require.NoError(t, err)
	require.True(t, got.Mul(got).LTE(product))
	next := got.AddRaw(1)
	require.True(t, next.Mul(next).GT(product))
}

func TestMulDiv(t *testing.T) {
	got, err := safemath.MulDiv(math.NewInt(7), math.NewInt(3), math.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10), got) // 21/2 floors to 10

	_, err = safemath.MulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.Error(t, err)
}

func TestSafeSub(t *testing.T) {
	got, err := safemath.SafeSub(math.NewInt(5), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2), got)

	_, err = safemath.SafeSub(math.NewInt(3), math.NewInt(5))
	require.Error(t, err)
}

func TestDeviationBps(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want int64
	}{
		{"exact", 100, 100, 0},
		{"two percent", 102, 100, 200},
		{"two percent below", 98, 100, 200},
		{"ten percent", 110, 100, 1000},
		{"floor division", 1000, 999, 10}, // 1*10000/999 = 10.01 -> 10
		{"way off", 1000, 100, 90000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := safemath.DeviationBps(math.NewInt(tt.a), math.NewInt(tt.b))
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tt.want), got)
		})
	}

	_, err := safemath.DeviationBps(math.NewInt(1), math.ZeroInt())
	require.Error(t, err)
}

func TestMinMax(t *testing.T) {
	a, b := math.NewInt(3), math.NewInt(9)
	require.Equal(t, a, safemath.Min(a, b))
	require.Equal(t, b, safemath.Max(a, b))
	require.Equal(t, a, safemath.Min(b, a))
}
