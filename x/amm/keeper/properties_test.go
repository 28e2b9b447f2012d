package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	keepertest "github.com/thryx-chain/thryx/testutil/keeper"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
)

// TestSwapConstantProductProperty drives random swap sequences against
// randomly seeded pools: reserveA*reserveB must never decrease, and must
// strictly increase on every executed trade.
func TestSwapConstantProductProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, bank := keepertest.AMMKeeper(t)

		reserveA := math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(rt, "reserveA"))
		reserveB := math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(rt, "reserveB"))

		pool, err := k.CreatePool("creator", "aeth", "uusdc")
		if err != nil {
			rt.Fatalf("create pool: %v", err)
		}
		if err := bank.MintCoins("creator",
			banktypes.NewCoin("aeth", reserveA),
			banktypes.NewCoin("uusdc", reserveB),
		); err != nil {
			rt.Fatalf("mint: %v", err)
		}
		if _, err := k.AddLiquidity("creator", pool.Id, reserveA, reserveB); err != nil {
			rt.Fatalf("seed liquidity: %v", err)
		}

		prev := reserveA.Mul(reserveB)
		swaps := rapid.IntRange(1, 10).Draw(rt, "swaps")
		for i := 0; i < swaps; i++ {
			tokenIn := "aeth"
			if rapid.Bool().Draw(rt, "sideB") {
				tokenIn = "uusdc"
			}
			amountIn := math.NewInt(rapid.Int64Range(1, 1_000_000_000_000).Draw(rt, "amountIn"))
			if err := bank.MintCoins("trader", banktypes.NewCoin(tokenIn, amountIn)); err != nil {
				rt.Fatalf("mint input: %v", err)
			}

			_, swapErr := k.Swap("trader", pool.Id, tokenIn, amountIn, math.ZeroInt())

			got, err := k.GetPool(pool.Id)
			if err != nil {
				rt.Fatalf("get pool: %v", err)
			}
			cur := got.ReserveA.Mul(got.ReserveB)
			if swapErr != nil {
				if !cur.Equal(prev) {
					rt.Fatalf("failed swap moved k: %s -> %s", prev, cur)
				}
				continue
			}
			if !cur.GT(prev) {
				rt.Fatalf("swap did not grow k: %s -> %s", prev, cur)
			}
			prev = cur
		}
	})
}

// TestLiquidityRoundTripProperty adds then fully removes a random position:
// the provider can never withdraw more of either asset than deposited, so
// rounding dust always accrues to the pool.
func TestLiquidityRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, bank := keepertest.AMMKeeper(t)

		amountA := math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(rt, "amountA"))
		amountB := math.NewInt(rapid.Int64Range(1_000, 1_000_000_000_000).Draw(rt, "amountB"))

		pool, err := k.CreatePool("creator", "aeth", "uusdc")
		if err != nil {
			rt.Fatalf("create pool: %v", err)
		}
		if err := bank.MintCoins("provider",
			banktypes.NewCoin("aeth", amountA),
			banktypes.NewCoin("uusdc", amountB),
		); err != nil {
			rt.Fatalf("mint: %v", err)
		}

		shares, err := k.AddLiquidity("provider", pool.Id, amountA, amountB)
		if err != nil {
			rt.Fatalf("add liquidity: %v", err)
		}

		outA, outB, err := k.RemoveLiquidity("provider", pool.Id, shares)
		if err != nil {
			rt.Fatalf("remove liquidity: %v", err)
		}
		if outA.GT(amountA) || outB.GT(amountB) {
			rt.Fatalf("round trip paid out more than deposited: %s/%s > %s/%s",
				outA, outB, amountA, amountB)
		}

		got, err := k.GetPool(pool.Id)
		if err != nil {
			rt.Fatalf("get pool: %v", err)
		}
		if got.ReserveA.IsNegative() || got.ReserveB.IsNegative() {
			rt.Fatalf("reserves went negative: %s/%s", got.ReserveA, got.ReserveB)
		}
	})
}
