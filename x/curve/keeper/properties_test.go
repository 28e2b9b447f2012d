package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	keepertest "github.com/thryx-chain/thryx/testutil/keeper"
	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	curvekeeper "github.com/thryx-chain/thryx/x/curve/keeper"
	"github.com/thryx-chain/thryx/x/curve/types"
)

func newAssetForRapid(t *testing.T, rt *rapid.T) (*curvekeeper.Keeper, *bankkeeper.Keeper) {
	k, bank := keepertest.CurveKeeper(t)
	if _, err := k.CreateAsset("creator", "ucreator"); err != nil {
		rt.Fatalf("create asset: %v", err)
	}
	return k, bank
}

func mintEth(rt *rapid.T, bank *bankkeeper.Keeper, addr string, amount math.Int) {
	if err := bank.MintCoins(addr, banktypes.NewCoin("aeth", amount)); err != nil {
		rt.Fatalf("mint: %v", err)
	}
}

// TestCurvePriceMonotonicProperty checks the pricing function over random
// supply pairs: more supply can never mean a cheaper token, and the floor
// is always respected.
func TestCurvePriceMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		floor := math.NewInt(rapid.Int64Range(0, 1_000_000_000_000_000).Draw(rt, "floor"))
		asset := types.Asset{
			Denom:      "ucreator",
			Creator:    "creator",
			PriceFloor: floor,
			Curve:      types.DefaultCurveParams(),
		}

		lo := math.NewInt(rapid.Int64Range(0, 1_000_000_000).Draw(rt, "lo")).
			Mul(asset.Curve.CurveScale)
		hi := lo.Add(math.NewInt(rapid.Int64Range(0, 1_000_000_000).Draw(rt, "delta")).
			Mul(asset.Curve.CurveScale))

		priceLo := asset.CurrentPrice(lo)
		priceHi := asset.CurrentPrice(hi)
		if priceHi.LT(priceLo) {
			rt.Fatalf("price fell with supply: p(%s)=%s > p(%s)=%s", lo, priceLo, hi, priceHi)
		}
		if priceLo.LT(floor) || priceHi.LT(floor) {
			rt.Fatalf("price below floor %s: %s / %s", floor, priceLo, priceHi)
		}
	})
}

// TestBuySequencePriceNeverFallsProperty replays random buy amounts against
// a fresh asset and checks the quoted price after each fill never drops.
func TestBuySequencePriceNeverFallsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, bank := newAssetForRapid(t, rt)

		prev, err := k.CurrentPrice("ucreator")
		if err != nil {
			rt.Fatalf("current price: %v", err)
		}

		buys := rapid.IntRange(1, 8).Draw(rt, "buys")
		for i := 0; i < buys; i++ {
			ethIn := math.NewInt(rapid.Int64Range(1_000_000, 1_000_000_000_000_000_000).Draw(rt, "ethIn"))
			mintEth(rt, bank, "buyer", ethIn)

			if _, err := k.Buy("buyer", "ucreator", ethIn, math.ZeroInt()); err != nil {
				rt.Fatalf("buy: %v", err)
			}

			cur, err := k.CurrentPrice("ucreator")
			if err != nil {
				rt.Fatalf("current price: %v", err)
			}
			if cur.LT(prev) {
				rt.Fatalf("price fell after buy: %s -> %s", prev, cur)
			}
			prev = cur
		}
	})
}
