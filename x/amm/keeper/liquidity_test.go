package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/thryx-chain/thryx/testutil/keeper"
	ammkeeper "github.com/thryx-chain/thryx/x/amm/keeper"
	"github.com/thryx-chain/thryx/x/amm/types"
	bankkeeper "github.com/thryx-chain/thryx/x/bank/keeper"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
)

func fundedPool(t *testing.T) (*ammkeeper.Keeper, *bankkeeper.Keeper, uint64) {
	t.Helper()
	k, bank := keepertest.AMMKeeper(t)

	pool, err := k.CreatePool("creator", "aeth", "uusdc")
	require.NoError(t, err)

	require.NoError(t, bank.MintCoins("alice",
		banktypes.NewCoin("aeth", math.NewInt(1_000_000)),
		banktypes.NewCoin("uusdc", math.NewInt(1_000_000)),
	))
	require.NoError(t, bank.MintCoins("bob",
		banktypes.NewCoin("aeth", math.NewInt(1_000_000)),
		banktypes.NewCoin("uusdc", math.NewInt(1_000_000)),
	))
	return k, bank, pool.Id
}

func TestAddLiquidityFirstProviderSqrtShares(t *testing.T) {
	k, bank, poolID := fundedPool(t)

	shares, err := k.AddLiquidity("alice", poolID, math.NewInt(400), math.NewInt(900))
	require.NoError(t, err)
	// sqrt(400*900) = 600
	require.Equal(t, math.NewInt(600), shares)

	pool, err := k.GetPool(poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(400), pool.ReserveA)
	require.Equal(t, math.NewInt(900), pool.ReserveB)
	require.Equal(t, math.NewInt(600), pool.TotalShares)

	// Deposit moved to the module escrow.
	require.Equal(t, math.NewInt(400), bank.GetBalance(k.ModuleAddress(), "aeth"))
	require.Equal(t, math.NewInt(900), bank.GetBalance(k.ModuleAddress(), "uusdc"))
}

func TestAddLiquidityProportionalShares(t *testing.T) {
	k, _, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(400), math.NewInt(900))
	require.NoError(t, err)

	// Matching the ratio exactly: min(200*600/400, 450*600/900) = 300.
	shares, err := k.AddLiquidity("bob", poolID, math.NewInt(200), math.NewInt(450))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(300), shares)

	// Off-ratio deposit: the smaller leg decides. min(200*900/600 ... ) with
	// reserves now 600/1350, shares 900: min(200*900/600, 100*900/1350) =
	// min(300, 66) = 66.
	shares, err = k.AddLiquidity("bob", poolID, math.NewInt(200), math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(66), shares)
}

func TestAddLiquidityZeroSharesRejected(t *testing.T) {
	k, bank, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(1_000_000), math.NewInt(1_000_000))
	require.NoError(t, err)

	// 1 unit against a huge reserve floors to zero shares.
	_, err = k.AddLiquidity("bob", poolID, math.NewInt(1), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidityMinted)

	// Nothing moved.
	require.Equal(t, math.NewInt(1_000_000), bank.GetBalance("bob", "aeth"))
}

func TestAddLiquidityInvalidInputs(t *testing.T) {
	k, _, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.ZeroInt(), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = k.AddLiquidity("alice", 42, math.NewInt(10), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestAddLiquidityInsufficientFundsIsAtomic(t *testing.T) {
	k, _, poolID := fundedPool(t)

	// poor has no balance at all: the call fails and pool state is untouched.
	_, err := k.AddLiquidity("poor", poolID, math.NewInt(100), math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	pool, err := k.GetPool(poolID)
	require.NoError(t, err)
	require.True(t, pool.TotalShares.IsZero())
	require.True(t, pool.ReserveA.IsZero())
}

func TestRemoveLiquidityProportional(t *testing.T) {
	k, bank, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(400), math.NewInt(900))
	require.NoError(t, err)

	amountA, amountB, err := k.RemoveLiquidity("alice", poolID, math.NewInt(300))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), amountA)
	require.Equal(t, math.NewInt(450), amountB)

	pool, err := k.GetPool(poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), pool.ReserveA)
	require.Equal(t, math.NewInt(450), pool.ReserveB)
	require.Equal(t, math.NewInt(300), pool.TotalShares)

	require.Equal(t, math.NewInt(999_800), bank.GetBalance("alice", "aeth"))
}

func TestRemoveLiquidityMoreThanHeld(t *testing.T) {
	k, _, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(400), math.NewInt(900))
	require.NoError(t, err)

	_, _, err = k.RemoveLiquidity("alice", poolID, math.NewInt(601))
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	_, _, err = k.RemoveLiquidity("bob", poolID, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

func TestAddRemoveRoundTripFavorsPool(t *testing.T) {
	k, _, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)

	// Off-ratio second deposit loses the excess leg to the pool on exit.
	depositA, depositB := math.NewInt(777), math.NewInt(333)
	shares, err := k.AddLiquidity("bob", poolID, depositA, depositB)
	require.NoError(t, err)

	amountA, amountB, err := k.RemoveLiquidity("bob", poolID, shares)
	require.NoError(t, err)
	require.True(t, amountA.LTE(depositA))
	require.True(t, amountB.LTE(depositB))

	pool, err := k.GetPool(poolID)
	require.NoError(t, err)
	require.False(t, pool.ReserveA.IsNegative())
	require.False(t, pool.ReserveB.IsNegative())
}

func TestConstantProductNonDecreasingOnLiquidityOps(t *testing.T) {
	k, _, poolID := fundedPool(t)

	_, err := k.AddLiquidity("alice", poolID, math.NewInt(1000), math.NewInt(4000))
	require.NoError(t, err)
	pool, _ := k.GetPool(poolID)
	before := pool.ReserveA.Mul(pool.ReserveB)

	_, err = k.AddLiquidity("bob", poolID, math.NewInt(250), math.NewInt(1000))
	require.NoError(t, err)
	pool, _ = k.GetPool(poolID)
	after := pool.ReserveA.Mul(pool.ReserveB)
	require.True(t, after.GTE(before))
}
