package app_test

import (
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/thryx-chain/thryx/app"
	banktypes "github.com/thryx-chain/thryx/x/bank/types"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	return app.New("thryx-test-1", log.NewNopLogger())
}

// Exercises the whole stack the way a node would: fund accounts, seed a
// pool, trade against it, reach oracle consensus, and round-trip the
// resulting state through a genesis file.
func TestFullStackGenesisRoundTrip(t *testing.T) {
	a := newApp(t)

	oneEth := safemath.Scale
	require.NoError(t, a.BankKeeper.MintCoins("alice",
		banktypes.NewCoin("aeth", math.NewInt(100).Mul(oneEth)),
		banktypes.NewCoin("uusdc", math.NewInt(1_000_000).Mul(safemath.StableScale)),
	))

	pool, err := a.AMMKeeper.CreatePool("alice", "aeth", "uusdc")
	require.NoError(t, err)
	_, err = a.AMMKeeper.AddLiquidity("alice", pool.Id,
		math.NewInt(10).Mul(oneEth),
		math.NewInt(10_000).Mul(safemath.StableScale),
	)
	require.NoError(t, err)

	out, err := a.AMMKeeper.Swap("alice", pool.Id, "uusdc",
		math.NewInt(100).Mul(safemath.StableScale), math.NewInt(1))
	require.NoError(t, err)
	require.True(t, out.IsPositive())

	for _, agent := range []string{"oracle-1", "oracle-2", "oracle-3"} {
		_, err := a.RegistryKeeper.RegisterAgent(agent, math.NewInt(1_000_000), "oracle", "")
		require.NoError(t, err)
	}
	_, err = a.OracleKeeper.Submit("oracle-1", "ETH/USD", math.NewInt(3000).Mul(safemath.OracleScale))
	require.NoError(t, err)
	_, err = a.OracleKeeper.Submit("oracle-2", "ETH/USD", math.NewInt(3010).Mul(safemath.OracleScale))
	require.NoError(t, err)
	feed, err := a.OracleKeeper.Submit("oracle-3", "ETH/USD", math.NewInt(2990).Mul(safemath.OracleScale))
	require.NoError(t, err)
	require.NotNil(t, feed)

	_, err = a.CurveKeeper.CreateAsset("alice", "ualice")
	require.NoError(t, err)
	tokens, err := a.CurveKeeper.Buy("alice", "ualice", oneEth, math.ZeroInt())
	require.NoError(t, err)
	require.True(t, tokens.IsPositive())

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, a.ExportGenesisFile(path))

	restored := app.New("", log.NewNopLogger())
	require.NoError(t, restored.ImportGenesisFile(path))
	require.Equal(t, "thryx-test-1", restored.ChainID)

	require.Equal(t,
		a.BankKeeper.GetBalance("alice", "aeth"),
		restored.BankKeeper.GetBalance("alice", "aeth"),
	)

	restoredPool, err := restored.AMMKeeper.GetPool(pool.Id)
	require.NoError(t, err)
	origPool, err := a.AMMKeeper.GetPool(pool.Id)
	require.NoError(t, err)
	require.Equal(t, origPool.ReserveA, restoredPool.ReserveA)
	require.Equal(t, origPool.ReserveB, restoredPool.ReserveB)

	price, _, _, err := restored.OracleKeeper.GetPrice("ETH/USD")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3000).Mul(safemath.OracleScale), price)

	asset, err := restored.CurveKeeper.GetAsset("ualice")
	require.NoError(t, err)
	require.Equal(t, tokens, asset.Supply)
}

func TestEventBusSharedAcrossModules(t *testing.T) {
	a := newApp(t)

	ch, cancel := a.Events.Subscribe(16)
	defer cancel()

	require.NoError(t, a.BankKeeper.MintCoins("bob",
		banktypes.NewCoin("aeth", safemath.Scale)))

	ev := <-ch
	require.Equal(t, banktypes.EventTypeMint, ev.Type)
}
