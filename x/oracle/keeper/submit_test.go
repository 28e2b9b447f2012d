package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/thryx-chain/thryx/testutil/keeper"
	oraclekeeper "github.com/thryx-chain/thryx/x/oracle/keeper"
	"github.com/thryx-chain/thryx/x/oracle/types"
	registrykeeper "github.com/thryx-chain/thryx/x/registry/keeper"
	"github.com/thryx-chain/thryx/x/shared/safemath"
)

const pairEthUsd = "ETH/USD"

// usd returns a price with the oracle's eight decimals.
func usd(whole int64) math.Int {
	return math.NewInt(whole).Mul(safemath.OracleScale)
}

func newOracle(t *testing.T, reporters ...string) (*oraclekeeper.Keeper, *registrykeeper.Keeper) {
	t.Helper()
	k, registry := keepertest.OracleKeeper(t)
	for _, addr := range reporters {
		_, err := registry.RegisterAgent(addr, math.NewInt(1_000_000), "oracle", "")
		require.NoError(t, err)
	}
	return k, registry
}

func TestSubmitUnregisteredReporter(t *testing.T) {
	k, _ := newOracle(t)

	_, err := k.Submit("ghost", pairEthUsd, usd(100))
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestSubmitInactiveReporter(t *testing.T) {
	k, registry := newOracle(t, "agent1")
	require.NoError(t, registry.SetActive("agent1", false))

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestConsensusMedianOddCount(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	feed, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)
	require.Nil(t, feed)

	feed, err = k.Submit("agent2", pairEthUsd, usd(102))
	require.NoError(t, err)
	require.Nil(t, feed)

	feed, err = k.Submit("agent3", pairEthUsd, usd(98))
	require.NoError(t, err)
	require.NotNil(t, feed)
	require.Equal(t, usd(100), feed.Price)

	price, _, stale, err := k.GetPrice(pairEthUsd)
	require.NoError(t, err)
	require.Equal(t, usd(100), price)
	require.False(t, stale)
	require.Equal(t, 0, k.PendingSubmissions(pairEthUsd))
}

func TestConsensusMedianEvenCount(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3", "agent4")

	params := types.DefaultParams()
	params.MinSubmissions = 4
	require.NoError(t, k.SetParams(params))

	for i, price := range []math.Int{usd(100), usd(102), usd(98), usd(101)} {
		reporter := []string{"agent1", "agent2", "agent3", "agent4"}[i]
		feed, err := k.Submit(reporter, pairEthUsd, price)
		require.NoError(t, err)
		if i < 3 {
			require.Nil(t, feed)
		} else {
			require.NotNil(t, feed)
			// Middle pair is {100, 101}: floored average.
			require.Equal(t, usd(100).Add(usd(101)).QuoRaw(2), feed.Price)
		}
	}
}

func TestFirstSubmissionNeverDeviationChecked(t *testing.T) {
	k, _ := newOracle(t, "agent1")

	// No consensus exists yet, so any positive price is admissible.
	feed, err := k.Submit("agent1", "OBSCURE/USD", usd(1_000_000))
	require.NoError(t, err)
	require.Nil(t, feed)
	require.Equal(t, 1, k.PendingSubmissions("OBSCURE/USD"))
}

func TestExcessiveDeviationRejectedAndScored(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3", "agent4")

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)
	_, err = k.Submit("agent2", pairEthUsd, usd(102))
	require.NoError(t, err)
	_, err = k.Submit("agent3", pairEthUsd, usd(98))
	require.NoError(t, err)

	// Consensus sits at 100; a 10x price is 90000 bps away.
	_, err = k.Submit("agent4", pairEthUsd, usd(1000))
	require.ErrorIs(t, err, types.ErrExcessiveDeviation)

	rep := k.GetReputation("agent4")
	require.Equal(t, uint64(1), rep.Total)
	require.Equal(t, uint64(0), rep.Accurate)
	require.False(t, rep.Banned)

	// The rejected price never entered the next round.
	require.Equal(t, 0, k.PendingSubmissions(pairEthUsd))
}

func TestDuplicateSubmissionRejected(t *testing.T) {
	k, _ := newOracle(t, "agent1")

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)

	_, err = k.Submit("agent1", pairEthUsd, usd(101))
	require.ErrorIs(t, err, types.ErrDuplicateSubmission)
	require.Equal(t, 1, k.PendingSubmissions(pairEthUsd))
}

func TestDuplicateCheckedBeforeDeviation(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	for i, agent := range []string{"agent1", "agent2", "agent3"} {
		_, err := k.Submit(agent, pairEthUsd, usd(100+int64(i)))
		require.NoError(t, err)
	}

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)

	// A reporter already counted in the open round is turned away before
	// the deviation gate, so a deviant repeat cannot farm extra penalties.
	_, err = k.Submit("agent1", pairEthUsd, usd(1000))
	require.ErrorIs(t, err, types.ErrDuplicateSubmission)

	rep := k.GetReputation("agent1")
	require.Equal(t, uint64(1), rep.Total)
	require.Equal(t, 1, k.PendingSubmissions(pairEthUsd))
}

func TestExpiredRoundDiscardedLazily(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	now := time.Unix(1_700_000_000, 0)
	k.SetTimeSource(func() time.Time { return now })

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)
	_, err = k.Submit("agent2", pairEthUsd, usd(102))
	require.NoError(t, err)

	// Let the window lapse; the stale submissions must not count toward
	// the next consensus.
	now = now.Add(types.DefaultSubmissionWindow + time.Second)
	require.Equal(t, 0, k.PendingSubmissions(pairEthUsd))

	feed, err := k.Submit("agent3", pairEthUsd, usd(98))
	require.NoError(t, err)
	require.Nil(t, feed)
	require.Equal(t, 1, k.PendingSubmissions(pairEthUsd))

	// The same reporters may submit again in the fresh round.
	_, err = k.Submit("agent1", pairEthUsd, usd(99))
	require.NoError(t, err)
	feed, err = k.Submit("agent2", pairEthUsd, usd(100))
	require.NoError(t, err)
	require.NotNil(t, feed)
	require.Equal(t, usd(99), feed.Price)
}

func TestAccuracyScoring(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	// 109 is 900 bps from the median of 100: admissible, but inaccurate.
	_, err := k.Submit("agent1", pairEthUsd, usd(109))
	require.NoError(t, err)
	_, err = k.Submit("agent2", pairEthUsd, usd(100))
	require.NoError(t, err)
	feed, err := k.Submit("agent3", pairEthUsd, usd(100))
	require.NoError(t, err)
	require.NotNil(t, feed)
	require.Equal(t, usd(100), feed.Price)

	require.Equal(t, uint64(0), k.GetReputation("agent1").Accurate)
	require.Equal(t, uint64(1), k.GetReputation("agent2").Accurate)
	require.Equal(t, uint64(1), k.GetReputation("agent3").Accurate)
	for _, agent := range []string{"agent1", "agent2", "agent3"} {
		require.Equal(t, uint64(1), k.GetReputation(agent).Total)
	}
}

func TestChronicallyInaccurateReporterBanned(t *testing.T) {
	k, _ := newOracle(t, "bad", "good1", "good2")

	// Every round the bad reporter prices 9% above the pack, staying under
	// the deviation limit but far outside the accuracy band.
	for i := 0; i < int(types.DefaultBanMinSubmissions); i++ {
		_, err := k.Submit("bad", pairEthUsd, usd(109))
		require.NoError(t, err)
		_, err = k.Submit("good1", pairEthUsd, usd(100))
		require.NoError(t, err)
		feed, err := k.Submit("good2", pairEthUsd, usd(100))
		require.NoError(t, err)
		require.NotNil(t, feed)
	}

	rep := k.GetReputation("bad")
	require.Equal(t, uint64(types.DefaultBanMinSubmissions), rep.Total)
	require.Equal(t, uint64(0), rep.Accurate)
	require.True(t, rep.Banned)

	// The ban is permanent; the registry still lists the agent but the
	// oracle refuses its submissions.
	_, err := k.Submit("bad", pairEthUsd, usd(100))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// Honest reporters are unaffected.
	require.False(t, k.GetReputation("good1").Banned)
	_, err = k.Submit("good1", pairEthUsd, usd(100))
	require.NoError(t, err)
}

func TestReporterBelowBanFloorNotBanned(t *testing.T) {
	k, _ := newOracle(t, "bad", "good1", "good2")

	// Inaccurate every time, but under the minimum submission count.
	for i := 0; i < int(types.DefaultBanMinSubmissions)-1; i++ {
		_, err := k.Submit("bad", pairEthUsd, usd(109))
		require.NoError(t, err)
		_, err = k.Submit("good1", pairEthUsd, usd(100))
		require.NoError(t, err)
		_, err = k.Submit("good2", pairEthUsd, usd(100))
		require.NoError(t, err)
	}

	rep := k.GetReputation("bad")
	require.Equal(t, uint64(types.DefaultBanMinSubmissions-1), rep.Total)
	require.False(t, rep.Banned)
}

func TestGetPriceStaleness(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	now := time.Unix(1_700_000_000, 0)
	k.SetTimeSource(func() time.Time { return now })

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)
	_, err = k.Submit("agent2", pairEthUsd, usd(100))
	require.NoError(t, err)
	_, err = k.Submit("agent3", pairEthUsd, usd(100))
	require.NoError(t, err)

	price, updatedAt, stale, err := k.GetPrice(pairEthUsd)
	require.NoError(t, err)
	require.Equal(t, usd(100), price)
	require.Equal(t, now, updatedAt)
	require.False(t, stale)

	now = now.Add(types.DefaultMaxPriceAge + time.Second)
	price, _, stale, err = k.GetPrice(pairEthUsd)
	require.NoError(t, err)
	require.Equal(t, usd(100), price)
	require.True(t, stale)
}

func TestGetPriceUnknownPair(t *testing.T) {
	k, _ := newOracle(t)

	_, _, _, err := k.GetPrice("NOPE/USD")
	require.ErrorIs(t, err, types.ErrPriceNotFound)
}

func TestGenesisRoundTrip(t *testing.T) {
	k, _ := newOracle(t, "agent1", "agent2", "agent3")

	_, err := k.Submit("agent1", pairEthUsd, usd(100))
	require.NoError(t, err)
	_, err = k.Submit("agent2", pairEthUsd, usd(102))
	require.NoError(t, err)
	_, err = k.Submit("agent3", pairEthUsd, usd(98))
	require.NoError(t, err)

	gs := k.ExportGenesis()
	require.Len(t, gs.Feeds, 1)
	require.Len(t, gs.Reputations, 3)

	restored, _ := keepertest.OracleKeeper(t)
	require.NoError(t, restored.ImportGenesis(gs))

	price, _, _, err := restored.GetPrice(pairEthUsd)
	require.NoError(t, err)
	require.Equal(t, usd(100), price)
	require.Equal(t, uint64(1), restored.GetReputation("agent1").Total)
}
